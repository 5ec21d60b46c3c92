// Package selector resolves search results to a single track, optionally by
// asking the operator to pick one.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"go.uber.org/zap"
)

const prompt = "Enter a number to play: "

// ErrNoInput is returned when the input stream ends before a selection is typed
var ErrNoInput = errors.New("no selection entered")

// Console is the operator-facing input/output pair
type Console struct {
	In  io.Reader
	Out io.Writer
}

// Selector picks one candidate from search results
type Selector struct {
	logger *zap.Logger
	in     *bufio.Reader
	out    io.Writer
}

// NewSelector creates a selector reading from and writing to the given console
func NewSelector(logger *zap.Logger, console Console) *Selector {
	return &Selector{
		logger: logger,
		in:     bufio.NewReader(console.In),
		out:    console.Out,
	}
}

// Select resolves a request to a playback target or to no selection.
// Only a malformed operator entry or a failing stream produce an error.
func (s *Selector) Select(req domain.SelectionRequest) (domain.Selection, error) {
	if len(req.Candidates) == 0 {
		return domain.Selection{Reason: domain.NoCandidates}, nil
	}

	if !req.Interactive {
		return selected(req.Candidates[0]), nil
	}

	shown := min(max(req.DisplayCount, 0), len(req.Candidates))
	for i, track := range req.Candidates[:shown] {
		if _, err := fmt.Fprintf(s.out, "%d - %s\n", i, track); err != nil {
			return domain.Selection{}, controlerr.IO(fmt.Errorf("writing candidates: %w", err))
		}
	}
	if _, err := io.WriteString(s.out, prompt); err != nil {
		return domain.Selection{}, controlerr.IO(fmt.Errorf("writing prompt: %w", err))
	}

	line, err := s.readLine()
	if err != nil {
		return domain.Selection{}, err
	}

	index, err := strconv.ParseUint(line, 10, 0)
	if err != nil {
		// A well-formed number too large to parse is still just out of range
		if errors.Is(err, strconv.ErrRange) {
			s.logger.Debug("Selection out of range", zap.String("input", line), zap.Int("shown", shown))
			return domain.Selection{Reason: domain.InvalidSelection}, nil
		}
		return domain.Selection{}, controlerr.Input(fmt.Errorf("invalid selection %q: %w", line, err))
	}

	if index >= uint64(shown) {
		s.logger.Debug("Selection out of range", zap.Uint64("index", index), zap.Int("shown", shown))
		return domain.Selection{Reason: domain.InvalidSelection}, nil
	}

	return selected(req.Candidates[index]), nil
}

// readLine reads exactly one line and strips surrounding whitespace
func (s *Selector) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", controlerr.IO(fmt.Errorf("reading selection: %w", err))
		}
		if line == "" {
			return "", controlerr.Input(ErrNoInput)
		}
	}
	return strings.TrimSpace(line), nil
}

func selected(t domain.Track) domain.Selection {
	target := domain.TrackTarget(t)
	return domain.Selection{Target: &target}
}
