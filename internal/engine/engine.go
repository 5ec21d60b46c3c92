package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"github.com/genricoloni/mprisctl/internal/metadata"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const notificationCategory = "music"

var (
	// ErrUnknownCommand is returned for a command kind the engine does not handle
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNoPlayMode is returned for play-song without a URI or search terms
	ErrNoPlayMode = errors.New("play-song needs a uri or search terms")
)

// Engine routes one operator command to the components that carry it out.
// It holds no state between invocations.
type Engine struct {
	logger     *zap.Logger
	cfg        domain.Config
	player     domain.RemotePlayer
	search     domain.SearchService
	selector   domain.TrackSelector
	dispatcher domain.PlaybackDispatcher
	fetcher    domain.Fetcher
	artwork    domain.ArtworkWriter
	notifier   domain.Notifier
	out        io.Writer
}

// NewEngine creates a new command engine. Operator-facing messages go to out.
func NewEngine(
	logger *zap.Logger,
	cfg domain.Config,
	player domain.RemotePlayer,
	search domain.SearchService,
	sel domain.TrackSelector,
	disp domain.PlaybackDispatcher,
	fetch domain.Fetcher,
	art domain.ArtworkWriter,
	notifier domain.Notifier,
	out io.Writer,
) *Engine {
	return &Engine{
		logger:     logger,
		cfg:        cfg,
		player:     player,
		search:     search,
		selector:   sel,
		dispatcher: disp,
		fetcher:    fetch,
		artwork:    art,
		notifier:   notifier,
		out:        out,
	}
}

// Execute runs cmd to completion. Every failure is a *controlerr.Error.
func (e *Engine) Execute(ctx context.Context, cmd domain.Command) error {
	e.logger.Debug("Executing command",
		zap.String("command", string(cmd.Kind)),
		zap.String("service", e.cfg.GetServiceName()))

	switch cmd.Kind {
	case domain.CommandNext:
		return e.remote(ctx, e.player.Next)
	case domain.CommandPrevious:
		return e.remote(ctx, e.player.Previous)
	case domain.CommandPlayPause:
		return e.remote(ctx, e.player.PlayPause)
	case domain.CommandNowPlaying:
		return e.nowPlaying(ctx)
	case domain.CommandPlaySong:
		return e.playSong(ctx, cmd.Play)
	default:
		return controlerr.Input(fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind))
	}
}

func (e *Engine) remote(ctx context.Context, call func(context.Context) error) error {
	if err := call(ctx); err != nil {
		return controlerr.RemoteCall(err)
	}
	return nil
}

// nowPlaying handles the complete notification pipeline for the current track.
// No notification is shown if a stage before it fails, and the artwork file
// is removed on every path once written.
func (e *Engine) nowPlaying(ctx context.Context) (err error) {
	// 1. Read and decode metadata
	props, err := e.player.Metadata(ctx)
	if err != nil {
		return controlerr.RemoteCall(err)
	}

	meta, err := metadata.Decode(props)
	if err != nil {
		return err
	}

	e.logger.Info("Now playing",
		zap.String("track", meta.Title),
		zap.Strings("artists", meta.Artists),
		zap.String("album", meta.Album))

	n := domain.Notification{
		AppName:  e.cfg.GetAppName(),
		Summary:  meta.Title,
		Body:     strings.Join(meta.Artists, ", ") + " - " + meta.Album,
		Category: notificationCategory,
	}

	if meta.ArtworkURL == "" {
		e.logger.Warn("No artwork URL found", zap.String("track", meta.Title))
		if err := e.notifier.Notify(ctx, n); err != nil {
			return controlerr.Notification(err)
		}
		return nil
	}

	// 2. Fetch artwork
	imgData, err := e.fetcher.Fetch(ctx, meta.ArtworkURL)
	if err != nil {
		return controlerr.Transport(err)
	}

	// 3. Store it where the notification server can read it
	path, cleanup, err := e.artwork.Write(imgData)
	if err != nil {
		return controlerr.IO(err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			err = multierr.Append(err, controlerr.IO(cerr))
		}
	}()

	// 4. Notify
	n.ImagePath = path
	if err := e.notifier.Notify(ctx, n); err != nil {
		return controlerr.Notification(err)
	}

	e.logger.Debug("Notification sent", zap.String("image", path))
	return nil
}

func (e *Engine) playSong(ctx context.Context, mode domain.PlayMode) error {
	if mode.URI != "" {
		return e.dispatcher.Dispatch(ctx, domain.URITarget(mode.URI))
	}
	if mode.Search == nil {
		return controlerr.Input(ErrNoPlayMode)
	}

	query := mode.Search.Query()
	tracks, err := e.search.Search(ctx, query)
	if err != nil {
		return controlerr.Transport(err)
	}

	e.logger.Debug("Search finished",
		zap.String("query", query),
		zap.Int("results", len(tracks)))

	sel, err := e.selector.Select(domain.SelectionRequest{
		Candidates:   tracks,
		DisplayCount: mode.Search.Count,
		Interactive:  mode.Search.List,
	})
	if err != nil {
		return err
	}

	if !sel.Selected() {
		switch sel.Reason {
		case domain.NoCandidates:
			return e.say("No track found for %s", query)
		default:
			return e.say("Invalid selection")
		}
	}

	if track, ok := sel.Target.Track(); ok {
		if err := e.say("Playing %s", track); err != nil {
			return err
		}
	}

	return e.dispatcher.Dispatch(ctx, *sel.Target)
}

func (e *Engine) say(format string, args ...any) error {
	if _, err := fmt.Fprintf(e.out, format+"\n", args...); err != nil {
		return controlerr.IO(fmt.Errorf("writing output: %w", err))
	}
	return nil
}
