package selector

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"go.uber.org/zap"
)

func candidates(n int) []domain.Track {
	tracks := make([]domain.Track, n)
	for i := range tracks {
		tracks[i] = domain.Track{
			Name:    "Song " + string(rune('A'+i)),
			ID:      "id" + string(rune('0'+i)),
			Artists: []domain.Artist{{Name: "Artist"}},
			Album:   domain.Album{Name: "Album"},
		}
	}
	return tracks
}

func newTestSelector(input string) (*Selector, *bytes.Buffer) {
	out := new(bytes.Buffer)
	return NewSelector(zap.NewNop(), Console{In: strings.NewReader(input), Out: out}), out
}

func TestSelect_NoCandidates(t *testing.T) {
	for _, interactive := range []bool{false, true} {
		s, out := newTestSelector("0\n")

		sel, err := s.Select(domain.SelectionRequest{Interactive: interactive, DisplayCount: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.Selected() || sel.Reason != domain.NoCandidates {
			t.Errorf("expected no candidates, got %+v", sel)
		}
		if out.Len() != 0 {
			t.Errorf("should not prompt, wrote %q", out.String())
		}
	}
}

func TestSelect_NonInteractiveTakesFirst(t *testing.T) {
	for _, count := range []int{0, 1, 3, 100} {
		s, out := newTestSelector("")
		tracks := candidates(3)

		sel, err := s.Select(domain.SelectionRequest{Candidates: tracks, DisplayCount: count})
		if err != nil {
			t.Fatalf("count %d: unexpected error: %v", count, err)
		}
		got, ok := sel.Target.Track()
		if !ok || got.ID != tracks[0].ID {
			t.Errorf("count %d: expected first candidate, got %+v", count, sel.Target)
		}
		if out.Len() != 0 {
			t.Errorf("count %d: should not print, wrote %q", count, out.String())
		}
	}
}

func TestSelect_Interactive(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		input         string
		expectedID    string
		expectedNone  domain.NoSelectionReason
		expectedError controlerr.Kind
	}{
		{name: "Valid First", count: 5, input: "0\n", expectedID: "id0"},
		{name: "Valid Second", count: 2, input: "1\n", expectedID: "id1"},
		{name: "Whitespace Trimmed", count: 5, input: "  3 \r\n", expectedID: "id3"},
		{name: "No Trailing Newline", count: 5, input: "4", expectedID: "id4"},
		{name: "Out Of Range", count: 5, input: "9\n", expectedNone: domain.InvalidSelection},
		{name: "Beyond Display Count", count: 2, input: "3\n", expectedNone: domain.InvalidSelection},
		{name: "Zero Display Count", count: 0, input: "0\n", expectedNone: domain.InvalidSelection},
		{name: "Huge Number", count: 5, input: "4294967295\n", expectedNone: domain.InvalidSelection},
		{name: "Overflowing Number", count: 2, input: "99999999999999999999\n", expectedNone: domain.InvalidSelection},
		{name: "Not A Number", count: 5, input: "two\n", expectedError: controlerr.KindInput},
		{name: "Negative", count: 5, input: "-1\n", expectedError: controlerr.KindInput},
		{name: "Empty Line", count: 5, input: "\n", expectedError: controlerr.KindInput},
		{name: "Closed Input", count: 5, input: "", expectedError: controlerr.KindInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSelector(tt.input)

			sel, err := s.Select(domain.SelectionRequest{
				Candidates:   candidates(5),
				DisplayCount: tt.count,
				Interactive:  true,
			})

			if tt.expectedError != 0 {
				if controlerr.KindOf(err) != tt.expectedError {
					t.Fatalf("expected %v error, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectedNone != "" {
				if sel.Selected() {
					t.Fatalf("expected no selection, got %+v", sel.Target)
				}
				if sel.Reason != tt.expectedNone {
					t.Errorf("expected reason %q, got %q", tt.expectedNone, sel.Reason)
				}
				return
			}

			got, ok := sel.Target.Track()
			if !ok || got.ID != tt.expectedID {
				t.Errorf("expected %s, got %+v", tt.expectedID, sel.Target)
			}
		})
	}
}

func TestSelect_RendersBoundedList(t *testing.T) {
	s, out := newTestSelector("1\n")
	tracks := candidates(5)
	tracks[1].Artists = []domain.Artist{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	if _, err := s.Select(domain.SelectionRequest{Candidates: tracks, DisplayCount: 2, Interactive: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "0 - Song A by Artist on Album\n" +
		"1 - Song B by A, B and C on Album\n" +
		"Enter a number to play: "
	if out.String() != expected {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", out.String(), expected)
	}
	if len(tracks) != 5 {
		t.Error("candidate list was mutated")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestSelect_StreamFailures(t *testing.T) {
	req := domain.SelectionRequest{Candidates: candidates(2), DisplayCount: 2, Interactive: true}

	s := NewSelector(zap.NewNop(), Console{In: strings.NewReader("0\n"), Out: failingWriter{}})
	if _, err := s.Select(req); controlerr.KindOf(err) != controlerr.KindIO {
		t.Errorf("expected i/o error on write failure, got %v", err)
	}

	s = NewSelector(zap.NewNop(), Console{In: failingReader{}, Out: new(bytes.Buffer)})
	if _, err := s.Select(req); controlerr.KindOf(err) != controlerr.KindIO {
		t.Errorf("expected i/o error on read failure, got %v", err)
	}
}
