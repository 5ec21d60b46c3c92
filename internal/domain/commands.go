package domain

import "strings"

// CommandKind enumerates the operator commands
type CommandKind string

const (
	CommandNext       CommandKind = "next"
	CommandPrevious   CommandKind = "previous"
	CommandPlayPause  CommandKind = "play-pause"
	CommandNowPlaying CommandKind = "now-playing"
	CommandPlaySong   CommandKind = "play-song"
)

// DefaultDisplayCount is how many search results are listed when not specified
const DefaultDisplayCount = 5

// PlayMode selects how play-song finds what to play.
// URI is used when non-empty, otherwise Search.
type PlayMode struct {
	URI    string
	Search *SearchMode
}

// SearchMode holds the arguments of "play-song search"
type SearchMode struct {
	Terms []string
	List  bool
	Count int
}

// Query joins the search terms with spaces
func (s SearchMode) Query() string {
	return strings.Join(s.Terms, " ")
}

// Command is one parsed operator request
type Command struct {
	Kind CommandKind
	Play PlayMode
}
