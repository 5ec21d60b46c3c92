package domain

import (
	"fmt"
	"strings"
)

// TrackURIPrefix is the player URI scheme used to address a single track
const TrackURIPrefix = "spotify:track:"

// TrackMetadata contains information about the currently playing media
type TrackMetadata struct {
	// Title of the currently playing track
	Title string
	// Artists in the order declared by the player
	Artists []string
	// Album name
	Album string
	// ArtworkURL is the URL of the album artwork
	ArtworkURL string
}

// Artist is a single credited artist of a search result
type Artist struct {
	Name string `json:"name"`
}

// Album is the album a search result belongs to
type Album struct {
	Name string `json:"name"`
}

// Track is a candidate returned by the search service
type Track struct {
	Name    string   `json:"name"`
	ID      string   `json:"id"`
	Artists []Artist `json:"artists"`
	Album   Album    `json:"album"`
}

// String renders the track as "<name> by <artists> on <album>"
func (t Track) String() string {
	return fmt.Sprintf("%s by %s on %s", t.Name, JoinArtists(t.Artists), t.Album.Name)
}

// JoinArtists joins artist names as "A, B and C".
// A single artist is returned as is.
func JoinArtists(artists []Artist) string {
	switch len(artists) {
	case 0:
		return ""
	case 1:
		return artists[0].Name
	}

	names := make([]string, 0, len(artists)-1)
	for _, a := range artists[:len(artists)-1] {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ") + " and " + artists[len(artists)-1].Name
}

// SelectionRequest describes one selection flow over search results
type SelectionRequest struct {
	Candidates   []Track
	DisplayCount int
	Interactive  bool
}

// PlaybackTarget is either a literal URI or a resolved track.
// Exactly one of the two is set.
type PlaybackTarget struct {
	uri   string
	track *Track
}

// URITarget creates a target that plays the given URI verbatim
func URITarget(uri string) PlaybackTarget {
	return PlaybackTarget{uri: uri}
}

// TrackTarget creates a target that plays the given track
func TrackTarget(t Track) PlaybackTarget {
	return PlaybackTarget{track: &t}
}

// Track returns the resolved track, if this target was built from one
func (p PlaybackTarget) Track() (Track, bool) {
	if p.track == nil {
		return Track{}, false
	}
	return *p.track, true
}

// IsZero reports whether neither variant is set
func (p PlaybackTarget) IsZero() bool {
	return p.track == nil && p.uri == ""
}

// URI returns the URI handed to the player
func (p PlaybackTarget) URI() string {
	if p.track != nil {
		return TrackURIPrefix + p.track.ID
	}
	return p.uri
}

// NoSelectionReason explains why a selection flow resolved to nothing
type NoSelectionReason string

const (
	// NoCandidates means the search returned no tracks
	NoCandidates NoSelectionReason = "no candidates"
	// InvalidSelection means the operator picked an index outside the list
	InvalidSelection NoSelectionReason = "invalid selection"
)

// Selection is the outcome of a selection flow
type Selection struct {
	// Target is nil when nothing was selected
	Target *PlaybackTarget
	// Reason is set when Target is nil
	Reason NoSelectionReason
}

// Selected reports whether the flow resolved to a playback target
func (s Selection) Selected() bool {
	return s.Target != nil
}

// Notification is the payload handed to a notification sink
type Notification struct {
	AppName   string
	Summary   string
	Body      string
	ImagePath string
	Category  string
}
