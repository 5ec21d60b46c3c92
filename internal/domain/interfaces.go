package domain

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// RemotePlayer defines the MPRIS player operations the controller needs.
// Implementations address one configured bus name.
type RemotePlayer interface {
	// Next skips to the next track
	Next(ctx context.Context) error

	// Previous skips to the previous track
	Previous(ctx context.Context) error

	// PlayPause toggles playback
	PlayPause(ctx context.Context) error

	// OpenURI asks the player to play the given URI
	OpenURI(ctx context.Context, uri string) error

	// Metadata reads the raw Metadata property bag
	Metadata(ctx context.Context) (map[string]dbus.Variant, error)
}

// SearchService finds tracks matching a free-text query.
// Results are returned in ranking order.
type SearchService interface {
	Search(ctx context.Context, query string) ([]Track, error)
}

// Fetcher defines the interface for retrieving album artwork
type Fetcher interface {
	// Fetch downloads image data from a URL
	// Returns the raw image bytes or an error
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ArtworkWriter stores artwork bytes somewhere a notification daemon can read.
// The returned cleanup removes whatever was written.
type ArtworkWriter interface {
	Write(imageData []byte) (path string, cleanup func() error, err error)
}

// Notifier displays a desktop notification
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetServiceName returns the bus name of the controlled player
	GetServiceName() string

	// GetAppName returns the application name shown on notifications
	GetAppName() string
}

// TrackSelector resolves search results to at most one playback target
type TrackSelector interface {
	Select(req SelectionRequest) (Selection, error)
}

// PlaybackDispatcher starts playback of a resolved target
type PlaybackDispatcher interface {
	Dispatch(ctx context.Context, target PlaybackTarget) error
}
