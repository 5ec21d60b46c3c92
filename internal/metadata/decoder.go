// Package metadata turns the MPRIS Metadata property into a TrackMetadata.
package metadata

import (
	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"github.com/godbus/dbus/v5"
)

// MPRIS metadata keys required for a now-playing notification
const (
	KeyTitle   = "xesam:title"
	KeyArtists = "xesam:artist"
	KeyAlbum   = "xesam:album"
	KeyArtURL  = "mpris:artUrl"
)

// Decode converts an MPRIS metadata map into TrackMetadata.
// Every field must be present with the expected shape; the first offending key
// is reported as a decode error and no partial record is returned.
func Decode(props map[string]dbus.Variant) (domain.TrackMetadata, error) {
	title, err := stringField(props, KeyTitle)
	if err != nil {
		return domain.TrackMetadata{}, err
	}
	artists, err := stringsField(props, KeyArtists)
	if err != nil {
		return domain.TrackMetadata{}, err
	}
	album, err := stringField(props, KeyAlbum)
	if err != nil {
		return domain.TrackMetadata{}, err
	}
	artURL, err := stringField(props, KeyArtURL)
	if err != nil {
		return domain.TrackMetadata{}, err
	}

	return domain.TrackMetadata{
		Title:      title,
		Artists:    artists,
		Album:      album,
		ArtworkURL: artURL,
	}, nil
}

func stringField(props map[string]dbus.Variant, key string) (string, error) {
	v, ok := props[key]
	if !ok {
		return "", controlerr.MissingField(key)
	}
	s, ok := asString(v.Value())
	if !ok {
		return "", controlerr.InvalidType(key)
	}
	return s, nil
}

// stringsField accepts any array shape and keeps only its string elements
func stringsField(props map[string]dbus.Variant, key string) ([]string, error) {
	v, ok := props[key]
	if !ok {
		return nil, controlerr.MissingField(key)
	}

	switch values := v.Value().(type) {
	case []string:
		out := make([]string, len(values))
		copy(out, values)
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(values))
		for _, item := range values {
			if s, ok := asString(item); ok {
				out = append(out, s)
			}
		}
		return out, nil
	case []dbus.Variant:
		out := make([]string, 0, len(values))
		for _, item := range values {
			if s, ok := asString(item.Value()); ok {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, controlerr.InvalidType(key)
	}
}

// asString unwraps nested variants before checking for a string
func asString(v interface{}) (string, bool) {
	for {
		inner, ok := v.(dbus.Variant)
		if !ok {
			break
		}
		v = inner.Value()
	}
	s, ok := v.(string)
	return s, ok
}
