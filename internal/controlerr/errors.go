// Package controlerr holds the single error type every command reports through.
package controlerr

import (
	"errors"
	"fmt"
)

// Kind identifies which failure source produced an error
type Kind int

const (
	// KindRemoteCall means the player rejected or failed a command or property read
	KindRemoteCall Kind = iota + 1
	// KindTransport means an HTTP fetch failed or returned an unparsable response
	KindTransport
	// KindDecode means the metadata property bag was missing a field or had a wrong shape
	KindDecode
	// KindNotification means the notification sink failed to display
	KindNotification
	// KindIO means a local read or write failed
	KindIO
	// KindInput means the operator typed something that is not a valid index
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindRemoteCall:
		return "remote call"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindNotification:
		return "notification"
	case KindIO:
		return "i/o"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingField is the decode cause when a required key is absent
	ErrMissingField = errors.New("missing field")
	// ErrInvalidType is the decode cause when a key holds a value of the wrong shape
	ErrInvalidType = errors.New("invalid value type")
)

// Error is a failure of exactly one Kind, wrapping its cause
type Error struct {
	Kind Kind
	// Key names the offending metadata key for decode errors
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s error: %v: %s", e.Kind, e.Err, e.Key)
	}
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, and the same Key when the target sets one
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Key == "" || t.Key == e.Key
}

func wrap(kind Kind, err error) *Error {
	var ce *Error
	if errors.As(err, &ce) && ce.Kind == kind {
		return ce
	}
	return &Error{Kind: kind, Err: err}
}

// RemoteCall wraps a player failure
func RemoteCall(err error) *Error { return wrap(KindRemoteCall, err) }

// Transport wraps a search or artwork fetch failure
func Transport(err error) *Error { return wrap(KindTransport, err) }

// Notification wraps a notification sink failure
func Notification(err error) *Error { return wrap(KindNotification, err) }

// IO wraps a local read or write failure
func IO(err error) *Error { return wrap(KindIO, err) }

// Input wraps an unparsable operator selection
func Input(err error) *Error { return wrap(KindInput, err) }

// MissingField reports a required metadata key that is absent
func MissingField(key string) *Error {
	return &Error{Kind: KindDecode, Key: key, Err: ErrMissingField}
}

// InvalidType reports a metadata key whose value has the wrong shape
func InvalidType(key string) *Error {
	return &Error{Kind: KindDecode, Key: key, Err: ErrInvalidType}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
