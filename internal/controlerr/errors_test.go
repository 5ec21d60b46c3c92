package controlerr

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestError_KindsAndUnwrap(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *Error
		kind     Kind
		expected string
	}{
		{"RemoteCall", RemoteCall(cause), KindRemoteCall, "remote call error: boom"},
		{"Transport", Transport(cause), KindTransport, "transport error: boom"},
		{"Notification", Notification(cause), KindNotification, "notification error: boom"},
		{"IO", IO(cause), KindIO, "i/o error: boom"},
		{"Input", Input(cause), KindInput, "input error: boom"},
		{"MissingField", MissingField("xesam:title"), KindDecode, "decode error: missing field: xesam:title"},
		{"InvalidType", InvalidType("mpris:artUrl"), KindDecode, "decode error: invalid value type: mpris:artUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind: expected %v, got %v", tt.kind, tt.err.Kind)
			}
			if tt.err.Error() != tt.expected {
				t.Errorf("Error(): expected %q, got %q", tt.expected, tt.err.Error())
			}
			if KindOf(fmt.Errorf("outer: %w", tt.err)) != tt.kind {
				t.Errorf("KindOf did not see through wrapping")
			}
		})
	}

	if !errors.Is(RemoteCall(cause), cause) {
		t.Error("expected RemoteCall to unwrap to its cause")
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("now playing: %w", MissingField("xesam:artist"))

	if !errors.Is(err, &Error{Kind: KindDecode}) {
		t.Error("expected match on Kind alone")
	}
	if !errors.Is(err, MissingField("xesam:artist")) {
		t.Error("expected match on Kind and Key")
	}
	if errors.Is(err, MissingField("xesam:title")) {
		t.Error("unexpected match on a different key")
	}
	if !errors.Is(err, ErrMissingField) {
		t.Error("expected ErrMissingField in chain")
	}
	if errors.Is(err, ErrInvalidType) {
		t.Error("unexpected ErrInvalidType in chain")
	}
	if errors.Is(err, &Error{Kind: KindTransport}) {
		t.Error("unexpected match on a different Kind")
	}
}

func TestWrap_KeepsSameKind(t *testing.T) {
	inner := IO(io.ErrUnexpectedEOF)
	if got := IO(inner); got != inner {
		t.Error("wrapping an error of the same kind should return it unchanged")
	}
	if got := Transport(inner); got.Kind != KindTransport {
		t.Errorf("expected Transport, got %v", got.Kind)
	}
}

func TestKindOf_Plain(t *testing.T) {
	if KindOf(errors.New("plain")) != 0 {
		t.Error("expected zero Kind for a plain error")
	}
	if KindOf(nil) != 0 {
		t.Error("expected zero Kind for nil")
	}
}
