// Package playback starts playback of resolved targets on the remote player.
package playback

import (
	"context"
	"errors"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"go.uber.org/zap"
)

// ErrEmptyTarget is returned for a target with neither a URI nor a track
var ErrEmptyTarget = errors.New("empty playback target")

// Dispatcher hands playback targets to the remote player
type Dispatcher struct {
	logger *zap.Logger
	player domain.RemotePlayer
}

// NewDispatcher creates a dispatcher for the given player
func NewDispatcher(logger *zap.Logger, player domain.RemotePlayer) *Dispatcher {
	return &Dispatcher{
		logger: logger,
		player: player,
	}
}

// Dispatch asks the player to open the target's URI. It is not retried.
func (d *Dispatcher) Dispatch(ctx context.Context, target domain.PlaybackTarget) error {
	if target.IsZero() {
		return controlerr.Input(ErrEmptyTarget)
	}

	uri := target.URI()
	d.logger.Info("Opening uri", zap.String("uri", uri))

	if err := d.player.OpenURI(ctx, uri); err != nil {
		return controlerr.RemoteCall(err)
	}
	return nil
}
