package player

import (
	"context"
	"fmt"

	"github.com/genricoloni/mprisctl/internal/bus"
	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	objectPath      dbus.ObjectPath = "/org/mpris/MediaPlayer2"
	playerInterface                 = "org.mpris.MediaPlayer2.Player"
)

// MprisPlayer controls one MPRIS player through the session bus
type MprisPlayer struct {
	logger      *zap.Logger
	conn        bus.DBusClient // Interface for testability
	serviceName string
}

// NewMprisPlayer creates a player bound to the configured service name
func NewMprisPlayer(logger *zap.Logger, conn bus.DBusClient, cfg domain.Config) *MprisPlayer {
	return &MprisPlayer{
		logger:      logger,
		conn:        conn,
		serviceName: cfg.GetServiceName(),
	}
}

// Next skips to the next track
func (p *MprisPlayer) Next(ctx context.Context) error {
	return p.call(ctx, "Next")
}

// Previous skips to the previous track
func (p *MprisPlayer) Previous(ctx context.Context) error {
	return p.call(ctx, "Previous")
}

// PlayPause toggles playback
func (p *MprisPlayer) PlayPause(ctx context.Context) error {
	return p.call(ctx, "PlayPause")
}

// OpenURI asks the player to open and play the given URI
func (p *MprisPlayer) OpenURI(ctx context.Context, uri string) error {
	return p.call(ctx, "OpenUri", uri)
}

// Metadata reads the Metadata property of the player
func (p *MprisPlayer) Metadata(ctx context.Context) (map[string]dbus.Variant, error) {
	variant, err := p.conn.GetProperty(ctx, p.serviceName, objectPath, playerInterface+".Metadata")
	if err != nil {
		return nil, controlerr.RemoteCall(fmt.Errorf("failed to get metadata: %w", err))
	}

	// Some players return an empty variant when nothing is loaded
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, controlerr.RemoteCall(fmt.Errorf("metadata has unexpected type %s", variant.Signature()))
	}

	p.logger.Debug("Metadata fetched",
		zap.String("player", p.serviceName),
		zap.Int("keys", len(metadata)))
	return metadata, nil
}

func (p *MprisPlayer) call(ctx context.Context, member string, args ...any) error {
	method := playerInterface + "." + member

	p.logger.Debug("Sending player command",
		zap.String("player", p.serviceName),
		zap.String("method", method))

	if _, err := p.conn.Call(ctx, p.serviceName, objectPath, method, args...); err != nil {
		return controlerr.RemoteCall(fmt.Errorf("%s on %s: %w", member, p.serviceName, err))
	}
	return nil
}
