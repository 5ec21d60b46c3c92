//go:build !linux

package notify

import (
	"context"
	"fmt"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"go.uber.org/zap"
)

// CommandNotifier is a placeholder for platforms without notify-send
type CommandNotifier struct {
	logger *zap.Logger
}

// NewCommandNotifier returns an error, no notification command is supported here
func NewCommandNotifier(logger *zap.Logger) (*CommandNotifier, error) {
	return nil, fmt.Errorf("notification commands are not supported on this platform")
}

// Notify returns an error indicating the platform is not supported
func (c *CommandNotifier) Notify(ctx context.Context, n domain.Notification) error {
	return controlerr.Notification(fmt.Errorf("notification commands are not supported on this platform"))
}
