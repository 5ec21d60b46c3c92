// Package notify shows desktop notifications, either over the session bus or
// through a notify-send style command.
package notify

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
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsNotify = notificationsDest + ".Notify"

	// expireDefault lets the server pick the timeout
	expireDefault = int32(-1)
)

// DBusNotifier sends notifications to org.freedesktop.Notifications
type DBusNotifier struct {
	logger *zap.Logger
	conn   bus.DBusClient
}

// NewDBusNotifier creates a notifier on top of the given bus client
func NewDBusNotifier(logger *zap.Logger, conn bus.DBusClient) *DBusNotifier {
	return &DBusNotifier{
		logger: logger,
		conn:   conn,
	}
}

// Notify shows n and returns once the server has accepted it
func (d *DBusNotifier) Notify(ctx context.Context, n domain.Notification) error {
	hints := map[string]dbus.Variant{}
	if n.Category != "" {
		hints["category"] = dbus.MakeVariant(n.Category)
	}
	if n.ImagePath != "" {
		hints["image-path"] = dbus.MakeVariant("file://" + n.ImagePath)
	}

	reply, err := d.conn.Call(ctx, notificationsDest, notificationsPath, notificationsNotify,
		n.AppName,
		uint32(0), // replaces_id
		"",        // app_icon, the artwork goes in the image-path hint
		n.Summary,
		n.Body,
		[]string{},
		hints,
		expireDefault,
	)
	if err != nil {
		return controlerr.Notification(fmt.Errorf("notify call failed: %w", err))
	}

	var id uint32
	if len(reply) > 0 {
		id, _ = reply[0].(uint32)
	}
	d.logger.Debug("Notification shown",
		zap.Uint32("id", id),
		zap.String("summary", n.Summary))

	return nil
}
