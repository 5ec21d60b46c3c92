//go:build linux

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/genricoloni/mprisctl/internal/controlerr"
	"github.com/genricoloni/mprisctl/internal/domain"
	"go.uber.org/zap"
)

// NotifyCommand represents a detected notification command
type NotifyCommand struct {
	Name   string
	Binary string
	// Args are appended before summary and body; %a, %c and %i expand to
	// the app name, category and image path
	Args []string
}

var (
	// Ordered list of notification commands to try (highest priority first)
	notifyCommands = []NotifyCommand{
		// libnotify
		{Name: "notify-send", Binary: "notify-send", Args: []string{"-a", "%a", "-c", "%c", "-i", "%i"}},
		// dunst
		{Name: "dunstify", Binary: "dunstify", Args: []string{"-a", "%a", "-i", "%i"}},
	}
)

// CommandNotifier shows notifications by running an external command
type CommandNotifier struct {
	logger  *zap.Logger
	command NotifyCommand
}

// NewCommandNotifier detects an installed notification command
func NewCommandNotifier(logger *zap.Logger) (*CommandNotifier, error) {
	cmd := detectCommand()
	if cmd.Binary == "" {
		return nil, fmt.Errorf("no supported notification command found on this system")
	}

	logger.Debug("Notification command detected",
		zap.String("name", cmd.Name),
		zap.String("binary", cmd.Binary))

	return &CommandNotifier{
		logger:  logger,
		command: cmd,
	}, nil
}

// detectCommand returns the first command found in PATH
func detectCommand() NotifyCommand {
	for _, cmd := range notifyCommands {
		if commandExists(cmd.Binary) {
			return cmd
		}
	}
	return NotifyCommand{}
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// buildArgs expands the command template for n. Options whose value would be
// empty are dropped together with their flag.
func (c *CommandNotifier) buildArgs(n domain.Notification) []string {
	values := map[string]string{
		"%a": n.AppName,
		"%c": n.Category,
		"%i": n.ImagePath,
	}

	args := make([]string, 0, len(c.command.Args)+2)
	for i := 0; i < len(c.command.Args); i++ {
		arg := c.command.Args[i]
		if strings.HasPrefix(arg, "-") && i+1 < len(c.command.Args) {
			if v, ok := values[c.command.Args[i+1]]; ok {
				if v != "" {
					args = append(args, arg, v)
				}
				i++
				continue
			}
		}
		args = append(args, arg)
	}

	return append(args, n.Summary, n.Body)
}

// Notify runs the notification command for n
func (c *CommandNotifier) Notify(ctx context.Context, n domain.Notification) error {
	args := c.buildArgs(n)

	c.logger.Debug("Running notification command",
		zap.String("command", c.command.Binary),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, c.command.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return controlerr.Notification(fmt.Errorf("failed to notify with %s: %w (output: %s)",
			c.command.Name, err, strings.TrimSpace(string(output))))
	}

	return nil
}
