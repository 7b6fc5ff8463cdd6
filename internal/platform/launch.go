package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// DefaultLaunchCommand opens the desktop entry matching the app id.
const DefaultLaunchCommand = "gtk-launch {app_id}"

// CommandLauncher opens applications by running a command template.
type CommandLauncher struct {
	Template string
	Logger   *slog.Logger
}

// Command expands the template for appID into an argv.
func (l CommandLauncher) Command(appID string) ([]string, error) {
	tmpl := l.Template
	if tmpl == "" {
		tmpl = DefaultLaunchCommand
	}
	line := strings.ReplaceAll(tmpl, "{app_id}", shellquote.Join(appID))
	args, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("parse launch command %q: %w", tmpl, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("launch command %q is empty", tmpl)
	}
	return args, nil
}

// Launch starts the application without waiting for it to exit.
// The child is not bound to ctx: launched apps outlive the launcher.
func (l CommandLauncher) Launch(_ context.Context, appID string) error {
	args, err := l.Command(appID)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", appID, err)
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("launched application", "app_id", appID, "pid", cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("launched application exited", "app_id", appID, "error", err)
		}
	}()
	return nil
}
