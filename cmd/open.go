package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/output"
)

var openCmd = &cobra.Command{
	Use:   "open [app]",
	Short: "Launch an application, or focus it if already running",
	Long: `Launch an application by id using the configured launch command
(default "gtk-launch {app_id}"). If the application already has a window,
it is focused instead, the same as clicking its bar button.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().String("app", "", "Application id or name")
	openCmd.Flags().Bool("wait", false, "Wait for the application window to appear after launching")
	openCmd.Flags().Duration("timeout", 10*time.Second, "Max time to wait for the window (used with --wait)")
}

func runOpen(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")
	wait, _ := cmd.Flags().GetBool("wait")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if appName == "" && len(args) == 1 {
		appName = args[0]
	}
	if appName == "" {
		return fmt.Errorf("specify an application with --app or as an argument")
	}

	s, err := startSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.waitReady(cmd.Context(), 3*time.Second); err != nil {
		return err
	}

	appID, err := resolveForOpen(s.controller, appName)
	if err != nil {
		return err
	}

	if item, ok := s.controller.Item(appID); ok && item.State.IsOpen() {
		s.controller.HandleIntent(cmd.Context(), launcher.FocusItem{AppID: appID})
		return output.Print(output.ActionResult{OK: true, Action: "focus", AppID: appID})
	}

	s.controller.HandleIntent(cmd.Context(), launcher.OpenItem{AppID: appID})
	if wait {
		item, err := waitForWindow(s, appID, timeout)
		if err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "open", AppID: appID, WindowID: item.Windows[0].ID})
	}
	return output.Print(output.ActionResult{OK: true, Action: "open", AppID: appID})
}

// resolveForOpen maps name onto a known item. Names matching nothing are
// launched as given, since open may start an app that is not on the bar;
// ambiguous names are an error.
func resolveForOpen(c *launcher.Controller, name string) (string, error) {
	appID, err := c.Resolve(name)
	switch {
	case err == nil:
		return appID, nil
	case errors.Is(err, launcher.ErrAmbiguousApp):
		return "", err
	default:
		logger.Debug("launching unresolved application name", "app", name, "error", err)
		return name, nil
	}
}

// waitForWindow watches controller updates until appID has a window.
func waitForWindow(s *session, appID string, timeout time.Duration) (model.ItemView, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	for {
		select {
		case u, ok := <-s.updates.Out():
			if !ok {
				return model.ItemView{}, fmt.Errorf("controller stopped while waiting for %s", appID)
			}
			if item, ok := launcher.ItemOf(u); ok && item.AppID == appID && item.WindowCount > 0 {
				return item, nil
			}
		case err := <-s.Done():
			return model.ItemView{}, fmt.Errorf("controller stopped while waiting for %s: %v", appID, err)
		case <-t.C:
			return model.ItemView{}, fmt.Errorf("no window for %s within %s", appID, timeout)
		}
	}
}

func findWindow(windows []model.WindowView, id uint64) (model.WindowView, bool) {
	for _, w := range windows {
		if w.ID == id {
			return w, true
		}
	}
	return model.WindowView{}, false
}
