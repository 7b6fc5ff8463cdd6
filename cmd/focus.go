package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/output"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring an application's window to the foreground",
	Long:  "Focus the first window of an application, or one specific window with --window-id.",
	RunE:  runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().String("app", "", "Application id or name (fuzzy matched)")
	focusCmd.Flags().Uint64("window-id", 0, "Focus this window of the application")
	focusCmd.Flags().Duration("timeout", 3*time.Second, "Max time to wait for the compositor's window list")
}

func runFocus(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")
	windowID, _ := cmd.Flags().GetUint64("window-id")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if appName == "" {
		return fmt.Errorf("--app is required")
	}

	s, err := startSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.waitReady(cmd.Context(), timeout); err != nil {
		return err
	}

	appID, err := s.controller.Resolve(appName)
	if err != nil {
		return err
	}
	item, _ := s.controller.Item(appID)
	if !item.State.IsOpen() {
		return fmt.Errorf("%s has no open windows (use open to launch it)", appID)
	}

	var intent launcher.Intent = launcher.FocusItem{AppID: appID}
	if windowID != 0 {
		if _, ok := findWindow(item.Windows, windowID); !ok {
			return fmt.Errorf("%s has no window %d", appID, windowID)
		}
		intent = launcher.FocusWindow{AppID: appID, WindowID: windowID}
	}
	s.controller.HandleIntent(cmd.Context(), intent)

	return output.Print(output.ActionResult{
		OK:       true,
		Action:   "focus",
		AppID:    appID,
		WindowID: windowID,
	})
}
