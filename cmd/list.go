package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/model"
	"github.com/mj1618/desktop-launcher/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List launcher items",
	Long:  "List one item per application: favorites first, then running applications in discovery order, with their open state and windows.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("app", "", "Only the item matching this application name")
	listCmd.Flags().Bool("open", false, "Only items with at least one open window")
	listCmd.Flags().Bool("windows", true, "Include the windows of each item")
	listCmd.Flags().Duration("timeout", 3*time.Second, "Max time to wait for the compositor's window list")
}

func runList(cmd *cobra.Command, args []string) error {
	appName, _ := cmd.Flags().GetString("app")
	openOnly, _ := cmd.Flags().GetBool("open")
	withWindows, _ := cmd.Flags().GetBool("windows")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	s, err := startSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.waitReady(cmd.Context(), timeout); err != nil {
		return err
	}

	items := s.controller.Snapshot()
	if appName != "" {
		appID, err := s.controller.Resolve(appName)
		if err != nil {
			return err
		}
		item, _ := s.controller.Item(appID)
		items = []model.ItemView{item}
	}

	return output.Print(output.ListResult{
		Backend: s.provider.Name,
		TS:      time.Now().Unix(),
		Items:   filterItems(items, openOnly, withWindows),
	})
}

func filterItems(items []model.ItemView, openOnly, withWindows bool) []model.ItemView {
	out := make([]model.ItemView, 0, len(items))
	for _, it := range items {
		if openOnly && !it.State.IsOpen() {
			continue
		}
		if !withWindows {
			it.Windows = nil
		}
		out = append(out, it)
	}
	return out
}
