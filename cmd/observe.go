package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/model"
)

var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Watch launcher items and stream changes as JSONL",
	Long: `Follow the compositor and emit item changes (added, removed, changed)
as JSONL to stdout. The first line is a snapshot of the current items.

Output is always JSONL regardless of the --format flag.

Use Ctrl+C or --duration to stop observing.`,
	RunE: runObserve,
}

func init() {
	rootCmd.AddCommand(observeCmd)
	observeCmd.Flags().Int("duration", 0, "Max seconds to observe (0 = until Ctrl+C)")
	observeCmd.Flags().Bool("ignore-focus", false, "Ignore focus changes")
	observeCmd.Flags().Bool("ignore-titles", false, "Ignore window title changes")
	observeCmd.Flags().Duration("timeout", 3*time.Second, "Max time to wait for the compositor's window list")
}

func runObserve(cmd *cobra.Command, args []string) error {
	durationSec, _ := cmd.Flags().GetInt("duration")
	ignoreFocus, _ := cmd.Flags().GetBool("ignore-focus")
	ignoreTitles, _ := cmd.Flags().GetBool("ignore-titles")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	s, err := startSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.waitReady(cmd.Context(), timeout); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	var deadline <-chan time.Time
	if durationSec > 0 {
		t := time.NewTimer(time.Duration(durationSec) * time.Second)
		defer t.Stop()
		deadline = t.C
	}
	start := time.Now()

	prev := s.controller.Snapshot()
	enc.Encode(map[string]interface{}{
		"type":    "snapshot",
		"ts":      time.Now().Unix(),
		"backend": s.provider.Name,
		"count":   len(prev),
		"items":   prev,
	})

	eventCount := 0
	var stopErr error
loop:
	for {
		select {
		case _, ok := <-s.updates.Out():
			if !ok {
				break loop
			}
			curr := s.controller.Snapshot()
			for _, change := range model.DiffItems(prev, curr) {
				if change.Type == model.ChangeChanged {
					if ignoreFocus {
						delete(change.Changes, "state")
					}
					if ignoreTitles {
						delete(change.Changes, "name")
					}
					if len(change.Changes) == 0 {
						continue
					}
				}
				enc.Encode(change)
				eventCount++
			}
			prev = curr
		case err := <-s.Done():
			stopErr = err
			break loop
		case <-deadline:
			break loop
		case <-cmd.Context().Done():
			break loop
		}
	}

	done := map[string]interface{}{
		"type":    "done",
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
		"events":  eventCount,
	}
	if stopErr != nil {
		done["error"] = stopErr.Error()
	}
	enc.Encode(done)
	return nil
}
