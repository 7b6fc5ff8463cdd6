package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/bar"
	"github.com/mj1618/desktop-launcher/internal/launcher"
	"github.com/mj1618/desktop-launcher/internal/visibility"
)

var barCmd = &cobra.Command{
	Use:   "bar",
	Short: "Show the launcher bar in the terminal",
	Long: `Show one button per application. Click a button (or select it with
the arrow keys and press enter) to focus the application, or launch it when
it has no windows. Hovering an application with several windows opens a
popup listing them.

The bar is shown only while the common.show_if script succeeds, if set.`,
	RunE: runBar,
}

func init() {
	rootCmd.AddCommand(barCmd)
	barCmd.Flags().Bool("show-names", false, "Label buttons with the item name")
	barCmd.Flags().Bool("reversed", false, "Lay buttons out in reverse order")
}

func runBar(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("show-names") {
		cfg.Launcher.ShowNames, _ = cmd.Flags().GetBool("show-names")
	}
	if cmd.Flags().Changed("reversed") {
		cfg.Launcher.Reversed, _ = cmd.Flags().GetBool("reversed")
	}

	pred, err := cfg.Common.Predicate()
	if err != nil {
		return err
	}
	transition, duration, err := cfg.Transition()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := startSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	go func() {
		if err := <-s.Done(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("controller stopped", "backend", s.provider.Name, "error", err)
		}
	}()

	evaluator := visibility.NewEvaluator(pred, logger)
	if evaluator.Mode() == visibility.Conditional {
		go evaluator.Run(ctx)
	}

	m := bar.New(ctx, s.updates.Out(), s.updates, s.intents, evaluator.Results(), bar.Options{
		Appearance: launcher.AppearanceOptions{ShowNames: cfg.Launcher.ShowNames},
		ShowIcons:  cfg.Launcher.ShowIcons,
		Reversed:   cfg.Launcher.Reversed,
		Common:     cfg.Common,
		Transition: transition,
		Duration:   duration,
		Logger:     logger,
	})
	return bar.Run(ctx, m)
}
