package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/output"
	"github.com/mj1618/desktop-launcher/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the current bar to a PNG image",
	Long:  "Draw the launcher items as they would appear on the bar and save the image. Use --out - to write the PNG to stdout.",
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("out", "bar.png", "Output file (- for stdout)")
	renderCmd.Flags().Int("height", 0, "Bar height in pixels (0 = default)")
	renderCmd.Flags().Duration("timeout", 3*time.Second, "Max time to wait for the compositor's window list")
}

func runRender(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	height, _ := cmd.Flags().GetInt("height")
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
	img := render.Bar(items, render.Options{
		ShowNames: cfg.Launcher.ShowNames,
		Reversed:  cfg.Launcher.Reversed,
		Height:    height,
	})

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if err := render.WritePNG(w, img); err != nil {
		return err
	}
	if out == "-" {
		return nil
	}
	return output.Print(map[string]interface{}{
		"ok":    true,
		"file":  out,
		"items": len(items),
	})
}
