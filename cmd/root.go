package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-launcher/internal/config"
	"github.com/mj1618/desktop-launcher/internal/logging"
	"github.com/mj1618/desktop-launcher/internal/output"
	"github.com/mj1618/desktop-launcher/internal/platform"
	"github.com/mj1618/desktop-launcher/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-launcher",
	Short: "Taskbar launcher: one button per application, grouped from compositor windows",
	Long: `A launcher that groups compositor windows by application id, keeps
favorites pinned, and lets you focus or open applications from a terminal
bar, the command line or an MCP client.

Backends: ` + strings.Join(platform.Backends(), ", ") + `.`,
	SilenceUsage: true,
}

var (
	// cfg is the loaded configuration, with flag overrides applied.
	cfg config.Config
	// logger is the process logger. Records go to stderr so stdout stays
	// machine-readable.
	logger = slog.Default()
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/desktop-launcher/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "Compositor backend: "+strings.Join(platform.Backends(), ", "))
	rootCmd.PersistentFlags().String("script", "", "Event script for the scripted backend")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json")
	rootCmd.PersistentPreRunE = setup
}

func setup(cmd *cobra.Command, args []string) error {
	flags := rootCmd.PersistentFlags()

	path, _ := flags.GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if backend, _ := flags.GetString("backend"); backend != "" {
		loaded.Backend = backend
	}
	if script, _ := flags.GetString("script"); script != "" {
		loaded.ScriptFile = script
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		loaded.Log.Level = level
	}
	if format, _ := flags.GetString("log-format"); format != "" {
		loaded.Log.Format = format
	}
	cfg = loaded

	l, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(logger)

	format, _ := flags.GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = flags.GetBool("pretty")
	return nil
}
