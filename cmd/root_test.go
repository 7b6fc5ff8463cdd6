package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-launcher/internal/output"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"list", "focus", "open", "observe", "serve", "bar", "render"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_BackendsRegistered(t *testing.T) {
	for _, name := range []string{"hyprland", "scripted"} {
		require.Contains(t, rootCmd.Long, name)
	}
}

const testScript = `steps:
  - kind: open
    id: 1
    app_id: firefox
    title: GitHub
    focused: true
  - kind: open
    id: 2
    app_id: foot
    title: "~"
  - kind: sync
titles:
  org.gnome.Nautilus: Files
`

const testConfig = `backend: scripted
launcher:
  favorites:
    - org.gnome.Nautilus
log:
  level: error
`

// execute runs the root command against the scripted backend and returns
// what it printed.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "script.yaml")
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(testScript), 0o644))
	require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0o644))

	var buf bytes.Buffer
	prev := output.Stdout
	output.Stdout = &buf
	t.Cleanup(func() { output.Stdout = prev })

	rootCmd.SetArgs(append(args, "--config", configPath, "--script", scriptPath, "--format", "json"))
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return buf.String()
}
