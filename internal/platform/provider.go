package platform

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Provider bundles the compositor backends selected at startup.
type Provider struct {
	Name      string
	Toplevels ToplevelSource
	Launcher  AppLauncher
}

// Options configures backend construction.
type Options struct {
	// ScriptFile is the event script replayed by the scripted backend.
	ScriptFile string
	// LaunchCommand is the command template used to open applications.
	// "{app_id}" is replaced with the shell-quoted application id.
	LaunchCommand string
	Logger        *slog.Logger
}

// ProviderFunc builds a Provider for one backend.
type ProviderFunc func(opts Options) (*Provider, error)

// ErrUnsupported is returned when no backend with the requested name is registered.
var ErrUnsupported = fmt.Errorf("compositor backend is not supported")

var (
	registryMu sync.RWMutex
	registry   = map[string]ProviderFunc{}
)

// Register makes a backend available under name.
// Backend packages call it from init(); see internal/platform/hyprland/init.go.
func Register(name string, fn ProviderFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewProvider returns the Provider for the named backend.
func NewProvider(name string, opts Options) (*Provider, error) {
	registryMu.RLock()
	fn, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnsupported, name, Backends())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return fn(opts)
}
