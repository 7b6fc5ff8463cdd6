// Package config loads the launcher configuration from a YAML file and
// LAUNCHER_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mj1618/desktop-launcher/internal/script"
	"github.com/mj1618/desktop-launcher/internal/visibility"
)

// Config holds application configuration.
type Config struct {
	Backend     string         `mapstructure:"backend"`
	Seat        string         `mapstructure:"seat"`
	ScriptFile  string         `mapstructure:"script_file"`
	Orientation string         `mapstructure:"orientation"`
	Launcher    LauncherConfig `mapstructure:"launcher"`
	Common      CommonConfig   `mapstructure:"common"`
	Log         LogConfig      `mapstructure:"log"`
}

// LauncherConfig holds the launcher module settings.
type LauncherConfig struct {
	Favorites     []string `mapstructure:"favorites"`
	ShowNames     bool     `mapstructure:"show_names"`
	ShowIcons     bool     `mapstructure:"show_icons"`
	LaunchCommand string   `mapstructure:"launch_command"`
	Reversed      bool     `mapstructure:"reversed"`
}

// CommonConfig holds the settings shared by every bar module: visibility,
// transitions, event scripts and tooltip.
type CommonConfig struct {
	// Name titles the bar and tags its log records.
	Name string `mapstructure:"name"`
	// Class lists extra button style classes, space separated.
	Class string `mapstructure:"class"`

	ShowIf             string `mapstructure:"show_if"`
	TransitionType     string `mapstructure:"transition_type"`
	// TransitionDuration is in milliseconds; 0 reveals and hides instantly.
	TransitionDuration int    `mapstructure:"transition_duration"`

	OnClickLeft   string `mapstructure:"on_click_left"`
	OnClickRight  string `mapstructure:"on_click_right"`
	OnClickMiddle string `mapstructure:"on_click_middle"`
	OnScrollUp    string `mapstructure:"on_scroll_up"`
	OnScrollDown  string `mapstructure:"on_scroll_down"`
	OnMouseEnter  string `mapstructure:"on_mouse_enter"`
	OnMouseExit   string `mapstructure:"on_mouse_exit"`

	Tooltip string `mapstructure:"tooltip"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultPath returns $XDG_CONFIG_HOME/desktop-launcher/config.yaml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "desktop-launcher", "config.yaml")
}

// Load reads configuration from path and env. An empty path uses
// LAUNCHER_CONFIG, then DefaultPath. A missing file is not an error.
// Env var overrides use prefix LAUNCHER_.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path == "" {
		path = os.Getenv("LAUNCHER_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("LAUNCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_, statErr := os.Stat(path)
	if explicit || statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "hyprland")
	v.SetDefault("seat", "seat0")
	v.SetDefault("script_file", "")
	v.SetDefault("orientation", "horizontal")

	v.SetDefault("launcher.favorites", []string{})
	v.SetDefault("launcher.show_names", false)
	v.SetDefault("launcher.show_icons", true)
	v.SetDefault("launcher.launch_command", "gtk-launch {app_id}")
	v.SetDefault("launcher.reversed", false)

	v.SetDefault("common.name", "")
	v.SetDefault("common.class", "")
	v.SetDefault("common.show_if", "")
	v.SetDefault("common.transition_type", "slide_start")
	v.SetDefault("common.transition_duration", int(visibility.DefaultTransitionDuration/time.Millisecond))
	for _, key := range []string{
		"on_click_left", "on_click_right", "on_click_middle",
		"on_scroll_up", "on_scroll_down", "on_mouse_enter", "on_mouse_exit",
		"tooltip",
	} {
		v.SetDefault("common."+key, "")
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Predicate parses the show_if script. It returns nil when none is set.
func (c CommonConfig) Predicate() (visibility.Predicate, error) {
	if strings.TrimSpace(c.ShowIf) == "" {
		return nil, nil
	}
	sc, err := script.Parse(c.ShowIf)
	if err != nil {
		return nil, fmt.Errorf("show_if: %w", err)
	}
	return sc, nil
}

// Transition resolves the reveal animation and its duration for the
// configured orientation.
func (c Config) Transition() (visibility.RevealerTransition, time.Duration, error) {
	tt, err := visibility.ParseTransitionType(c.Common.TransitionType)
	if err != nil {
		return visibility.RevealNone, 0, err
	}
	o, err := visibility.ParseOrientation(c.Orientation)
	if err != nil {
		return visibility.RevealNone, 0, err
	}
	if c.Common.TransitionDuration < 0 {
		return visibility.RevealNone, 0, fmt.Errorf("transition_duration must not be negative, got %d", c.Common.TransitionDuration)
	}
	d := time.Duration(c.Common.TransitionDuration) * time.Millisecond
	return tt.ForOrientation(o), d, nil
}

// ClickScript returns the script bound to a mouse button, if any.
func (c CommonConfig) ClickScript(button string) string {
	switch button {
	case "left":
		return c.OnClickLeft
	case "right":
		return c.OnClickRight
	case "middle":
		return c.OnClickMiddle
	default:
		return ""
	}
}
