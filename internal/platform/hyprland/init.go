package hyprland

import "github.com/mj1618/desktop-launcher/internal/platform"

func init() {
	platform.Register("hyprland", func(opts platform.Options) (*platform.Provider, error) {
		dir, err := SocketDir()
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			Name:      "hyprland",
			Toplevels: NewSource(&Client{Dir: dir}, opts.Logger),
			Launcher:  platform.CommandLauncher{Template: opts.LaunchCommand, Logger: opts.Logger},
		}, nil
	})
}
