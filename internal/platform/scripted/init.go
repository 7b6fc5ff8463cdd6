package scripted

import (
	"fmt"

	"github.com/mj1618/desktop-launcher/internal/platform"
)

func init() {
	platform.Register("scripted", func(opts platform.Options) (*platform.Provider, error) {
		script := &Script{}
		if opts.ScriptFile != "" {
			s, err := Load(opts.ScriptFile)
			if err != nil {
				return nil, fmt.Errorf("scripted backend: %w", err)
			}
			script = s
		}
		c := New(script, opts.Logger)
		return &platform.Provider{Name: "scripted", Toplevels: c, Launcher: c}, nil
	})
}
