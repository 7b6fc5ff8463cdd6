package cmd

// Compositor backends register themselves with the platform package.
import (
	_ "github.com/mj1618/desktop-launcher/internal/platform/hyprland"
	_ "github.com/mj1618/desktop-launcher/internal/platform/scripted"
)
