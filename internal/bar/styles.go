package bar

import "github.com/charmbracelet/lipgloss"

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface0 lipgloss.Color = "#313244"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
)

// Styles holds one style per button class plus the popup and tooltip.
type Styles struct {
	Item     lipgloss.Style
	Favorite lipgloss.Style
	Open     lipgloss.Style
	Focused  lipgloss.Style
	Hovered  lipgloss.Style
	Selected lipgloss.Style

	Popup        lipgloss.Style
	PopupFocused lipgloss.Style
	Tooltip      lipgloss.Style

	// Classes are extra styles selected by the common.class setting.
	Classes map[string]lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Item:     lipgloss.NewStyle().Foreground(colorOverlay1),
		Favorite: lipgloss.NewStyle().Foreground(colorSubtext0),
		Open:     lipgloss.NewStyle().Foreground(colorText).Underline(true),
		Focused:  lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		Hovered:  lipgloss.NewStyle().Background(colorSurface1),
		Selected: lipgloss.NewStyle().Background(colorSurface0),

		Popup:        lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1),
		PopupFocused: lipgloss.NewStyle().Foreground(colorGreen).Background(colorSurface0).Bold(true).Padding(0, 1),
		Tooltip:      lipgloss.NewStyle().Foreground(colorPeach).Italic(true),

		Classes: map[string]lipgloss.Style{
			"accent": lipgloss.NewStyle().Foreground(colorPeach),
			"muted":  lipgloss.NewStyle().Faint(true),
			"bold":   lipgloss.NewStyle().Bold(true),
		},
	}
}

// forClasses combines the class styles. Later classes win.
func (s Styles) forClasses(classes []string) lipgloss.Style {
	st := s.Item
	for _, class := range classes {
		switch class {
		case "favorite":
			st = s.Favorite.Inherit(st)
		case "open":
			st = s.Open.Inherit(st)
		case "focused":
			st = s.Focused.Inherit(st)
		default:
			if extra, ok := s.Classes[class]; ok {
				st = extra.Inherit(st)
			}
		}
	}
	return st
}
