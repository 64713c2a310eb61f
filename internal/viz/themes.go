package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the flight view. Tracks cycle through Tracks by vehicle index.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Tracks  []lipgloss.Color
}

var (
	ThemeHUD = Theme{
		Name:    "hud",
		Primary: lipgloss.Color("#00ff88"),
		Accent:  lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ffaa00"),
		Tracks:  []lipgloss.Color{"#00ff88", "#00bfff", "#ff8c00", "#ff00ff"},
	}

	ThemeNight = Theme{
		Name:    "night",
		Primary: lipgloss.Color("#ff4444"),
		Accent:  lipgloss.Color("#ffaa88"),
		Muted:   lipgloss.Color("#553333"),
		Warning: lipgloss.Color("#ffff00"),
		Tracks:  []lipgloss.Color{"#ff4444", "#ff8866", "#aa2222", "#ffcc99"},
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#777777"),
		Warning: lipgloss.Color("#ffffff"),
		Tracks:  []lipgloss.Color{"#ffffff", "#bbbbbb", "#888888"},
	}

	Themes = []Theme{ThemeHUD, ThemeNight, ThemeMono}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeHUD
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func (t Theme) Track(i int) lipgloss.Color {
	return t.Tracks[i%len(t.Tracks)]
}
