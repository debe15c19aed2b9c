package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the TUI colors around the balls. Ball colors always come from
// the balls themselves.
type Theme struct {
	Name      string
	Frame     lipgloss.Color
	Aim       lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Frame:     lipgloss.Color("#ff00ff"),
		Aim:       lipgloss.Color("#ffff00"),
		Secondary: lipgloss.Color("#00ffff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeFelt = Theme{
		Name:      "felt",
		Frame:     lipgloss.Color("#8b5a2b"), // cushion wood
		Aim:       lipgloss.Color("#f5f5dc"),
		Secondary: lipgloss.Color("#2e8b57"),
		Accent:    lipgloss.Color("#f5deb3"),
		Text:      lipgloss.Color("#f0fff0"),
		Muted:     lipgloss.Color("#4f7942"),
		Success:   lipgloss.Color("#7cfc00"),
		Warning:   lipgloss.Color("#ffd700"),
		Error:     lipgloss.Color("#ff4500"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Frame:     lipgloss.Color("#cccccc"),
		Aim:       lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Frame:     lipgloss.Color("#0077be"),
		Aim:       lipgloss.Color("#ffd700"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeFelt,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
