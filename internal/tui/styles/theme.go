package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the core UI styles
var Theme = struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	Cursor    lipgloss.Style
	Directory lipgloss.Style
	File      lipgloss.Style
	Help      lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF")).
		MarginBottom(1),
	Cursor: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true),
	Directory: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#61AFEF")).
		Bold(true),
	File: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9")),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5C07B")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E06C75")).
		Bold(true),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7B61FF")).
		Padding(0, 1),
}

// Palette carries the configured theme colors into the shared styles.
// Values are anything lipgloss.Color accepts (ANSI 256 codes or hex).
type Palette struct {
	Primary  string
	Success  string
	Warning  string
	Error    string
	Info     string
	Emphasis string
	Border   string
}

// Load recolors the shared styles from a configured palette. Empty
// entries keep the built-in color.
func Load(p Palette) {
	if p.Primary != "" {
		Theme.Title = Theme.Title.Foreground(lipgloss.Color(p.Primary))
	}
	if p.Success != "" {
		Theme.Help = Theme.Help.Foreground(lipgloss.Color(p.Success))
	}
	if p.Warning != "" {
		Theme.Warning = Theme.Warning.Foreground(lipgloss.Color(p.Warning))
	}
	if p.Error != "" {
		Theme.Error = Theme.Error.Foreground(lipgloss.Color(p.Error))
	}
	if p.Info != "" {
		Theme.Directory = Theme.Directory.Foreground(lipgloss.Color(p.Info))
	}
	if p.Emphasis != "" {
		Theme.Cursor = Theme.Cursor.Foreground(lipgloss.Color(p.Emphasis))
	}
	if p.Border != "" {
		Theme.Panel = Theme.Panel.BorderForeground(lipgloss.Color(p.Border))
	}
}
