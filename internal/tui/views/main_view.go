package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quill/internal/tui/common"
	"quill/internal/tui/styles"
)

func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render("Quill — "+m.CurrentDir()) + "\n")

	sidebar := styles.Theme.Panel.Render(m.BrowserView())
	pane := styles.Theme.Panel.Render(m.EditorView())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane))

	if m.Mode() == common.Command {
		sb.WriteString("\n" + m.CommandBuffer())
	} else if status := m.StatusView(); status != "" {
		sb.WriteString("\n" + status)
	}

	if m.ShowHelp() {
		sb.WriteString("\n" + RenderHelp())
	}
	sb.WriteString("\n" + RenderKeyCommands())

	return styles.Theme.App.Render(sb.String())
}

func RenderKeyCommands() string {
	return styles.Theme.Help.Render(`
[↑/k] Up  [↓/j] Down  [Enter/l] Open  [h] Parent  [i] Edit  [Esc] Browse  [:] Command  [q] Quit  [?] Help
`)
}

func RenderHelp() string {
	return styles.Theme.Help.Render(`
Browse with j/k, descend with Enter or l, go up with h.
Opening a file shows its highlighted preview; press i to edit it.
While editing, every change is saved straight back to the file.

Commands (press : first):
  :w              save the open file
  :q              quit
  :wq             save and quit
  :new NAME       create an empty file in this directory
  :set autosave on|off
`)
}
