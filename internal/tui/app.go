package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/config"
	"quill/internal/log"
)

// Run starts the terminal frontend and blocks until the user quits.
func Run(cfg *config.Config, openPath string) error {
	model, err := New(cfg, openPath)
	if err != nil {
		return err
	}
	defer model.Close()

	log.Info("starting terminal interface")
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
