package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeboxd/timeboxd/internal/db"
	"github.com/timeboxd/timeboxd/internal/models"
)

// RunTimerTUI starts the interactive timer for a started timebox
func RunTimerTUI(store *db.Store, timebox *models.Timebox) error {
	model := NewTimerModel(store, timebox)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Handle exit messages after TUI closes
	if m, ok := finalModel.(TimerModel); ok {
		switch {
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		case m.outcome != "":
			fmt.Printf("%s timebox #%d: %s\n", m.outcome, m.timebox.ID, m.timebox.Intention)
		default:
			fmt.Printf("⏱️  Timebox #%d keeps running in the background\n", m.timebox.ID)
		}
	}

	return nil
}

// RunAddTimeboxTUI starts the interactive add form
func RunAddTimeboxTUI(store *db.Store) error {
	model := NewAddModel(store)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(AddModel); ok {
		switch {
		case m.cancelled:
			fmt.Println("❌ Timebox creation cancelled.")
		case m.created != nil:
			fmt.Printf("📦 Created timebox #%d: %s\n", m.created.ID, m.created.Intention)
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}

	return nil
}
