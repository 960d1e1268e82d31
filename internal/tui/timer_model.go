package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxd/timeboxd/internal/db"
	"github.com/timeboxd/timeboxd/internal/models"
)

// TimerModel represents the TUI model for a running timebox
type TimerModel struct {
	width  int
	height int

	store   *db.Store
	timebox *models.Timebox

	// Timer state
	actual   time.Duration
	intended time.Duration
	paused   bool

	// Exit state
	outcome string // set when a closing transition ran before exit
	err     error
}

// timerTickMsg is sent every second to refresh the worked time
type timerTickMsg struct{}

// NewTimerModel creates a new timer TUI model
func NewTimerModel(store *db.Store, timebox *models.Timebox) TimerModel {
	m := TimerModel{
		store:    store,
		timebox:  timebox,
		intended: time.Duration(timebox.IntendedDuration) * time.Second,
	}
	if actual, err := store.ActualDuration(timebox.ID); err == nil {
		m.actual = actual
	}
	return m
}

// Init starts the per-second refresh
func (m TimerModel) Init() tea.Cmd {
	return timerTick()
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if actual, err := m.store.ActualDuration(m.timebox.ID); err == nil {
			m.actual = actual
		}
		return m, timerTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			// Leave the timebox running
			return m, tea.Quit

		case "p":
			if m.paused {
				return m.transition(m.store.StartTimebox, "")
			}
			return m.transition(m.store.PauseTimebox, "")

		case "f":
			return m.transition(m.store.FinishTimebox, "✅ Finished")

		case "s":
			return m.transition(m.store.StopTimebox, "⏹️  Stopped")

		case "c":
			return m.transition(m.store.CancelTimebox, "❌ Cancelled")

		case "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

// transition runs a lifecycle call; closing transitions quit the timer while
// pause/resume keep it on screen.
func (m TimerModel) transition(fn func(uint) (*models.Timebox, error), outcome string) (tea.Model, tea.Cmd) {
	tb, err := fn(m.timebox.ID)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.timebox = tb
	m.paused = tb.Status == models.StatusPaused
	if outcome != "" {
		m.outcome = outcome
		return m, tea.Quit
	}
	return m, nil
}

// View renders the timer
func (m TimerModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true)

	timerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText))

	remaining := m.intended - m.actual
	state := "running"
	if m.paused {
		state = "paused"
	}
	if remaining < 0 {
		timerStyle = timerStyle.Foreground(lipgloss.Color(ColorWarning))
		state = "over time"
	}

	card := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("#%d  %s", m.timebox.ID, m.timebox.Intention)),
		"",
		timerStyle.Render(formatClock(m.actual)),
		labelStyle.Render(fmt.Sprintf("of %s intended (%s)", formatClock(m.intended), state)),
		"",
		helpStyle.Render("p pause/resume • f finish • s stop • c cancel • q leave running"),
	)

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 4)

	if m.width == 0 {
		return cardStyle.Render(card)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(card))
}

// formatClock renders a duration as h:mm:ss or mm:ss
func formatClock(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
