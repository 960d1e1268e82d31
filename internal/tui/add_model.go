package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timeboxd/timeboxd/internal/db"
	"github.com/timeboxd/timeboxd/internal/models"
)

const (
	fieldIntention = iota
	fieldDuration
	fieldNotes
	fieldCount
)

// AddModel is the interactive form for creating a timebox
type AddModel struct {
	width  int
	height int

	store  *db.Store
	inputs []textinput.Model
	focus  int

	validationMsg string

	// Exit state
	cancelled bool
	created   *models.Timebox
	err       error
}

// NewAddModel creates the add form with focus on the intention field
func NewAddModel(store *db.Store) AddModel {
	inputs := make([]textinput.Model, fieldCount)

	intention := textinput.New()
	intention.Placeholder = "What do you intend to do?"
	intention.CharLimit = 120
	intention.Width = 48
	intention.Focus()
	inputs[fieldIntention] = intention

	duration := textinput.New()
	duration.Placeholder = "25m"
	duration.CharLimit = 10
	duration.Width = 12
	inputs[fieldDuration] = duration

	notes := textinput.New()
	notes.Placeholder = "Notes (optional)"
	notes.CharLimit = 240
	notes.Width = 48
	inputs[fieldNotes] = notes

	return AddModel{
		store:  store,
		inputs: inputs,
	}
}

// Init implements tea.Model
func (m AddModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.focus--
			} else {
				m.focus++
			}
			m.focus = (m.focus + fieldCount) % fieldCount
			return m.refocus()

		case "enter":
			if m.focus < fieldCount-1 {
				m.focus++
				return m.refocus()
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m AddModel) refocus() (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, fieldCount)
	for i := range m.inputs {
		if i == m.focus {
			cmds = append(cmds, m.inputs[i].Focus())
			continue
		}
		m.inputs[i].Blur()
	}
	return m, tea.Batch(cmds...)
}

func (m AddModel) submit() (tea.Model, tea.Cmd) {
	duration, err := time.ParseDuration(m.inputs[fieldDuration].Value())
	if err != nil {
		m.validationMsg = "Duration must look like 25m or 1h30m"
		return m, nil
	}

	req := db.CreateTimeboxRequest{
		Intention:        m.inputs[fieldIntention].Value(),
		IntendedDuration: int64(duration.Seconds()),
	}
	if notes := m.inputs[fieldNotes].Value(); notes != "" {
		req.Notes = &notes
	}

	tb, err := m.store.CreateTimebox(req)
	if err != nil {
		m.validationMsg = err.Error()
		return m, nil
	}

	m.created = tb
	return m, tea.Quit
}

// View renders the form
func (m AddModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorError))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText))

	rows := []string{
		titleStyle.Render("New timebox"),
		"",
		labelStyle.Render("Intention"),
		m.inputs[fieldIntention].View(),
		"",
		labelStyle.Render("Intended duration"),
		m.inputs[fieldDuration].View(),
		"",
		labelStyle.Render("Notes"),
		m.inputs[fieldNotes].View(),
	}
	if m.validationMsg != "" {
		rows = append(rows, "", errorStyle.Render(m.validationMsg))
	}
	rows = append(rows, "", helpStyle.Render("enter next/create • tab move • esc cancel"))

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if m.width == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
