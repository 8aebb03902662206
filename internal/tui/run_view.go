// Package tui renders a live view of an orchestration run. The view is
// driven entirely by the orchestrator's event channel; it holds no handle
// on the orchestrator itself.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agenticwork/conductor/pkg/models"
)

// Status icons for subagent states.
const (
	iconPending = "[○]"
	iconRunning = "[●]"
	iconDone    = "[✓]"
	iconFailed  = "[✗]"
)

type taskStatus int

const (
	statusPending taskStatus = iota
	statusRunning
	statusDone
	statusFailed
)

// taskRow is the display state of one subagent.
type taskRow struct {
	id       string
	name     string
	domain   models.Domain
	status   taskStatus
	lastTool string
	message  string
}

// eventMsg wraps an orchestrator event for the bubbletea loop.
type eventMsg models.Event

// eventsClosedMsg signals that the orchestration finished and the channel
// was closed.
type eventsClosedMsg struct{}

// RunModel is the bubbletea model for a live orchestration run.
type RunModel struct {
	request string
	events  <-chan models.Event
	spinner spinner.Model

	rows  []*taskRow
	index map[string]*taskRow
	phase string
	done  bool

	headerStyle lipgloss.Style
	rowStyle    lipgloss.Style
	dimStyle    lipgloss.Style
	okStyle     lipgloss.Style
	failStyle   lipgloss.Style
	runStyle    lipgloss.Style
}

// NewRunModel creates the live run view for a request.
func NewRunModel(request string, events <-chan models.Event) *RunModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return &RunModel{
		request: request,
		events:  events,
		spinner: s,
		index:   make(map[string]*taskRow),
		phase:   "planning",

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("7")),
		rowStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		dimStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		okStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")),
		failStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		runStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")),
	}
}

// Init starts the spinner and the event pump.
func (m *RunModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// waitForEvent blocks on the next orchestrator event.
func (m *RunModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

// Update handles input and event messages.
func (m *RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.apply(models.Event(msg))
		if m.done {
			return m, tea.Quit
		}
		return m, m.waitForEvent()

	case eventsClosedMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// apply folds one orchestrator event into the display state.
func (m *RunModel) apply(event models.Event) {
	switch event.Type {
	case models.EventOrchestrationStarted:
		m.phase = "running"

	case models.EventSubagentStarted:
		row := m.row(event)
		row.status = statusRunning

	case models.EventSubagentToolCall:
		row := m.row(event)
		row.lastTool = event.Tool

	case models.EventSubagentCompleted:
		row := m.row(event)
		if event.Success {
			row.status = statusDone
		} else {
			row.status = statusFailed
			row.message = event.Message
		}

	case models.EventOrchestrationSynthesizing:
		m.phase = "synthesizing"

	case models.EventOrchestrationCompleted:
		m.phase = "done"
		m.done = true
	}
}

// row finds or creates the display row for an event's task.
func (m *RunModel) row(event models.Event) *taskRow {
	if row, ok := m.index[event.TaskID]; ok {
		return row
	}
	row := &taskRow{
		id:     event.TaskID,
		name:   event.TaskName,
		domain: event.Domain,
	}
	m.rows = append(m.rows, row)
	m.index[event.TaskID] = row
	return row
}

// View renders the run state.
func (m *RunModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerStyle.Render("conductor: " + truncate(m.request, 70)))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.phase {
	case "done":
		b.WriteString(m.okStyle.Render("done"))
	case "synthesizing":
		b.WriteString(m.spinner.View() + " synthesizing final answer")
	default:
		b.WriteString(m.spinner.View() + " " + m.phase)
	}
	b.WriteString("\n")
	b.WriteString(m.dimStyle.Render("[q] quit"))

	return b.String()
}

func (m *RunModel) renderRow(row *taskRow) string {
	var icon string
	switch row.status {
	case statusRunning:
		icon = m.runStyle.Render(iconRunning)
	case statusDone:
		icon = m.okStyle.Render(iconDone)
	case statusFailed:
		icon = m.failStyle.Render(iconFailed)
	default:
		icon = m.dimStyle.Render(iconPending)
	}

	name := row.name
	if name == "" {
		name = row.id
	}
	line := fmt.Sprintf("%s %-28s %-10s", icon, truncate(name, 28), row.domain)
	if row.status == statusRunning && row.lastTool != "" {
		line += m.dimStyle.Render(" " + row.lastTool)
	}
	if row.status == statusFailed && row.message != "" {
		line += m.failStyle.Render(" " + truncate(row.message, 40))
	}
	return m.rowStyle.Render(line)
}

// Done reports whether the run finished.
func (m *RunModel) Done() bool {
	return m.done
}

// truncate shortens a string to fit in a column.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
