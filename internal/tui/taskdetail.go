package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/taskboard/internal/models"
	"github.com/fentz26/taskboard/internal/report"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	valueStyle = lipgloss.NewStyle().
			Foreground(fgColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(secondaryColor).
			Padding(0, 1)
)

// maxDetailEntries bounds the journal entries shown under a task.
const maxDetailEntries = 10

// TaskDetailModel shows one task and its journal entries.
type TaskDetailModel struct {
	viewport   viewport.Model
	task       models.Task
	entries    []models.JournalEntry
	now        time.Time
	dateFormat string
}

// NewTaskDetailModel creates a detail pane.
func NewTaskDetailModel(dateFormat string) *TaskDetailModel {
	return &TaskDetailModel{
		viewport:   viewport.New(80, 20),
		dateFormat: dateFormat,
	}
}

// SetTask sets the task to display and drops entries of the previous one.
func (m *TaskDetailModel) SetTask(t models.Task, now time.Time) {
	if t.ID != m.task.ID {
		m.entries = nil
		m.viewport.GotoTop()
	}
	m.task = t
	m.now = now
	m.refresh()
}

// SetEntries sets the journal entries of the displayed task.
func (m *TaskDetailModel) SetEntries(entries []models.JournalEntry) {
	m.entries = entries
	m.refresh()
}

// Task returns the displayed task.
func (m *TaskDetailModel) Task() models.Task {
	return m.task
}

// SetSize sets the dimensions.
func (m *TaskDetailModel) SetSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = h
	m.refresh()
}

// ToggleLabel names the completion action offered for t.
func ToggleLabel(t models.Task) string {
	if t.Completed {
		return "Mark Incomplete"
	}
	return "Mark Complete"
}

// Update scrolls the pane.
func (m *TaskDetailModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the pane.
func (m *TaskDetailModel) View() string {
	return m.viewport.View()
}

func (m *TaskDetailModel) refresh() {
	m.viewport.SetContent(m.content())
}

func (m *TaskDetailModel) content() string {
	t := m.task
	var b strings.Builder

	b.WriteString(headerStyle.Render(t.Title))
	b.WriteString("\n\n")

	b.WriteString(renderField("ID", t.ID))
	b.WriteString(renderField("Status", report.Status(t, m.now)))
	b.WriteString(renderField("Due", models.FormatDueDate(t.DueDate, m.dateFormat)))
	b.WriteString(renderField("Position", fmt.Sprintf("%d", t.Order+1)))
	desc := t.Description
	if desc == "" {
		desc = "-"
	}
	b.WriteString(renderField("Description", desc))

	b.WriteString("\n")
	b.WriteString(buttonStyle.Render("space: " + ToggleLabel(t)))
	b.WriteString("  ")
	b.WriteString(buttonStyle.Render("e: Edit"))
	b.WriteString("  ")
	b.WriteString(buttonStyle.Render("d: Delete"))
	b.WriteString("\n")

	if len(m.entries) > 0 {
		b.WriteString(sectionStyle.Render("History"))
		b.WriteString("\n")
		for i, e := range m.entries {
			if i >= maxDetailEntries {
				b.WriteString(fmt.Sprintf("  ... and %d more entries\n", len(m.entries)-maxDetailEntries))
				break
			}
			b.WriteString(fmt.Sprintf("  • %s %s %s\n",
				e.Timestamp.Format("15:04:05"), e.Action, truncate(e.Details, 60)))
		}
	}

	return b.String()
}

func renderField(label, value string) string {
	return fmt.Sprintf("%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}

func truncate(s string, n int) string {
	return runewidth.Truncate(strings.ReplaceAll(s, "\n", " "), n, "...")
}
