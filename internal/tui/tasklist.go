package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/taskboard/internal/models"
)

var (
	checkDone    = lipgloss.NewStyle().Foreground(successColor).Render("[x]")
	checkPending = lipgloss.NewStyle().Foreground(mutedColor).Render("[ ]")

	completedTitleStyle = lipgloss.NewStyle().
				Strikethrough(true).
				Foreground(mutedColor)

	overdueStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	dueStyle = lipgloss.NewStyle().
			Foreground(cyanColor)
)

// TaskListModel renders the visible tasks and tracks the cursor.
type TaskListModel struct {
	tasks      []models.Task
	cursor     int
	now        time.Time
	dateFormat string
	width      int
	height     int
}

// NewTaskListModel creates an empty list.
func NewTaskListModel(dateFormat string) *TaskListModel {
	return &TaskListModel{dateFormat: dateFormat}
}

// SetSize sets the list dimensions.
func (m *TaskListModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetTasks replaces the rows, keeping the cursor on the same task when it is
// still visible.
func (m *TaskListModel) SetTasks(tasks []models.Task, now time.Time) {
	selected, hadSelection := m.SelectedTask()
	m.tasks = tasks
	m.now = now
	if hadSelection && m.Select(selected.ID) {
		return
	}
	m.clamp()
}

// Len returns the number of rows.
func (m *TaskListModel) Len() int {
	return len(m.tasks)
}

// Cursor returns the selected view position.
func (m *TaskListModel) Cursor() int {
	return m.cursor
}

// SelectedTask returns the task under the cursor.
func (m *TaskListModel) SelectedTask() (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return models.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// Select moves the cursor to the task with id.
func (m *TaskListModel) Select(id string) bool {
	for i, t := range m.tasks {
		if t.ID == id {
			m.cursor = i
			return true
		}
	}
	return false
}

// Up moves the cursor up one row.
func (m *TaskListModel) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Down moves the cursor down one row.
func (m *TaskListModel) Down() {
	if m.cursor < len(m.tasks)-1 {
		m.cursor++
	}
}

func (m *TaskListModel) clamp() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the list.
func (m *TaskListModel) View() string {
	if len(m.tasks) == 0 {
		return "\n  No tasks found. Press n to add one.\n"
	}

	lines := make([]string, 0, len(m.tasks))
	for i, t := range m.tasks {
		lines = append(lines, m.renderRow(i, t))
	}

	height := m.height
	if height > 0 && len(lines) > height {
		start := m.cursor - height/2
		if start < 0 {
			start = 0
		}
		end := start + height
		if end > len(lines) {
			end = len(lines)
			start = max(0, end-height)
		}
		lines = lines[start:end]
	}

	return strings.Join(lines, "\n")
}

func (m *TaskListModel) renderRow(i int, t models.Task) string {
	due := models.FormatDueDate(t.DueDate, m.dateFormat)
	overdue := t.IsOverdue(m.now)

	if i == m.cursor {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("▶ %s %s  %s", mark, t.Title, due)
		if overdue {
			line += "  overdue"
		}
		return selectedStyle.Render(line)
	}

	mark := checkPending
	title := t.Title
	if t.Completed {
		mark = checkDone
		title = completedTitleStyle.Render(title)
	}
	dueText := dueStyle.Render(due)
	if overdue {
		dueText = overdueStyle.Render(due + "  overdue")
	}
	return taskItemStyle.Render(fmt.Sprintf("  %s %s  %s", mark, title, dueText))
}
