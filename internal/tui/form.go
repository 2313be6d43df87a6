package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/taskboard/internal/models"
)

var (
	formLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	formFocusedLabelStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	formErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldCount
)

// FormModel edits the title, description and due date of a task.
type FormModel struct {
	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	focus       int
	editingID   string
	err         error

	// loadedDue keeps the time of day of the edited task, which the
	// day-precision field cannot show.
	loadedDue     time.Time
	loadedDueText string
}

// NewFormModel creates an empty add form.
func NewFormModel() *FormModel {
	title := textinput.New()
	title.Placeholder = "What needs to be done?"
	title.CharLimit = 256
	title.Width = 60

	desc := textarea.New()
	desc.Placeholder = "Details (optional)"
	desc.ShowLineNumbers = false
	desc.SetWidth(60)
	desc.SetHeight(4)

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 32
	due.Width = 20

	return &FormModel{title: title, description: desc, due: due}
}

// Reset clears the form for adding a new task.
func (m *FormModel) Reset() tea.Cmd {
	m.editingID = ""
	m.err = nil
	m.loadedDue = time.Time{}
	m.loadedDueText = ""
	m.title.SetValue("")
	m.description.SetValue("")
	m.due.SetValue("")
	return m.setFocus(fieldTitle)
}

// LoadTask fills the form with t for editing.
func (m *FormModel) LoadTask(t models.Task) tea.Cmd {
	m.editingID = t.ID
	m.err = nil
	m.title.SetValue(t.Title)
	m.description.SetValue(t.Description)
	m.loadedDue = t.DueDate
	m.loadedDueText = models.FormatDueDate(t.DueDate, models.DateLayout)
	m.due.SetValue(m.loadedDueText)
	return m.setFocus(fieldTitle)
}

// Editing reports whether the form edits an existing task.
func (m *FormModel) Editing() bool {
	return m.editingID != ""
}

// EditingID returns the id of the task being edited.
func (m *FormModel) EditingID() string {
	return m.editingID
}

// Heading returns the form title.
func (m *FormModel) Heading() string {
	if m.Editing() {
		return "Edit Task"
	}
	return "Add Task"
}

// SubmitLabel returns the label of the submit action.
func (m *FormModel) SubmitLabel() string {
	if m.Editing() {
		return "Save"
	}
	return "Add"
}

// InTextArea reports whether the description field has focus.
func (m *FormModel) InTextArea() bool {
	return m.focus == fieldDescription
}

// SetError shows err under the form.
func (m *FormModel) SetError(err error) {
	m.err = err
}

// Err returns the validation error currently shown.
func (m *FormModel) Err() error {
	return m.err
}

// Draft validates the fields and returns them as a draft.
func (m *FormModel) Draft() (models.Draft, error) {
	d := models.Draft{
		Title:       strings.TrimSpace(m.title.Value()),
		Description: strings.TrimSpace(m.description.Value()),
	}
	if d.Title == "" {
		return d, models.ErrTitleRequired
	}
	if m.Editing() && strings.TrimSpace(m.due.Value()) == m.loadedDueText {
		d.DueDate = m.loadedDue
		return d, d.Validate()
	}
	due, err := models.ParseDueDate(m.due.Value())
	if err != nil {
		return d, err
	}
	d.DueDate = due
	return d, d.Validate()
}

// NextField moves focus forward.
func (m *FormModel) NextField() tea.Cmd {
	return m.setFocus((m.focus + 1) % fieldCount)
}

// PrevField moves focus backward.
func (m *FormModel) PrevField() tea.Cmd {
	return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
}

func (m *FormModel) setFocus(field int) tea.Cmd {
	m.focus = field
	m.title.Blur()
	m.description.Blur()
	m.due.Blur()

	switch field {
	case fieldTitle:
		return m.title.Focus()
	case fieldDescription:
		return m.description.Focus()
	default:
		return m.due.Focus()
	}
}

// Update forwards msg to the focused field.
func (m *FormModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	default:
		m.due, cmd = m.due.Update(msg)
	}
	return cmd
}

// View renders the form.
func (m *FormModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Heading()))
	b.WriteString("\n\n")
	b.WriteString(m.label(fieldTitle, "Title"))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(m.label(fieldDescription, "Description"))
	b.WriteString("\n")
	b.WriteString(m.description.View())
	b.WriteString("\n\n")
	b.WriteString(m.label(fieldDue, "Due date"))
	b.WriteString("\n")
	b.WriteString(m.due.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(formErrorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(buttonStyle.Render("ctrl+s: " + m.SubmitLabel()))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("tab: next field • esc: cancel"))

	return inputBoxStyle.Render(b.String())
}

func (m *FormModel) label(field int, text string) string {
	if m.focus == field {
		return formFocusedLabelStyle.Render("▸ " + text)
	}
	return formLabelStyle.Render("  " + text)
}
