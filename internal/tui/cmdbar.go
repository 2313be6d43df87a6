package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/taskboard/internal/models"
)

var (
	cmdBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)

// CmdBarModel manages the command input bar
type CmdBarModel struct {
	input       textinput.Model
	suggestions *Suggestions
	focused     bool
}

// NewCmdBarModel creates a new command bar
func NewCmdBarModel() *CmdBarModel {
	ti := textinput.New()
	ti.Placeholder = "add <title> @YYYY-MM-DD | filter <mode> | search <text> | clear | export <format> <path> | quit"
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 80
	return &CmdBarModel{
		input:       ti,
		suggestions: NewSuggestions(),
	}
}

// SetWidth sets the input width.
func (m *CmdBarModel) SetWidth(w int) {
	m.input.Width = max(w-6, 10)
}

// Focus focuses the command bar
func (m *CmdBarModel) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur unfocuses the command bar
func (m *CmdBarModel) Blur() {
	m.focused = false
	m.input.Blur()
	m.input.SetValue("")
	m.suggestions.Update("")
}

// Focused reports whether the bar has focus.
func (m *CmdBarModel) Focused() bool {
	return m.focused
}

// Value returns the current input.
func (m *CmdBarModel) Value() string {
	return m.input.Value()
}

// SetValue replaces the input.
func (m *CmdBarModel) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.suggestions.Update(s)
}

// Submit returns the current input and blurs
func (m *CmdBarModel) Submit() string {
	val := strings.TrimSpace(m.input.Value())
	m.Blur()
	return val
}

// Suggestions returns the autocomplete state.
func (m *CmdBarModel) Suggestions() *Suggestions {
	return m.suggestions
}

// AcceptSuggestion completes the input with the selected suggestion.
func (m *CmdBarModel) AcceptSuggestion() bool {
	completed, ok := m.suggestions.Complete()
	if !ok {
		return false
	}
	m.SetValue(completed)
	return true
}

// Update handles messages
func (m *CmdBarModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.suggestions.Update(m.input.Value())
	return cmd
}

// View renders the command bar
func (m *CmdBarModel) View(width int) string {
	var b strings.Builder
	b.WriteString(inputBoxStyle.Render(promptStyle.Render(": ") + m.input.View()))
	if m.suggestions.IsVisible() {
		b.WriteString("\n")
		b.WriteString(m.suggestions.Render(width))
	}
	return b.String()
}

// Execute runs a command against the board. It must be called from the
// update loop.
func (m *CmdBarModel) Execute(client *Client, input string) cmdResultMsg {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return cmdResultMsg{}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "add":
		d, err := parseAddArgs(args)
		if err != nil {
			return cmdResultMsg{message: "Error: " + err.Error(), isErr: true}
		}
		id, err := client.CreateTask(d)
		if err != nil {
			return cmdResultMsg{message: "Error: " + err.Error(), isErr: true}
		}
		return cmdResultMsg{message: fmt.Sprintf("✓ Created task: %s", shortID(id))}

	case "filter":
		if len(args) != 1 {
			return cmdResultMsg{message: "Usage: filter all|completed|pending|overdue", isErr: true}
		}
		f, err := models.ParseFilter(args[0])
		if err != nil {
			return cmdResultMsg{message: "Error: " + err.Error(), isErr: true}
		}
		client.SetFilter(f)
		return cmdResultMsg{message: "Filter: " + f.Label()}

	case "search":
		q := strings.Join(args, " ")
		client.SetSearch(q)
		if q == "" {
			return cmdResultMsg{message: "Search cleared"}
		}
		return cmdResultMsg{message: fmt.Sprintf("Searching for %q", q)}

	case "clear":
		client.SetSearch("")
		client.SetFilter(models.FilterAll)
		return cmdResultMsg{message: "Filter and search cleared"}

	case "export":
		if len(args) != 2 {
			return cmdResultMsg{message: "Usage: export table|json|csv|pdf <path>", isErr: true}
		}
		n, err := client.Export(args[0], args[1])
		if err != nil {
			return cmdResultMsg{message: "Error: " + err.Error(), isErr: true}
		}
		return cmdResultMsg{message: fmt.Sprintf("✓ Exported %d tasks to %s", n, args[1])}

	case "q", "quit", "exit":
		return cmdResultMsg{quit: true}

	default:
		return cmdResultMsg{message: fmt.Sprintf("Unknown: %s (try: add, filter, search, clear, export, quit)", cmd), isErr: true}
	}
}

// parseAddArgs reads "<title words> @<date>".
func parseAddArgs(args []string) (models.Draft, error) {
	var d models.Draft
	var titleWords []string
	dueRaw := ""
	for _, a := range args {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			dueRaw = a[1:]
			continue
		}
		titleWords = append(titleWords, a)
	}

	d.Title = strings.Join(titleWords, " ")
	if d.Title == "" {
		return d, fmt.Errorf("usage: add <title> @YYYY-MM-DD: %w", models.ErrTitleRequired)
	}
	due, err := models.ParseDueDate(dueRaw)
	if err != nil {
		return d, err
	}
	d.DueDate = due
	return d, nil
}
