// Package tui provides the interactive terminal dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/taskboard/internal/models"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6366F1")
	successColor   = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	fgColor        = lipgloss.Color("#F9FAFB")
	cyanColor      = lipgloss.Color("#06B6D4")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(1, 2)
)

// DeleteConfirmation is the question asked before a task is deleted.
const DeleteConfirmation = "Are you sure you want to delete this task?"

// Options tune the dashboard.
type Options struct {
	// DateFormat is the layout used to show due dates.
	DateFormat string
	// HistoryLimit caps the entries loaded into the history pane.
	HistoryLimit int
}

// App is the main TUI application model.
type App struct {
	client  *Client
	keys    KeyMap
	help    help.Model
	list    *TaskListModel
	detail  *TaskDetailModel
	form    *FormModel
	cmdBar  *CmdBarModel
	search  textinput.Model
	history []models.JournalEntry

	mode          mode
	returnMode    mode
	pendingDelete string
	historyLimit  int
	message       string
	messageIsErr  bool
	width         int
	height        int
}

// New creates a new TUI application.
func New(client *Client, opts Options) *App {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	client.dateFormat = opts.DateFormat

	si := textinput.New()
	si.Placeholder = "Search titles..."
	si.Prompt = "/ "
	si.CharLimit = 128
	si.Width = 60

	a := &App{
		client:       client,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		list:         NewTaskListModel(opts.DateFormat),
		detail:       NewTaskDetailModel(opts.DateFormat),
		form:         NewFormModel(),
		cmdBar:       NewCmdBarModel(),
		search:       si,
		mode:         modeList,
		historyLimit: opts.HistoryLimit,
	}
	a.refresh()
	return a
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.cmdBar.SetWidth(msg.Width)
		a.search.Width = max(msg.Width-8, 10)
		a.list.SetSize(msg.Width, a.contentHeight())
		a.detail.SetSize(msg.Width, a.contentHeight())
		return a, nil

	case historyLoadedMsg:
		a.history = msg.entries
		return a, nil

	case taskHistoryLoadedMsg:
		if a.detail.Task().ID == msg.taskID {
			a.detail.SetEntries(msg.entries)
		}
		return a, nil

	case cmdResultMsg:
		return a, a.applyResult(msg)

	case errMsg:
		a.setMessage("Error: "+msg.Error(), true)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		switch a.mode {
		case modeList:
			return a, a.updateList(msg)
		case modeDetail:
			return a, a.updateDetail(msg)
		case modeForm:
			return a, a.updateForm(msg)
		case modeConfirm:
			return a, a.updateConfirm(msg)
		case modeSearch:
			return a, a.updateSearch(msg)
		case modeCommand:
			return a, a.updateCommand(msg)
		case modeHistory, modeHelp:
			if key.Matches(msg, a.keys.Back, a.keys.Quit, a.keys.Help, a.keys.History) {
				a.mode = modeList
			}
			return a, nil
		}
	}

	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) tea.Cmd {
	a.message = ""
	selected, hasSelection := a.list.SelectedTask()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Back):
		if a.client.State().SearchQuery != "" {
			a.client.SetSearch("")
			a.search.SetValue("")
			a.refresh()
		}

	case key.Matches(msg, a.keys.MoveUp):
		a.moveSelected(-1)

	case key.Matches(msg, a.keys.MoveDown):
		a.moveSelected(1)

	case key.Matches(msg, a.keys.Up):
		a.list.Up()

	case key.Matches(msg, a.keys.Down):
		a.list.Down()

	case key.Matches(msg, a.keys.Add):
		a.returnMode = modeList
		a.mode = modeForm
		return a.form.Reset()

	case key.Matches(msg, a.keys.Edit):
		if hasSelection {
			return a.openEdit(selected, modeList)
		}

	case key.Matches(msg, a.keys.Delete):
		if hasSelection {
			a.askDelete(selected.ID, modeList)
		}

	case key.Matches(msg, a.keys.Toggle):
		if hasSelection {
			a.toggle(selected.ID)
		}

	case key.Matches(msg, a.keys.Detail):
		if hasSelection {
			return a.openDetail(selected)
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		a.search.SetValue(a.client.State().SearchQuery)
		a.search.CursorEnd()
		return a.search.Focus()

	case key.Matches(msg, a.keys.CycleFilter):
		a.setFilter(a.client.State().Filter.Next())

	case key.Matches(msg, a.keys.FilterAll):
		a.setFilter(models.FilterAll)

	case key.Matches(msg, a.keys.FilterCompleted):
		a.setFilter(models.FilterCompleted)

	case key.Matches(msg, a.keys.FilterPending):
		a.setFilter(models.FilterPending)

	case key.Matches(msg, a.keys.FilterOverdue):
		a.setFilter(models.FilterOverdue)

	case key.Matches(msg, a.keys.History):
		a.mode = modeHistory
		return a.loadHistory()

	case key.Matches(msg, a.keys.Command):
		a.mode = modeCommand
		return a.cmdBar.Focus()

	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp
	}
	return nil
}

func (a *App) updateDetail(msg tea.KeyMsg) tea.Cmd {
	t := a.detail.Task()

	switch {
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Quit):
		a.mode = modeList
		a.refresh()

	case key.Matches(msg, a.keys.Toggle):
		a.toggle(t.ID)
		return a.loadTaskHistory(t.ID)

	case key.Matches(msg, a.keys.Edit):
		return a.openEdit(t, modeDetail)

	case key.Matches(msg, a.keys.Delete):
		a.askDelete(t.ID, modeDetail)

	default:
		return a.detail.Update(msg)
	}
	return nil
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.mode = a.returnMode
		return nil

	case key.Matches(msg, a.keys.Save):
		return a.submitForm()

	case msg.Type == tea.KeyEnter && !a.form.InTextArea():
		return a.submitForm()

	case key.Matches(msg, a.keys.NextField):
		return a.form.NextField()

	case key.Matches(msg, a.keys.PrevField):
		return a.form.PrevField()
	}
	return a.form.Update(msg)
}

func (a *App) submitForm() tea.Cmd {
	d, err := a.form.Draft()
	if err != nil {
		a.form.SetError(err)
		return nil
	}

	if a.form.Editing() {
		id := a.form.EditingID()
		if err := a.client.UpdateTask(id, d); err != nil {
			a.form.SetError(err)
			return nil
		}
		a.setMessage("✓ Task saved", false)
		a.mode = a.returnMode
		a.refresh()
		if a.mode == modeDetail {
			return a.loadTaskHistory(id)
		}
		return nil
	}

	id, err := a.client.CreateTask(d)
	if err != nil {
		a.form.SetError(err)
		return nil
	}
	a.setMessage(fmt.Sprintf("✓ Created task: %s", shortID(id)), false)
	a.mode = modeList
	a.refresh()
	a.list.Select(id)
	return nil
}

func (a *App) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		if a.client.DeleteTask(a.pendingDelete) {
			a.setMessage("✓ Task deleted", false)
		}
		a.pendingDelete = ""
		a.mode = modeList
		a.refresh()

	case key.Matches(msg, a.keys.Cancel):
		a.pendingDelete = ""
		a.mode = a.returnMode
	}
	return nil
}

func (a *App) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		a.search.Blur()
		a.mode = modeList
		return nil
	case tea.KeyEsc:
		a.search.Blur()
		a.search.SetValue("")
		a.client.SetSearch("")
		a.mode = modeList
		a.refresh()
		return nil
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.client.SetSearch(a.search.Value())
	a.refresh()
	return cmd
}

func (a *App) updateCommand(msg tea.KeyMsg) tea.Cmd {
	sugg := a.cmdBar.Suggestions()

	switch msg.Type {
	case tea.KeyEsc:
		a.cmdBar.Blur()
		a.mode = modeList
		return nil
	case tea.KeyTab:
		a.cmdBar.AcceptSuggestion()
		return nil
	case tea.KeyUp:
		sugg.Prev()
		return nil
	case tea.KeyDown:
		sugg.Next()
		return nil
	case tea.KeyEnter:
		if sugg.IsVisible() && a.cmdBar.AcceptSuggestion() {
			return nil
		}
		input := a.cmdBar.Submit()
		a.mode = modeList
		return a.applyResult(a.cmdBar.Execute(a.client, input))
	}
	return a.cmdBar.Update(msg)
}

func (a *App) applyResult(res cmdResultMsg) tea.Cmd {
	if res.quit {
		return tea.Quit
	}
	if res.message != "" {
		a.setMessage(res.message, res.isErr)
	}
	a.refresh()
	return nil
}

func (a *App) openDetail(t models.Task) tea.Cmd {
	a.mode = modeDetail
	a.detail.SetTask(t, a.client.Now())
	return a.loadTaskHistory(t.ID)
}

func (a *App) openEdit(t models.Task, from mode) tea.Cmd {
	a.returnMode = from
	a.mode = modeForm
	return a.form.LoadTask(t)
}

func (a *App) askDelete(id string, from mode) {
	a.pendingDelete = id
	a.returnMode = from
	a.mode = modeConfirm
}

func (a *App) toggle(id string) {
	if !a.client.ToggleTask(id) {
		return
	}
	if t, ok := a.client.GetTask(id); ok && t.Completed {
		a.setMessage("✓ Marked complete", false)
	} else {
		a.setMessage("Marked incomplete", false)
	}
	a.refresh()
}

func (a *App) moveSelected(delta int) {
	from := a.list.Cursor()
	to := from + delta
	if to < 0 || to >= a.list.Len() {
		return
	}
	if a.client.MoveTask(from, to) {
		a.refresh()
	}
}

func (a *App) setFilter(f models.Filter) {
	a.client.SetFilter(f)
	a.refresh()
}

// refresh re-reads the view projection after the board changed.
func (a *App) refresh() {
	now := a.client.Now()
	a.list.SetTasks(a.client.ListTasks(), now)
	if a.mode == modeDetail {
		t, ok := a.client.GetTask(a.detail.Task().ID)
		if !ok {
			a.mode = modeList
			return
		}
		a.detail.SetTask(t, now)
	}
}

func (a *App) loadHistory() tea.Cmd {
	limit := a.historyLimit
	return func() tea.Msg {
		entries, err := a.client.History(context.Background(), limit)
		if err != nil {
			return errMsg{err}
		}
		return historyLoadedMsg{entries}
	}
}

func (a *App) loadTaskHistory(id string) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.client.TaskHistory(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return taskHistoryLoadedMsg{taskID: id, entries: entries}
	}
}

func (a *App) setMessage(msg string, isErr bool) {
	a.message = msg
	a.messageIsErr = isErr
}

func (a *App) contentHeight() int {
	h := a.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderHeader() + "\n")
	if a.width > 0 {
		b.WriteString(strings.Repeat("─", a.width) + "\n")
	}

	switch a.mode {
	case modeList, modeSearch, modeCommand:
		b.WriteString(a.list.View())
	case modeDetail:
		b.WriteString(a.detail.View())
	case modeForm:
		b.WriteString(a.form.View())
	case modeConfirm:
		b.WriteString(a.renderConfirm())
	case modeHistory:
		b.WriteString(a.renderHistory(a.contentHeight()))
	case modeHelp:
		b.WriteString(panelStyle.Render(a.help.FullHelpView(a.keys.FullHelp())))
	}
	b.WriteString("\n")

	// Message bar
	if a.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(successColor)
		if a.messageIsErr {
			msgStyle = lipgloss.NewStyle().Foreground(errorColor)
		}
		b.WriteString("\n" + msgStyle.Render(a.message))
	}
	b.WriteString("\n")

	switch a.mode {
	case modeSearch:
		b.WriteString(inputBoxStyle.Render(a.search.View()) + "\n")
	case modeCommand:
		b.WriteString(a.cmdBar.View(a.width) + "\n")
	case modeList:
		b.WriteString(a.help.View(a.keys) + "\n")
	}

	b.WriteString(statusBarStyle.Width(a.width).Render(a.statusLine()))
	return b.String()
}

func (a *App) renderHeader() string {
	st := a.client.State()
	sum := a.client.Summary()

	header := titleStyle.Render("✔ Task Dashboard")
	header += "  " + lipgloss.NewStyle().Foreground(cyanColor).Render(fmt.Sprintf("[%s]", st.Filter.Label()))
	counts := fmt.Sprintf("all %d · done %d · pending %d · overdue %d",
		sum.All, sum.Completed, sum.Pending, sum.Overdue)
	header += "  " + lipgloss.NewStyle().Foreground(mutedColor).Render(counts)
	if st.SearchQuery != "" {
		header += "  " + lipgloss.NewStyle().Foreground(warningColor).Render(fmt.Sprintf("search: %q", st.SearchQuery))
	}
	return header
}

func (a *App) renderConfirm() string {
	title := ""
	if t, ok := a.client.GetTask(a.pendingDelete); ok {
		title = t.Title
	}
	body := fmt.Sprintf("%s\n\n  %s\n\n%s", DeleteConfirmation, title, helpStyle.Render("y: delete • n: cancel"))
	return dialogStyle.Render(body)
}

func (a *App) renderHistory(height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session history") + "\n\n")
	if len(a.history) == 0 {
		b.WriteString("  No actions recorded yet.\n")
		return b.String()
	}

	for i, e := range a.history {
		if height > 0 && i >= height-2 {
			b.WriteString(helpStyle.Render(fmt.Sprintf("  ... and %d more", len(a.history)-i)) + "\n")
			break
		}
		outcome := lipgloss.NewStyle().Foreground(successColor).Render(e.Outcome)
		if e.Outcome == models.OutcomeNoop {
			outcome = lipgloss.NewStyle().Foreground(mutedColor).Render(e.Outcome)
		}
		b.WriteString(fmt.Sprintf("  %s  %-12s %-8s %s\n",
			e.Timestamp.Format("15:04:05"), e.Action, outcome, truncate(e.Details, 50)))
	}
	return b.String()
}

func (a *App) statusLine() string {
	visible := a.list.Len()
	total := len(a.client.State().Tasks)
	switch a.mode {
	case modeDetail:
		return " Esc:back | space:toggle | e:edit | d:delete | ↑↓:scroll"
	case modeForm:
		return fmt.Sprintf(" %s | tab:next field | ctrl+s:%s | Esc:cancel", a.form.Heading(), strings.ToLower(a.form.SubmitLabel()))
	case modeConfirm:
		return " y:confirm | n:cancel"
	case modeHistory, modeHelp:
		return " Esc:back"
	case modeCommand:
		return " Enter:run | Tab:complete | Esc:cancel"
	case modeSearch:
		return " Enter:keep | Esc:clear"
	default:
		return fmt.Sprintf(" Tasks: %d/%d | ?:help | q:quit", visible, total)
	}
}
