package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/taskboard/internal/audit"
	"github.com/fentz26/taskboard/internal/board"
	"github.com/fentz26/taskboard/internal/models"
	"github.com/fentz26/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local)

func day(d int) time.Time {
	return time.Date(2026, 10, d, 0, 0, 0, 0, time.Local)
}

func newTestBoard(opts ...board.Option) *board.Store {
	n := 0
	base := []board.Option{
		board.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		board.WithClock(func() time.Time { return testNow }),
	}
	return board.NewStore(append(base, opts...)...)
}

// newTestApp returns a dashboard over three tasks: an overdue one, a pending
// one and a completed one.
func newTestApp(t *testing.T) (*App, *board.Store) {
	t.Helper()
	b := newTestBoard()
	b.Add(models.Draft{Title: "Buy milk", DueDate: day(16)})
	b.Add(models.Draft{Title: "Pay rent", Description: "monthly", DueDate: day(30)})
	done := b.Add(models.Draft{Title: "Call mum", DueDate: day(20)})
	b.ToggleComplete(done)

	app := New(NewClient(b, nil, nil), Options{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, b
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = a.Update(m)
	}
	return cmd
}

func typeText(a *App, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func titlesOf(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_ListView(t *testing.T) {
	app, _ := newTestApp(t)

	view := app.View()
	assert.Contains(t, view, "Task Dashboard")
	assert.Contains(t, view, "[ALL]")
	assert.Contains(t, view, "all 3 · done 1 · pending 2 · overdue 1")
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "overdue")
	assert.Contains(t, view, "2026-10-30")
	assert.Contains(t, view, "Tasks: 3/3")
}

func TestApp_AddTaskThroughForm(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("n"))
	require.Equal(t, modeForm, app.mode)
	assert.Contains(t, app.View(), "Add Task")

	typeText(app, "Water plants")
	press(app, tea.KeyMsg{Type: tea.KeyTab})
	typeText(app, "balcony")
	press(app, tea.KeyMsg{Type: tea.KeyTab})
	typeText(app, "2026-10-25")
	press(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeList, app.mode)
	st := b.State()
	require.Len(t, st.Tasks, 4)
	added := st.Tasks[3]
	assert.Equal(t, "Water plants", added.Title)
	assert.Equal(t, "balcony", added.Description)
	assert.Equal(t, day(25), added.DueDate)
	assert.Equal(t, 3, added.Order)
	assert.False(t, added.Completed)

	selected, ok := app.list.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, added.ID, selected.ID)
	assert.Contains(t, app.message, "Created task")
}

func TestApp_FormValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		due     string
		wantErr error
	}{
		{name: "blank title", title: "   ", due: "2026-10-25", wantErr: models.ErrTitleRequired},
		{name: "missing date", title: "Water plants", due: "", wantErr: models.ErrDueDateRequired},
		{name: "bad date", title: "Water plants", due: "next week", wantErr: models.ErrInvalidDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, b := newTestApp(t)
			press(app, keyRunes("n"))
			typeText(app, tt.title)
			press(app, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
			typeText(app, tt.due)
			press(app, tea.KeyMsg{Type: tea.KeyCtrlS})

			assert.Equal(t, modeForm, app.mode)
			assert.ErrorIs(t, app.form.Err(), tt.wantErr)
			assert.Contains(t, app.View(), "Error:")
			assert.Len(t, b.State().Tasks, 3)
		})
	}
}

func TestApp_FormEscCancels(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("n"))
	typeText(app, "Draft")
	press(app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeList, app.mode)
	assert.Len(t, b.State().Tasks, 3)
}

func TestApp_EditKeepsCompletionAndOrder(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("j"), keyRunes("j"))
	press(app, keyRunes("e"))
	require.Equal(t, modeForm, app.mode)
	assert.Contains(t, app.View(), "Edit Task")
	assert.Equal(t, "Save", app.form.SubmitLabel())
	assert.Equal(t, "Call mum", app.form.title.Value())
	assert.Equal(t, "2026-10-20", app.form.due.Value())

	app.form.title.SetValue("Call mum and dad")
	press(app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, modeList, app.mode)
	task, ok := b.State().Find("id-3")
	require.True(t, ok)
	assert.Equal(t, "Call mum and dad", task.Title)
	assert.True(t, task.Completed)
	assert.Equal(t, 2, task.Order)
}

func TestApp_EditKeepsDueTimeOfDay(t *testing.T) {
	b := newTestBoard()
	evening := time.Date(2026, 10, 17, 18, 0, 0, 0, time.Local)
	id := b.Add(models.Draft{Title: "Submit report", DueDate: evening})
	app := New(NewClient(b, nil, nil), Options{})

	press(app, keyRunes("e"))
	require.Equal(t, modeForm, app.mode)
	assert.Equal(t, "2026-10-17", app.form.due.Value())
	typeText(app, " v2")
	press(app, tea.KeyMsg{Type: tea.KeyCtrlS})

	task, ok := b.State().Find(id)
	require.True(t, ok)
	assert.Equal(t, "Submit report v2", task.Title)
	assert.True(t, evening.Equal(task.DueDate))
	assert.False(t, task.IsOverdue(testNow))
	assert.Equal(t, 0, board.Summarize(b.State(), testNow).Overdue)

	// A changed date still replaces the due date.
	press(app, keyRunes("e"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	app.form.due.SetValue("2026-10-20")
	press(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	task, _ = b.State().Find(id)
	assert.Equal(t, day(20), task.DueDate)
}

func TestTruncate_KeepsCharactersWhole(t *testing.T) {
	got := truncate("Купить молоко и хлеб в магазине у дома", 20)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, strings.HasPrefix(got, "Купить"))
}

func TestApp_DeleteAsksForConfirmation(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("d"))
	require.Equal(t, modeConfirm, app.mode)
	view := app.View()
	assert.Contains(t, view, DeleteConfirmation)
	assert.Contains(t, view, "Buy milk")

	press(app, keyRunes("n"))
	assert.Equal(t, modeList, app.mode)
	assert.Len(t, b.State().Tasks, 3)

	press(app, keyRunes("d"), keyRunes("y"))
	assert.Equal(t, modeList, app.mode)
	st := b.State()
	require.Len(t, st.Tasks, 2)
	assert.Equal(t, []string{"Pay rent", "Call mum"}, titlesOf(st.Tasks))
	assert.Equal(t, 0, st.Tasks[0].Order)
	assert.Equal(t, 1, st.Tasks[1].Order)
}

func TestApp_ToggleComplete(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes(" "))
	task, _ := b.State().Find("id-1")
	assert.True(t, task.Completed)
	assert.Contains(t, app.message, "Marked complete")

	press(app, keyRunes("x"))
	task, _ = b.State().Find("id-1")
	assert.False(t, task.Completed)
}

func TestApp_Filters(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("f"))
	assert.Equal(t, models.FilterCompleted, b.State().Filter)
	assert.Equal(t, []string{"Call mum"}, titlesOf(app.list.tasks))

	press(app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.FilterPending, b.State().Filter)
	assert.Equal(t, []string{"Buy milk", "Pay rent"}, titlesOf(app.list.tasks))

	press(app, keyRunes("4"))
	assert.Equal(t, []string{"Buy milk"}, titlesOf(app.list.tasks))
	assert.Contains(t, app.View(), "[OVERDUE]")

	press(app, keyRunes("1"))
	assert.Len(t, app.list.tasks, 3)
}

func TestApp_SearchFiltersLive(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("/"))
	require.Equal(t, modeSearch, app.mode)
	typeText(app, "MI")
	assert.Equal(t, "MI", b.State().SearchQuery)
	assert.Equal(t, []string{"Buy milk"}, titlesOf(app.list.tasks))

	// Search takes precedence over the filter.
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	press(app, keyRunes("2"))
	assert.Equal(t, []string{"Buy milk"}, titlesOf(app.list.tasks))

	press(app, keyRunes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", b.State().SearchQuery)
	assert.Equal(t, []string{"Call mum"}, titlesOf(app.list.tasks))
}

func TestApp_MoveSelectedTask(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("J"))
	assert.Equal(t, []string{"Pay rent", "Buy milk", "Call mum"}, titlesOf(b.Visible()))
	selected, _ := app.list.SelectedTask()
	assert.Equal(t, "Buy milk", selected.Title)

	press(app, tea.KeyMsg{Type: tea.KeyShiftUp})
	assert.Equal(t, []string{"Buy milk", "Pay rent", "Call mum"}, titlesOf(b.Visible()))

	// Already at the top.
	press(app, keyRunes("K"))
	assert.Equal(t, []string{"Buy milk", "Pay rent", "Call mum"}, titlesOf(b.Visible()))
}

func TestApp_MoveWithinFilteredView(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes("3"))
	require.Equal(t, []string{"Buy milk", "Pay rent"}, titlesOf(app.list.tasks))
	press(app, keyRunes("J"))

	assert.Equal(t, []string{"Pay rent", "Buy milk"}, titlesOf(app.list.tasks))
	for i, task := range b.State().Tasks {
		assert.Equal(t, i, task.Order)
	}
}

func TestApp_DetailPane(t *testing.T) {
	app, b := newTestApp(t)

	cmd := press(app, keyRunes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeDetail, app.mode)
	require.NotNil(t, cmd)
	view := app.View()
	assert.Contains(t, view, "Pay rent")
	assert.Contains(t, view, "monthly")
	assert.Contains(t, view, "Mark Complete")

	press(app, keyRunes(" "))
	assert.Contains(t, app.View(), "Mark Incomplete")
	task, _ := b.State().Find("id-2")
	assert.True(t, task.Completed)

	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeList, app.mode)
}

func TestApp_DeleteFromDetailReturnsToList(t *testing.T) {
	app, b := newTestApp(t)

	press(app, tea.KeyMsg{Type: tea.KeyEnter}, keyRunes("d"), keyRunes("y"))
	assert.Equal(t, modeList, app.mode)
	_, ok := b.State().Find("id-1")
	assert.False(t, ok)
}

func TestApp_CommandBar(t *testing.T) {
	app, b := newTestApp(t)

	press(app, keyRunes(":"))
	require.Equal(t, modeCommand, app.mode)
	typeText(app, "add Water the plants @2026-10-25")
	press(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeList, app.mode)
	st := b.State()
	require.Len(t, st.Tasks, 4)
	assert.Equal(t, "Water the plants", st.Tasks[3].Title)
	assert.Equal(t, day(25), st.Tasks[3].DueDate)

	press(app, keyRunes(":"))
	typeText(app, "fil")
	press(app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "filter ", app.cmdBar.Value())
	typeText(app, "done")
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, app.messageIsErr)
	assert.Equal(t, models.FilterAll, b.State().Filter)

	press(app, keyRunes(":"))
	typeText(app, "quit")
	assert.True(t, isQuit(t, press(app, tea.KeyMsg{Type: tea.KeyEnter})))
}

func TestApp_QuitKeys(t *testing.T) {
	app, _ := newTestApp(t)
	assert.True(t, isQuit(t, press(app, keyRunes("q"))))
	assert.True(t, isQuit(t, press(app, tea.KeyMsg{Type: tea.KeyCtrlC})))

	press(app, keyRunes("n"))
	assert.False(t, isQuit(t, press(app, keyRunes("q"))))
	assert.Equal(t, "q", app.form.title.Value())
}

func TestApp_HelpPane(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, keyRunes("?"))
	require.Equal(t, modeHelp, app.mode)
	view := app.View()
	assert.Contains(t, view, "new task")
	assert.Contains(t, view, "move up")

	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeList, app.mode)
}

func TestApp_HistoryPane(t *testing.T) {
	ctx := context.Background()
	journal, err := store.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	rec := audit.NewRecorder(journal, nil)
	b := newTestBoard(board.WithObserver(rec.Observe))
	app := New(NewClient(b, journal, nil), Options{HistoryLimit: 10})

	b.Add(models.Draft{Title: "Buy milk", DueDate: day(16)})
	b.ToggleComplete("id-1")
	b.ToggleComplete("missing")
	app.refresh()

	cmd := press(app, keyRunes("h"))
	require.Equal(t, modeHistory, app.mode)
	require.NotNil(t, cmd)
	press(app, cmd())

	require.Len(t, app.history, 3)
	assert.Equal(t, "task.toggle", app.history[0].Action)
	assert.Equal(t, models.OutcomeNoop, app.history[0].Outcome)
	assert.Equal(t, "task.add", app.history[2].Action)
	assert.Contains(t, app.View(), "Session history")

	press(app, keyRunes("h"))
	assert.Equal(t, modeList, app.mode)

	cmd = press(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	press(app, cmd())
	require.Len(t, app.detail.entries, 2)
	assert.Equal(t, "task.add", app.detail.entries[0].Action)
}

func TestApp_ErrMsgShown(t *testing.T) {
	app, _ := newTestApp(t)
	press(app, errMsg{fmt.Errorf("journal closed")})
	assert.True(t, app.messageIsErr)
	assert.Contains(t, app.View(), "Error: journal closed")
}
