package audit

import (
	"context"
	"testing"
	"time"

	"github.com/fentz26/taskboard/internal/board"
	"github.com/fentz26/taskboard/internal/models"
	"github.com/fentz26/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) (*Recorder, *store.Store) {
	t.Helper()
	s, err := store.New(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewRecorder(s, nil), s
}

func TestRecorder_ObservesStoreDispatches(t *testing.T) {
	rec, journal := newTestRecorder(t)
	b := board.NewStore(
		board.WithIDGenerator(func() string { return "t1" }),
		board.WithObserver(rec.Observe),
	)

	b.Add(models.Draft{Title: "Buy milk", DueDate: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)})
	b.ToggleComplete("t1")
	b.ToggleComplete("missing")
	b.SetSearchQuery("milk")
	b.Reorder(0, 0)

	entries, err := journal.ListEntries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.Equal(t, "task.reorder", entries[0].Action)
	assert.Equal(t, models.OutcomeNoop, entries[0].Outcome)
	assert.Equal(t, "0 -> 0", entries[0].Details)

	assert.Equal(t, "view.search", entries[1].Action)
	assert.Equal(t, `"milk"`, entries[1].Details)

	assert.Equal(t, "task.toggle", entries[2].Action)
	assert.Equal(t, "missing", entries[2].TaskID)
	assert.Equal(t, models.OutcomeNoop, entries[2].Outcome)

	assert.Equal(t, models.OutcomeApplied, entries[3].Outcome)

	assert.Equal(t, "task.add", entries[4].Action)
	assert.Equal(t, "t1", entries[4].TaskID)
	assert.Equal(t, "Buy milk", entries[4].Details)
	assert.Len(t, entries[4].InputsHash, 64)
}

func TestHashInputs_IsStable(t *testing.T) {
	a := board.SetFilter{Filter: models.FilterOverdue}

	assert.Equal(t, hashInputs(a), hashInputs(a))
	assert.NotEqual(t, hashInputs(a), hashInputs(board.SetFilter{Filter: models.FilterAll}))
	assert.Equal(t, "hash_error", hashInputs(func() {}))
}

func TestRecorder_ClosedStoreDoesNotPanic(t *testing.T) {
	rec, journal := newTestRecorder(t)
	require.NoError(t, journal.Close())

	assert.NotPanics(t, func() {
		rec.Observe(board.DeleteTask{ID: "x"}, false)
	})
	_, err := rec.Record(context.Background(), board.DeleteTask{ID: "x"}, false)
	assert.Error(t, err)
}
