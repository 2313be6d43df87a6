package board

import (
	"testing"
	"time"

	"github.com/fentz26/taskboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func milkAndRent() State {
	s := NewState()
	s = Reduce(s, AddTask{ID: "milk", Title: "Buy milk", DueDate: testNow.Add(-24 * time.Hour)})
	s = Reduce(s, AddTask{ID: "rent", Title: "Pay rent", DueDate: testNow.Add(24 * time.Hour)})
	return Reduce(s, ToggleComplete{ID: "rent"})
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestVisible_Filters(t *testing.T) {
	tests := []struct {
		filter models.Filter
		want   []string
	}{
		{filter: models.FilterAll, want: []string{"Buy milk", "Pay rent"}},
		{filter: models.FilterCompleted, want: []string{"Pay rent"}},
		{filter: models.FilterPending, want: []string{"Buy milk"}},
		{filter: models.FilterOverdue, want: []string{"Buy milk"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			s := Reduce(milkAndRent(), SetFilter{Filter: tt.filter})
			assert.Equal(t, tt.want, titles(Visible(s, testNow)))
		})
	}
}

func TestVisible_OverdueExcludesCompleted(t *testing.T) {
	s := Reduce(milkAndRent(), SetFilter{Filter: models.FilterOverdue})
	require.Equal(t, []string{"Buy milk"}, titles(Visible(s, testNow)))

	s = Reduce(s, ToggleComplete{ID: "milk"})
	assert.Empty(t, Visible(s, testNow))
}

func TestVisible_OverdueIsStrictlyBeforeNow(t *testing.T) {
	s := Reduce(NewState(), AddTask{ID: "a", Title: "due now", DueDate: testNow})
	s = Reduce(s, SetFilter{Filter: models.FilterOverdue})

	assert.Empty(t, Visible(s, testNow))
	assert.Len(t, Visible(s, testNow.Add(time.Second)), 1)
}

func TestVisible_SearchIgnoresFilter(t *testing.T) {
	for _, f := range models.Filters {
		t.Run(string(f), func(t *testing.T) {
			s := Reduce(milkAndRent(), SetFilter{Filter: f})
			s = Reduce(s, SetSearchQuery{Query: "milk"})
			assert.Equal(t, []string{"Buy milk"}, titles(Visible(s, testNow)))
		})
	}
}

func TestVisible_SearchIsCaseInsensitiveOnTitleOnly(t *testing.T) {
	s := Reduce(NewState(), AddTask{ID: "a", Title: "Buy MILK", DueDate: testDue})
	s = Reduce(s, AddTask{ID: "b", Title: "Groceries", Description: "milk and eggs", DueDate: testDue})
	s = Reduce(s, SetSearchQuery{Query: "Milk"})

	assert.Equal(t, []string{"Buy MILK"}, titles(Visible(s, testNow)))
}

func TestVisible_SortsByOrder(t *testing.T) {
	s := Reduce(seeded(4), ReorderTasks{StartIndex: 3, EndIndex: 0})

	assert.Equal(t, []string{"t3", "t0", "t1", "t2"}, ids(Visible(s, testNow)))
}

func TestMoveInView_FilteredView(t *testing.T) {
	// t0 done, t1 open, t2 done, t3 open; pending view is [t1, t3]
	s := seeded(4)
	s = Reduce(s, ToggleComplete{ID: "t0"})
	s = Reduce(s, ToggleComplete{ID: "t2"})
	s = Reduce(s, SetFilter{Filter: models.FilterPending})
	view := Visible(s, testNow)
	require.Equal(t, []string{"t1", "t3"}, ids(view))

	a, ok := MoveInView(s, view, 1, 0)
	require.True(t, ok)
	assert.Equal(t, ReorderTasks{StartIndex: 3, EndIndex: 1}, a)

	next := Reduce(s, a)
	assert.Equal(t, []string{"t3", "t1"}, ids(Visible(next, testNow)))
	assert.Equal(t, []string{"t0", "t3", "t1", "t2"}, ids(next.Tasks))
}

func TestMoveInView_FullViewMatchesCollectionIndices(t *testing.T) {
	s := seeded(4)
	view := Visible(s, testNow)

	a, ok := MoveInView(s, view, 0, 2)
	require.True(t, ok)
	assert.Equal(t, ReorderTasks{StartIndex: 0, EndIndex: 2}, a)
}

func TestMoveInView_Rejects(t *testing.T) {
	s := seeded(3)
	view := Visible(s, testNow)

	_, ok := MoveInView(s, view, 0, 0)
	assert.False(t, ok)
	_, ok = MoveInView(s, view, 0, 3)
	assert.False(t, ok)
	_, ok = MoveInView(s, view, -1, 1)
	assert.False(t, ok)

	stale := Reduce(s, DeleteTask{ID: "t1"})
	_, ok = MoveInView(stale, view, 0, 1)
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	sum := Summarize(milkAndRent(), testNow)

	assert.Equal(t, Summary{All: 2, Completed: 1, Pending: 1, Overdue: 1}, sum)
	assert.Equal(t, 1, sum.Count(models.FilterOverdue))
	assert.Equal(t, 2, sum.Count(models.FilterAll))
}
