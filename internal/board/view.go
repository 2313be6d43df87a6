package board

import (
	"slices"
	"strings"
	"time"

	"github.com/fentz26/taskboard/internal/models"
)

// Visible computes the tasks to display for s at time now.
//
// A non-empty search query takes precedence over the filter mode: while searching,
// every task whose title contains the query (case-insensitive) is shown regardless
// of the filter. The result is ordered by Task.Order.
func Visible(s State, now time.Time) []models.Task {
	var keep func(models.Task) bool
	if s.SearchQuery != "" {
		q := strings.ToLower(s.SearchQuery)
		keep = func(t models.Task) bool {
			return strings.Contains(strings.ToLower(t.Title), q)
		}
	} else {
		keep = filterFunc(s.Filter, now)
	}

	out := make([]models.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Task) int { return a.Order - b.Order })
	return out
}

func filterFunc(f models.Filter, now time.Time) func(models.Task) bool {
	switch f {
	case models.FilterCompleted:
		return func(t models.Task) bool { return t.Completed }
	case models.FilterPending:
		return func(t models.Task) bool { return !t.Completed }
	case models.FilterOverdue:
		return func(t models.Task) bool { return t.IsOverdue(now) }
	default:
		return func(models.Task) bool { return true }
	}
}

// MoveInView translates a move between two positions of view (as returned by
// Visible) into a ReorderTasks over the full collection. The moved task lands at
// the collection position currently held by the task at view position to.
// It returns false when either position is out of range or the view is stale.
func MoveInView(s State, view []models.Task, from, to int) (ReorderTasks, bool) {
	if from < 0 || from >= len(view) || to < 0 || to >= len(view) || from == to {
		return ReorderTasks{}, false
	}
	start := s.IndexOf(view[from].ID)
	end := s.IndexOf(view[to].ID)
	if start < 0 || end < 0 {
		return ReorderTasks{}, false
	}
	return ReorderTasks{StartIndex: start, EndIndex: end}, true
}

// Summary counts tasks per filter mode.
type Summary struct {
	All       int
	Completed int
	Pending   int
	Overdue   int
}

// Count returns the number of tasks matching f.
func (s Summary) Count(f models.Filter) int {
	switch f {
	case models.FilterCompleted:
		return s.Completed
	case models.FilterPending:
		return s.Pending
	case models.FilterOverdue:
		return s.Overdue
	default:
		return s.All
	}
}

// Summarize counts the tasks of s per filter mode at time now.
func Summarize(s State, now time.Time) Summary {
	var sum Summary
	for _, t := range s.Tasks {
		sum.All++
		if t.Completed {
			sum.Completed++
		} else {
			sum.Pending++
		}
		if t.IsOverdue(now) {
			sum.Overdue++
		}
	}
	return sum
}
