package board

import (
	"slices"

	"github.com/fentz26/taskboard/internal/models"
)

// State is the complete board: tasks in collection order plus view selection.
type State struct {
	Tasks       []models.Task `json:"tasks"`
	Filter      models.Filter `json:"filter"`
	SearchQuery string        `json:"search_query"`
}

// NewState returns an empty board showing all tasks.
func NewState() State {
	return State{Filter: models.FilterAll}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Tasks = slices.Clone(s.Tasks)
	return s
}

// Equal reports whether two states carry the same values.
func (s State) Equal(o State) bool {
	return s.Filter == o.Filter &&
		s.SearchQuery == o.SearchQuery &&
		slices.EqualFunc(s.Tasks, o.Tasks, models.Task.Equal)
}

// IndexOf returns the collection position of the task with id, or -1.
func (s State) IndexOf(id string) int {
	return slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == id })
}

// Find returns the task with id.
func (s State) Find(id string) (models.Task, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.Tasks[i], true
	}
	return models.Task{}, false
}

// Reduce applies a to s and returns the resulting state. s is never modified.
// Actions naming an unknown task, and reorders with out-of-range indices, return
// s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case AddTask:
		next := s.Clone()
		next.Tasks = append(next.Tasks, models.Task{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			DueDate:     a.DueDate,
			Order:       len(s.Tasks),
		})
		return next

	case EditTask:
		i := s.IndexOf(a.Task.ID)
		if i < 0 {
			return s
		}
		next := s.Clone()
		edited := a.Task
		edited.Order = s.Tasks[i].Order
		next.Tasks[i] = edited
		return next

	case DeleteTask:
		i := s.IndexOf(a.ID)
		if i < 0 {
			return s
		}
		next := s.Clone()
		next.Tasks = slices.Delete(next.Tasks, i, i+1)
		renumber(next.Tasks)
		return next

	case ToggleComplete:
		i := s.IndexOf(a.ID)
		if i < 0 {
			return s
		}
		next := s.Clone()
		next.Tasks[i].Completed = !next.Tasks[i].Completed
		return next

	case SetFilter:
		next := s.Clone()
		next.Filter = a.Filter
		return next

	case SetSearchQuery:
		next := s.Clone()
		next.SearchQuery = a.Query
		return next

	case ReorderTasks:
		n := len(s.Tasks)
		if a.StartIndex < 0 || a.StartIndex >= n || a.EndIndex < 0 || a.EndIndex >= n {
			return s
		}
		next := s.Clone()
		moved := next.Tasks[a.StartIndex]
		next.Tasks = slices.Delete(next.Tasks, a.StartIndex, a.StartIndex+1)
		next.Tasks = slices.Insert(next.Tasks, a.EndIndex, moved)
		renumber(next.Tasks)
		return next
	}
	return s
}

func renumber(tasks []models.Task) {
	for i := range tasks {
		tasks[i].Order = i
	}
}
