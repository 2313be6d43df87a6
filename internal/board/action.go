// Package board holds the task collection, the actions that change it, and the
// projection the dashboard renders.
package board

import (
	"time"

	"github.com/fentz26/taskboard/internal/models"
)

// Action is the sealed set of transitions Reduce understands.
//
// go-sumtype:decl Action
type Action interface {
	// Name identifies the action in logs and the session journal.
	Name() string
	sealed()
}

// AddTask appends a new task. ID is generated by the Store before reduction.
type AddTask struct {
	DueDate     time.Time `json:"due_date"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// EditTask replaces the task with the same ID. Task.Order is ignored.
type EditTask struct {
	Task models.Task `json:"task"`
}

// DeleteTask removes a task.
type DeleteTask struct {
	ID string `json:"id"`
}

// ToggleComplete flips a task's completed flag.
type ToggleComplete struct {
	ID string `json:"id"`
}

// SetFilter changes the active filter mode.
type SetFilter struct {
	Filter models.Filter `json:"filter"`
}

// SetSearchQuery changes the active title search.
type SetSearchQuery struct {
	Query string `json:"query"`
}

// ReorderTasks moves the task at StartIndex to EndIndex. Both are positions in the
// full collection, not in a filtered view.
type ReorderTasks struct {
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

func (AddTask) Name() string        { return "task.add" }
func (EditTask) Name() string       { return "task.edit" }
func (DeleteTask) Name() string     { return "task.delete" }
func (ToggleComplete) Name() string { return "task.toggle" }
func (SetFilter) Name() string      { return "view.filter" }
func (SetSearchQuery) Name() string { return "view.search" }
func (ReorderTasks) Name() string   { return "task.reorder" }

func (AddTask) sealed()        {}
func (EditTask) sealed()       {}
func (DeleteTask) sealed()     {}
func (ToggleComplete) sealed() {}
func (SetFilter) sealed()      {}
func (SetSearchQuery) sealed() {}
func (ReorderTasks) sealed()   {}

// TaskID returns the id of the task an action targets, or "" for view actions.
func TaskID(a Action) string {
	switch a := a.(type) {
	case AddTask:
		return a.ID
	case EditTask:
		return a.Task.ID
	case DeleteTask:
		return a.ID
	case ToggleComplete:
		return a.ID
	case SetFilter, SetSearchQuery, ReorderTasks:
		return ""
	}
	return ""
}
