// Package models defines the core domain types for taskboard.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects which tasks the dashboard shows when no search is active.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
	FilterOverdue   Filter = "overdue"
)

// Filters lists every filter mode in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterPending, FilterOverdue}

// ParseFilter converts a user supplied name into a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want all, completed, pending or overdue)", ErrInvalidFilter, s)
}

// Label returns the upper-case name shown in the dashboard header.
func (f Filter) Label() string {
	return strings.ToUpper(string(f))
}

// Next returns the filter that follows f in display order, wrapping around.
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if known == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Task is a single item on the board.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Completed   bool      `json:"completed"`
	Order       int       `json:"order"`
}

// Equal reports whether two tasks carry the same values.
func (t Task) Equal(o Task) bool {
	return t.ID == o.ID &&
		t.Title == o.Title &&
		t.Description == o.Description &&
		t.DueDate.Equal(o.DueDate) &&
		t.Completed == o.Completed &&
		t.Order == o.Order
}

// IsOverdue reports whether the task is past due and still open at now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueDate.Before(now)
}

// Draft carries user input for creating or editing a task.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
}

// Validate checks that the fields required by the board are present.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if d.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	return nil
}

// JournalEntry records one action dispatched to the board during a session.
type JournalEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	InputsHash string    `json:"inputs_hash"`
	Outcome    string    `json:"outcome"`
	TaskID     string    `json:"task_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Journal outcomes.
const (
	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
)
