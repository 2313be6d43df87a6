package board

import (
	"time"

	"github.com/fentz26/taskboard/internal/models"
	"github.com/google/uuid"
)

// Observer is notified after every dispatch. changed is false when the action
// left the state as it was.
type Observer func(a Action, changed bool)

// Store owns the board state for one session and applies actions to it.
// It is not safe for concurrent use; the dashboard's update loop is its only caller.
type Store struct {
	state     State
	newID     func() string
	now       func() time.Time
	observers []Observer
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default time-ordered UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock replaces time.Now for view projection.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// WithInitialState starts the store from st instead of an empty board.
func WithInitialState(st State) Option {
	return func(s *Store) { s.state = st.Clone() }
}

// WithObserver registers fn to be called after every dispatch.
func WithObserver(fn Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, fn) }
}

// NewStore creates a store with an empty board.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: NewState(),
		newID: newTaskID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTaskID returns a UUIDv7, which sorts by creation time.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Observe registers fn to be called after every dispatch.
func (s *Store) Observe(fn Observer) {
	s.observers = append(s.observers, fn)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state.Clone()
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Visible returns the current view projection.
func (s *Store) Visible() []models.Task {
	return Visible(s.state, s.now())
}

// Dispatch applies a and reports whether the state changed.
func (s *Store) Dispatch(a Action) bool {
	next := Reduce(s.state, a)
	changed := !next.Equal(s.state)
	s.state = next
	for _, fn := range s.observers {
		fn(a, changed)
	}
	return changed
}

// Add appends a task built from d and returns its id. The caller validates d.
func (s *Store) Add(d models.Draft) string {
	a := AddTask{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
	}
	s.Dispatch(a)
	return a.ID
}

// Edit replaces the task with t.ID, keeping its position.
func (s *Store) Edit(t models.Task) bool {
	return s.Dispatch(EditTask{Task: t})
}

// Delete removes the task with id.
func (s *Store) Delete(id string) bool {
	return s.Dispatch(DeleteTask{ID: id})
}

// ToggleComplete flips the completed flag of the task with id.
func (s *Store) ToggleComplete(id string) bool {
	return s.Dispatch(ToggleComplete{ID: id})
}

// SetFilter changes the filter mode.
func (s *Store) SetFilter(f models.Filter) bool {
	return s.Dispatch(SetFilter{Filter: f})
}

// SetSearchQuery changes the title search.
func (s *Store) SetSearchQuery(q string) bool {
	return s.Dispatch(SetSearchQuery{Query: q})
}

// Reorder moves the task at collection position start to end.
func (s *Store) Reorder(start, end int) bool {
	return s.Dispatch(ReorderTasks{StartIndex: start, EndIndex: end})
}

// MoveVisible moves the task at view position from to view position to.
func (s *Store) MoveVisible(from, to int) bool {
	a, ok := MoveInView(s.state, s.Visible(), from, to)
	if !ok {
		return false
	}
	return s.Dispatch(a)
}
