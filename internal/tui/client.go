package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fentz26/taskboard/internal/board"
	"github.com/fentz26/taskboard/internal/models"
	"github.com/fentz26/taskboard/internal/report"
	"github.com/fentz26/taskboard/internal/store"
	"go.uber.org/zap"
)

// Client is the dashboard's single entry point to the board and the session journal.
// Board methods must only be called from the bubbletea update loop.
type Client struct {
	board      *board.Store
	journal    *store.Store
	log        *zap.Logger
	dateFormat string
}

// NewClient wraps b. journal may be nil, which disables the history pane.
func NewClient(b *board.Store, journal *store.Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{board: b, journal: journal, log: log}
}

// Now returns the board clock.
func (c *Client) Now() time.Time {
	return c.board.Now()
}

// State returns a copy of the board state.
func (c *Client) State() board.State {
	return c.board.State()
}

// ListTasks returns the current view projection.
func (c *Client) ListTasks() []models.Task {
	return c.board.Visible()
}

// Summary counts tasks per filter mode.
func (c *Client) Summary() board.Summary {
	return board.Summarize(c.board.State(), c.board.Now())
}

// GetTask looks up a task by id.
func (c *Client) GetTask(id string) (models.Task, bool) {
	return c.board.State().Find(id)
}

// CreateTask validates d and adds it to the board.
func (c *Client) CreateTask(d models.Draft) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	id := c.board.Add(d)
	c.log.Info("task created", zap.String("task_id", id), zap.String("title", d.Title))
	return id, nil
}

// UpdateTask validates d and applies it to the task with id, keeping its
// completed flag.
func (c *Client) UpdateTask(id string, d models.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	existing, ok := c.GetTask(id)
	if !ok {
		return fmt.Errorf("task %s no longer exists", shortID(id))
	}
	existing.Title = d.Title
	existing.Description = d.Description
	existing.DueDate = d.DueDate
	c.board.Edit(existing)
	c.log.Info("task edited", zap.String("task_id", id))
	return nil
}

// DeleteTask removes the task with id.
func (c *Client) DeleteTask(id string) bool {
	ok := c.board.Delete(id)
	c.log.Info("task deleted", zap.String("task_id", id), zap.Bool("found", ok))
	return ok
}

// ToggleTask flips the completed flag of the task with id.
func (c *Client) ToggleTask(id string) bool {
	return c.board.ToggleComplete(id)
}

// SetFilter changes the filter mode.
func (c *Client) SetFilter(f models.Filter) {
	c.board.SetFilter(f)
}

// SetSearch changes the title search.
func (c *Client) SetSearch(q string) {
	c.board.SetSearchQuery(q)
}

// MoveTask moves the task at view position from to view position to.
func (c *Client) MoveTask(from, to int) bool {
	return c.board.MoveVisible(from, to)
}

// History returns the most recent journal entries, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	if c.journal == nil {
		return nil, nil
	}
	return c.journal.ListEntries(ctx, limit)
}

// TaskHistory returns the journal entries of one task, oldest first.
func (c *Client) TaskHistory(ctx context.Context, id string) ([]models.JournalEntry, error) {
	if c.journal == nil {
		return nil, nil
	}
	return c.journal.EntriesForTask(ctx, id)
}

// Export writes a report of the current view to path.
func (c *Client) Export(format, path string) (int, error) {
	tasks := c.board.Visible()

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	err = report.Render(f, format, tasks, report.Options{Now: c.board.Now(), DateFormat: c.dateFormat})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	c.log.Info("view exported", zap.String("format", format), zap.String("path", path), zap.Int("tasks", len(tasks)))
	return len(tasks), nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
