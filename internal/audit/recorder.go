// Package audit records every action dispatched to the board in the session journal.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fentz26/taskboard/internal/board"
	"github.com/fentz26/taskboard/internal/models"
	"github.com/fentz26/taskboard/internal/store"
	"go.uber.org/zap"
)

// Recorder writes a journal entry for each dispatch it observes.
type Recorder struct {
	store *store.Store
	log   *zap.Logger
}

// NewRecorder creates a recorder writing to s. A nil log discards diagnostics.
func NewRecorder(s *store.Store, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: s, log: log}
}

// Observe matches board.Observer. Journal failures are logged and otherwise ignored
// so a broken journal never blocks the board.
func (r *Recorder) Observe(a board.Action, changed bool) {
	if _, err := r.Record(context.Background(), a, changed); err != nil {
		r.log.Warn("journal write failed", zap.String("action", a.Name()), zap.Error(err))
	}
}

// Record writes the journal entry for a.
func (r *Recorder) Record(ctx context.Context, a board.Action, changed bool) (*models.JournalEntry, error) {
	outcome := models.OutcomeApplied
	if !changed {
		outcome = models.OutcomeNoop
	}
	entry, err := r.store.WriteEntry(ctx, a.Name(), hashInputs(a), outcome, board.TaskID(a), describe(a))
	if err != nil {
		return nil, err
	}
	r.log.Debug("action recorded",
		zap.String("action", entry.Action),
		zap.String("outcome", entry.Outcome),
		zap.String("task_id", entry.TaskID),
	)
	return entry, nil
}

// describe summarizes the payload for the history pane.
func describe(a board.Action) string {
	switch a := a.(type) {
	case board.AddTask:
		return a.Title
	case board.EditTask:
		return a.Task.Title
	case board.DeleteTask, board.ToggleComplete:
		return ""
	case board.SetFilter:
		return string(a.Filter)
	case board.SetSearchQuery:
		return fmt.Sprintf("%q", a.Query)
	case board.ReorderTasks:
		return fmt.Sprintf("%d -> %d", a.StartIndex, a.EndIndex)
	}
	return ""
}

// hashInputs creates a SHA256 hash of the action payload.
func hashInputs(inputs interface{}) string {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "hash_error"
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
