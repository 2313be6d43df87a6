package main

import (
	"context"
	"fmt"

	"github.com/fentz26/taskboard/internal/audit"
	"github.com/fentz26/taskboard/internal/board"
	"github.com/fentz26/taskboard/internal/config"
	"github.com/fentz26/taskboard/internal/logger"
	"github.com/fentz26/taskboard/internal/store"
	"github.com/fentz26/taskboard/internal/taskfile"
	"go.uber.org/zap"
)

// session is a board preloaded from the seed file, optionally journaled.
type session struct {
	board   *board.Store
	journal *store.Store
}

// openSession builds a board for cfg. With journal set, every dispatch is
// recorded in an in-memory journal that lives until Close.
func openSession(ctx context.Context, cfg *config.Config, journal bool) (*session, error) {
	log := logger.Named("session")
	s := &session{}

	var opts []board.Option
	if journal {
		j, err := store.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		s.journal = j
		opts = append(opts, board.WithObserver(audit.NewRecorder(j, logger.Named("audit")).Observe))
	}
	s.board = board.NewStore(opts...)

	if cfg.Seed != "" {
		entries, err := taskfile.ReadFile(cfg.Seed)
		if err != nil {
			s.Close()
			return nil, err
		}
		ids, err := taskfile.Load(s.board, entries)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("load %s: %w", cfg.Seed, err)
		}
		log.Info("seed loaded", zap.String("path", cfg.Seed), zap.Int("tasks", len(ids)))
	}
	return s, nil
}

// Close releases the journal.
func (s *session) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}
