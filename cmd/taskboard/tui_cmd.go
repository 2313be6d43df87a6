package main

import (
	"fmt"

	"github.com/fentz26/taskboard/internal/logger"
	"github.com/fentz26/taskboard/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd)
		},
	}
}

func (c *cli) runTUI(cmd *cobra.Command) error {
	s, err := openSession(cmd.Context(), c.cfg, true)
	if err != nil {
		return err
	}
	defer s.Close()

	s.board.SetFilter(c.cfg.Filter())

	log := logger.Named("tui")
	log.Info("dashboard starting", zap.Int("tasks", len(s.board.State().Tasks)))

	app := tui.New(tui.NewClient(s.board, s.journal, log), tui.Options{
		DateFormat:   c.cfg.UI.DateFormat,
		HistoryLimit: c.cfg.Journal.HistoryLimit,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	log.Info("dashboard closed", zap.Int("tasks", len(s.board.State().Tasks)))
	return nil
}
