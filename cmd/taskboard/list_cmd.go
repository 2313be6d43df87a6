package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fentz26/taskboard/internal/board"
	"github.com/fentz26/taskboard/internal/logger"
	"github.com/fentz26/taskboard/internal/models"
	"github.com/fentz26/taskboard/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// viewFlags select the projection printed by list and export.
type viewFlags struct {
	filter string
	search string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.filter, "filter", "", "Filter mode (all, completed, pending, overdue; default from config)")
	cmd.Flags().StringVar(&f.search, "search", "", "Case-insensitive title search; overrides --filter")
}

// apply sets the filter and search on b.
func (f *viewFlags) apply(c *cli, b *board.Store) error {
	mode := c.cfg.Filter()
	if f.filter != "" {
		parsed, err := models.ParseFilter(f.filter)
		if err != nil {
			return err
		}
		mode = parsed
	}
	b.SetFilter(mode)
	b.SetSearchQuery(f.search)
	return nil
}

func newListCmd(c *cli) *cobra.Command {
	var (
		view   viewFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks from the seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), c.cfg, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := view.apply(c, s.board); err != nil {
				return err
			}
			if strings.EqualFold(format, "pdf") {
				return fmt.Errorf("pdf output is binary; use export --format pdf --out <path>")
			}

			tasks := s.board.Visible()
			logger.Named("cli").Debug("listing tasks", zap.Int("visible", len(tasks)), zap.String("format", format))
			return report.Render(cmd.OutOrStdout(), format, tasks, report.Options{
				Now:        s.board.Now(),
				DateFormat: c.cfg.UI.DateFormat,
			})
		},
	}
	view.register(cmd)
	cmd.Flags().StringVar(&format, "output", "table", "Output format (table, json, csv)")
	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	var (
		view   viewFlags
		format string
		out    string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a report of the filtered tasks to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), c.cfg, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := view.apply(c, s.board); err != nil {
				return err
			}

			tasks := s.board.Visible()
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			err = report.Render(f, format, tasks, report.Options{
				Now:        s.board.Now(),
				DateFormat: c.cfg.UI.DateFormat,
				Title:      title,
			})
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(out)
				return err
			}

			logger.Named("cli").Info("report exported",
				zap.String("format", format),
				zap.String("path", out),
				zap.Int("tasks", len(tasks)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(tasks), out)
			return nil
		},
	}
	view.register(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "Report format (json, csv, pdf, table)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (required)")
	cmd.Flags().StringVar(&title, "title", "", "Heading of the PDF report")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
