// Package report renders a list of tasks for output outside the dashboard.
package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fentz26/taskboard/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/mattn/go-runewidth"
)

// ErrUnknownFormat is returned by Render for unsupported formats.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the supported formats.
var Formats = []string{"table", "json", "csv", "pdf"}

// Options tune rendering.
type Options struct {
	// Now decides which tasks are flagged overdue.
	Now time.Time
	// DateFormat is the layout for due dates; empty means models.DateLayout.
	DateFormat string
	// Title heads the PDF report.
	Title string
}

// Render writes tasks to w in the given format.
func Render(w io.Writer, format string, tasks []models.Task, opts Options) error {
	switch strings.ToLower(format) {
	case "table", "":
		return renderTable(w, tasks, opts)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if tasks == nil {
			tasks = []models.Task{}
		}
		return enc.Encode(tasks)
	case "csv":
		return renderCSV(w, tasks, opts)
	case "pdf":
		return renderPDF(w, tasks, opts)
	default:
		return fmt.Errorf("%w: %s (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// Status returns the label used for a task in reports.
func Status(t models.Task, now time.Time) string {
	switch {
	case t.Completed:
		return "done"
	case t.IsOverdue(now):
		return "overdue"
	default:
		return "pending"
	}
}

func renderTable(w io.Writer, tasks []models.Task, opts Options) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tSTATUS")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			truncateID(t.ID),
			truncate(t.Title, 40),
			models.FormatDueDate(t.DueDate, opts.DateFormat),
			Status(t, opts.Now),
		)
	}
	return tw.Flush()
}

func renderCSV(w io.Writer, tasks []models.Task, opts Options) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "order", "title", "description", "due_date", "completed", "status"})
	for _, t := range tasks {
		_ = cw.Write([]string{
			t.ID,
			strconv.Itoa(t.Order),
			t.Title,
			t.Description,
			models.FormatDueDate(t.DueDate, opts.DateFormat),
			strconv.FormatBool(t.Completed),
			Status(t, opts.Now),
		})
	}
	cw.Flush()
	return cw.Error()
}

func renderPDF(w io.Writer, tasks []models.Task, opts Options) error {
	title := opts.Title
	if title == "" {
		title = "Task Dashboard"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(40, 6, "No tasks found")
	}
	for _, t := range tasks {
		line := fmt.Sprintf("[%s] %s  (due %s)", Status(t, opts.Now), t.Title, models.FormatDueDate(t.DueDate, opts.DateFormat))
		pdf.MultiCell(0, 6, line, "0", "L", false)
		if t.Description != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, "    "+t.Description, "0", "L", false)
			pdf.SetFont("Arial", "", 10)
		}
	}
	return pdf.Output(w)
}

// truncate shortens s to n terminal columns without splitting a character.
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
