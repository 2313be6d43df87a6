// Package taskfile reads YAML seed files of tasks to preload into a session.
//
// Format:
//
//	tasks:
//	  - title: Buy milk
//	    description: 2%
//	    due: 2026-10-20
//	  - title: Pay rent
//	    due: 2026-11-01T09:00:00Z
//	    completed: true
package taskfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fentz26/taskboard/internal/board"
	"github.com/fentz26/taskboard/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrNoTasks is returned for a seed file without any task entries.
var ErrNoTasks = errors.New("seed file contains no tasks")

// Entry is one task in a seed file.
type Entry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Due         string `yaml:"due"`
	Completed   bool   `yaml:"completed"`
}

// Draft converts e into a validated draft.
func (e Entry) Draft() (models.Draft, error) {
	d := models.Draft{Title: e.Title, Description: e.Description}
	if e.Due != "" {
		due, err := models.ParseDueDate(e.Due)
		if err != nil {
			return models.Draft{}, err
		}
		d.DueDate = due
	}
	if err := d.Validate(); err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

type document struct {
	Tasks []Entry `yaml:"tasks"`
}

// Parse decodes a seed document and validates every entry.
func Parse(r io.Reader) ([]Entry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTasks
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(doc.Tasks) == 0 {
		return nil, ErrNoTasks
	}
	for i, e := range doc.Tasks {
		if _, err := e.Draft(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return doc.Tasks, nil
}

// ReadFile parses the seed file at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Load adds every entry to s in file order and marks completed entries done.
// It returns the ids of the created tasks.
func Load(s *board.Store, entries []Entry) ([]string, error) {
	ids := make([]string, 0, len(entries))
	for i, e := range entries {
		d, err := e.Draft()
		if err != nil {
			return ids, fmt.Errorf("task %d: %w", i+1, err)
		}
		id := s.Add(d)
		if e.Completed {
			s.ToggleComplete(id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
