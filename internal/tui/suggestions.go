package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/taskboard/internal/models"
	"github.com/fentz26/taskboard/internal/report"
)

// Suggestions provides autocomplete for the command bar.
type Suggestions struct {
	filtered    []SuggestionItem
	selectedIdx int
	visible     bool
	header      string
	prefix      string // input preceding the completed word
}

// SuggestionItem represents a single autocomplete suggestion
type SuggestionItem struct {
	Text        string
	Description string
}

var commandSuggestions = []SuggestionItem{
	{Text: "add", Description: "add <title> @YYYY-MM-DD"},
	{Text: "filter", Description: "filter all|completed|pending|overdue"},
	{Text: "search", Description: "search <text>"},
	{Text: "clear", Description: "Reset filter and search"},
	{Text: "export", Description: "export table|json|csv|pdf <path>"},
	{Text: "quit", Description: "Leave the dashboard"},
}

func filterSuggestions() []SuggestionItem {
	items := make([]SuggestionItem, len(models.Filters))
	for i, f := range models.Filters {
		items[i] = SuggestionItem{Text: string(f), Description: f.Label()}
	}
	return items
}

func formatSuggestions() []SuggestionItem {
	items := make([]SuggestionItem, len(report.Formats))
	for i, f := range report.Formats {
		items[i] = SuggestionItem{Text: f, Description: "Export format"}
	}
	return items
}

// NewSuggestions creates a new suggestions handler
func NewSuggestions() *Suggestions {
	return &Suggestions{}
}

// Update updates suggestions based on current input
func (s *Suggestions) Update(input string) {
	fields := strings.Fields(input)
	trailingSpace := strings.HasSuffix(input, " ")

	var items []SuggestionItem
	var word string
	switch {
	case len(fields) == 0:
		s.hide()
		return
	case len(fields) == 1 && !trailingSpace:
		items, word = commandSuggestions, fields[0]
		s.header = "Commands"
	case (fields[0] == "filter" || fields[0] == "export") && (len(fields) == 1 || (len(fields) == 2 && !trailingSpace)):
		if len(fields) == 2 {
			word = fields[1]
		}
		if fields[0] == "filter" {
			items = filterSuggestions()
			s.header = "Filters"
		} else {
			items = formatSuggestions()
			s.header = "Formats"
		}
	default:
		s.hide()
		return
	}

	s.prefix = strings.TrimSuffix(input, word)
	s.filter(items, strings.ToLower(word))
	s.visible = true

	// Nothing left to complete once the word matches exactly.
	if len(s.filtered) == 1 && s.filtered[0].Text == word {
		s.hide()
	}
}

func (s *Suggestions) hide() {
	s.visible = false
	s.filtered = nil
	s.selectedIdx = 0
	s.prefix = ""
}

func (s *Suggestions) filter(items []SuggestionItem, query string) {
	s.selectedIdx = 0
	if query == "" {
		s.filtered = items
		return
	}

	s.filtered = []SuggestionItem{}
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Text), query) {
			s.filtered = append(s.filtered, item)
		}
	}
}

// Next moves to the next suggestion
func (s *Suggestions) Next() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx = (s.selectedIdx + 1) % len(s.filtered)
}

// Prev moves to the previous suggestion
func (s *Suggestions) Prev() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx--
	if s.selectedIdx < 0 {
		s.selectedIdx = len(s.filtered) - 1
	}
}

// Selected returns the currently selected suggestion
func (s *Suggestions) Selected() *SuggestionItem {
	if !s.visible || len(s.filtered) == 0 || s.selectedIdx >= len(s.filtered) {
		return nil
	}
	return &s.filtered[s.selectedIdx]
}

// Complete returns input with the selected suggestion applied.
func (s *Suggestions) Complete() (string, bool) {
	sel := s.Selected()
	if sel == nil {
		return "", false
	}
	return s.prefix + sel.Text + " ", true
}

// IsVisible returns whether suggestions are currently visible
func (s *Suggestions) IsVisible() bool {
	return s.visible && len(s.filtered) > 0
}

// Render renders the suggestions dropdown
func (s *Suggestions) Render(width int) string {
	if !s.IsVisible() {
		return ""
	}

	var b strings.Builder

	suggestionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(max(width-4, 20))

	itemStyle := lipgloss.NewStyle().
		Foreground(fgColor)

	descStyle := lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true)

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(s.header))
	b.WriteString("\n")

	maxVisible := 5
	for i, item := range s.filtered {
		if i >= maxVisible {
			more := len(s.filtered) - maxVisible
			b.WriteString(descStyle.Render(fmt.Sprintf("  ... and %d more", more)))
			break
		}

		var line string
		if i == s.selectedIdx {
			line = selectedStyle.Render("▶ " + item.Text)
			if item.Description != "" {
				line += " " + selectedStyle.Render(item.Description)
			}
		} else {
			line = itemStyle.Render("  " + item.Text)
			if item.Description != "" {
				line += " " + descStyle.Render(item.Description)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return suggestionStyle.Render(b.String())
}
