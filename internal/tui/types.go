package tui

import "github.com/fentz26/taskboard/internal/models"

// mode is the screen the dashboard is showing.
type mode int

const (
	modeList mode = iota
	modeDetail
	modeForm
	modeConfirm
	modeSearch
	modeCommand
	modeHistory
	modeHelp
)

func (m mode) String() string {
	switch m {
	case modeList:
		return "list"
	case modeDetail:
		return "detail"
	case modeForm:
		return "form"
	case modeConfirm:
		return "confirm"
	case modeSearch:
		return "search"
	case modeCommand:
		return "command"
	case modeHistory:
		return "history"
	case modeHelp:
		return "help"
	default:
		return "unknown"
	}
}

type historyLoadedMsg struct {
	entries []models.JournalEntry
}

type taskHistoryLoadedMsg struct {
	taskID  string
	entries []models.JournalEntry
}

type cmdResultMsg struct {
	message string
	isErr   bool
	quit    bool
}

type errMsg struct {
	err error
}

func (e errMsg) Error() string { return e.err.Error() }
