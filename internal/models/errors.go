package models

import "errors"

// Sentinel errors for input rejected before it reaches the board.
var (
	ErrTitleRequired   = errors.New("title is required")
	ErrDueDateRequired = errors.New("due date is required")
	ErrInvalidDueDate  = errors.New("invalid due date")
	ErrInvalidFilter   = errors.New("invalid filter")
)
