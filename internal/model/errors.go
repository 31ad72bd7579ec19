package model

import "errors"

var (
	ErrInvalidInput        = errors.New("candidate text is empty")
	ErrDuplicateSubmission = errors.New("candidate text is identical to the previous submission")
	ErrLevelClosed         = errors.New("level no longer accepts submissions")
	ErrNotAdvanceable      = errors.New("level is still active")
	ErrInvalidLevel        = errors.New("invalid level")
)
