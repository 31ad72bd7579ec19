package service

import "errors"

var (
	ErrCompletionUnavailable = errors.New("completion service unavailable, try again")
	ErrMissingUserMessage    = errors.New("level has no user message")
	ErrLevelNotFound         = errors.New("level not found")
	ErrSessionNotFound       = errors.New("session not found or expired")
	ErrSubmissionInFlight    = errors.New("another request for this session is in progress")
	ErrGameFinished          = errors.New("all levels are finished")
	ErrInvalidSessionToken   = errors.New("invalid or expired session token")
)
