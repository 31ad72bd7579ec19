package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"promptquest/internal/model"
	"promptquest/internal/repository"
)

// AttemptLogger receives a write-only record of each scored submission
type AttemptLogger interface {
	LogAttempt(ctx context.Context, attempt *model.AttemptLog) error
}

// RepoAttemptLogger stores attempts in Mongo
type RepoAttemptLogger struct {
	repo repository.AttemptRepo
}

func NewRepoAttemptLogger(repo repository.AttemptRepo) *RepoAttemptLogger {
	return &RepoAttemptLogger{repo: repo}
}

func (l *RepoAttemptLogger) LogAttempt(ctx context.Context, attempt *model.AttemptLog) error {
	return l.repo.Create(ctx, attempt)
}

// WriterAttemptLogger writes one "ATTEMPT: {json}" line per attempt
type WriterAttemptLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterAttemptLogger(w io.Writer) *WriterAttemptLogger {
	return &WriterAttemptLogger{w: w}
}

func (l *WriterAttemptLogger) LogAttempt(_ context.Context, attempt *model.AttemptLog) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = fmt.Fprintf(l.w, "ATTEMPT: %s\n", data)
	return err
}

// MultiAttemptLogger fans a record out to every sink
type MultiAttemptLogger []AttemptLogger

func (m MultiAttemptLogger) LogAttempt(ctx context.Context, attempt *model.AttemptLog) error {
	var errs []error
	for _, l := range m {
		if err := l.LogAttempt(ctx, attempt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
