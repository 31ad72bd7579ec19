package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"promptquest/internal/model"
)

func TestWriterAttemptLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterAttemptLogger(&buf)

	entry := &model.AttemptLog{
		LevelNumber:   3,
		CandidateText: "You are a pirate",
		ReferenceText: pirate,
		Score:         0.72,
		Passed:        false,
		Timestamp:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := l.LogAttempt(context.Background(), entry); err != nil {
		t.Fatal(err)
	}

	line := buf.String()
	if !strings.HasPrefix(line, "ATTEMPT: ") || !strings.HasSuffix(line, "\n") {
		t.Fatalf("unexpected line %q", line)
	}
	var decoded model.AttemptLog
	if err := json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "ATTEMPT: ")), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.LevelNumber != 3 || decoded.ReferenceText != pirate || decoded.Score != 0.72 {
		t.Errorf("unexpected record %+v", decoded)
	}
}

func TestMultiAttemptLogger(t *testing.T) {
	ok := &memAttempts{}
	broken := &memAttempts{err: errors.New("disk full")}
	m := MultiAttemptLogger{broken, ok}

	err := m.LogAttempt(context.Background(), &model.AttemptLog{LevelNumber: 1})
	if err == nil {
		t.Error("expected joined error")
	}
	if len(ok.entries) != 1 {
		t.Error("a failing sink must not stop the others")
	}
}

func TestTokenService(t *testing.T) {
	s := NewTokenService("secret", time.Hour)
	token, err := s.Generate("session-1")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := s.Validate(token)
	if err != nil || claims.SessionID != "session-1" {
		t.Errorf("unexpected claims %+v %v", claims, err)
	}

	if _, err := NewTokenService("other", time.Hour).Validate(token); !errors.Is(err, ErrInvalidSessionToken) {
		t.Errorf("expected ErrInvalidSessionToken for a foreign secret, got %v", err)
	}

	expired, _ := NewTokenService("secret", -time.Minute).Generate("session-1")
	if _, err := s.Validate(expired); !errors.Is(err, ErrInvalidSessionToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}
