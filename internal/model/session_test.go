package model

import (
	"errors"
	"testing"
	"time"
)

func testLevel(number int) Level {
	return Level{
		Number:        number,
		Conversation:  NewConversation("You are a pirate who speaks in rhyme", "Tell me about the sea", "Arr, the sea be wide and free"),
		Hints:         []string{"Think nautical", "Rhymes matter", "Who sails ships?"},
		PassThreshold: 0.8,
	}
}

func failing(score float64) EvaluationResult {
	return EvaluationResult{SimilarityScore: score, AIResponse: "ok", Hint: "try again"}
}

func TestLevelSessionLocksAfterMaxAttempts(t *testing.T) {
	s := NewLevelSession(testLevel(1), 3)
	candidates := []string{"a", "b", "c"}
	for i, c := range candidates {
		tr, err := s.Record(c, failing(0.1), time.Now())
		if err != nil {
			t.Fatalf("attempt %d: unexpected error %v", i+1, err)
		}
		if tr.Trigger != TriggerSubmit {
			t.Errorf("expected submit trigger, got %s", tr.Trigger)
		}
	}

	if s.Status != LevelLocked {
		t.Errorf("expected locked, got %s", s.Status)
	}
	if !s.Revealed {
		t.Error("expected revealed after exhausting attempts")
	}
	if s.AttemptsUsed != 3 {
		t.Errorf("expected 3 attempts, got %d", s.AttemptsUsed)
	}
	if _, err := s.Record("d", failing(0.1), time.Now()); !errors.Is(err, ErrLevelClosed) {
		t.Errorf("expected ErrLevelClosed, got %v", err)
	}
	if s.AttemptsUsed != 3 {
		t.Errorf("closed level must not count attempts, got %d", s.AttemptsUsed)
	}
}

func TestLevelSessionPassReveals(t *testing.T) {
	s := NewLevelSession(testLevel(1), 5)
	if _, err := s.Record("first", failing(0.2), time.Now()); err != nil {
		t.Fatal(err)
	}
	tr, err := s.Record("second", EvaluationResult{SimilarityScore: 0.9, Passed: true}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if tr.From != LevelActive || tr.To != LevelPassed {
		t.Errorf("unexpected transition %+v", tr)
	}
	if !s.Revealed || s.Status != LevelPassed {
		t.Errorf("expected passed and revealed, got %s revealed=%v", s.Status, s.Revealed)
	}
	if s.BestScore() != 0.9 {
		t.Errorf("expected best score 0.9, got %v", s.BestScore())
	}
}

func TestLevelSessionDuplicateDoesNotConsume(t *testing.T) {
	s := NewLevelSession(testLevel(1), 5)
	if _, err := s.Record("same prompt", failing(0.1), time.Now()); err != nil {
		t.Fatal(err)
	}
	_, err := s.Record("  same prompt ", failing(0.1), time.Now())
	if !errors.Is(err, ErrDuplicateSubmission) {
		t.Errorf("expected ErrDuplicateSubmission, got %v", err)
	}
	if s.AttemptsUsed != 1 {
		t.Errorf("duplicate must not consume an attempt, got %d", s.AttemptsUsed)
	}
}

func TestLevelSessionRejectsBlank(t *testing.T) {
	s := NewLevelSession(testLevel(1), 5)
	for _, c := range []string{"", "   ", "\n\t"} {
		if _, err := s.CheckSubmission(c); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%q: expected ErrInvalidInput, got %v", c, err)
		}
	}
	if s.AttemptsUsed != 0 {
		t.Errorf("expected no attempts, got %d", s.AttemptsUsed)
	}
}

func TestLevelSessionSkip(t *testing.T) {
	s := NewLevelSession(testLevel(1), 5)
	tr, err := s.Skip()
	if err != nil {
		t.Fatal(err)
	}
	if tr.To != LevelSkipped {
		t.Errorf("expected skipped, got %s", tr.To)
	}
	if s.Revealed {
		t.Error("skip must not reveal the reference")
	}
	if _, err := s.Skip(); !errors.Is(err, ErrLevelClosed) {
		t.Errorf("expected ErrLevelClosed on second skip, got %v", err)
	}
}

func TestHintCursorBounds(t *testing.T) {
	s := NewLevelSession(testLevel(1), 5)
	s.RetreatHint()
	if s.HintCursor != 0 {
		t.Errorf("retreat at 0 should be a no-op, got %d", s.HintCursor)
	}
	for i := 0; i < 10; i++ {
		s.AdvanceHint()
	}
	if s.HintCursor != 2 {
		t.Errorf("cursor should stop at last hint, got %d", s.HintCursor)
	}
	s.AdvanceHint()
	if s.HintCursor != 2 {
		t.Errorf("advance at last index should be a no-op, got %d", s.HintCursor)
	}

	s.ToggleHints()
	if !s.HintsVisible || s.HintCursor != 0 {
		t.Errorf("opening hints should reset cursor, got visible=%v cursor=%d", s.HintsVisible, s.HintCursor)
	}
	s.AdvanceHint()
	s.ToggleHints()
	if s.HintsVisible {
		t.Error("expected hints hidden")
	}
	s.ToggleHints()
	if s.HintCursor != 0 {
		t.Errorf("reopening should reset cursor, got %d", s.HintCursor)
	}
}

func TestNewLevelSessionClampsBudget(t *testing.T) {
	s := NewLevelSession(testLevel(1), 0)
	if s.MaxAttempts != 1 {
		t.Errorf("expected budget clamped to 1, got %d", s.MaxAttempts)
	}
}

func TestPlaySessionAdvance(t *testing.T) {
	now := time.Now()
	ps := NewPlaySession("s1", testLevel(1), 2, now)

	if _, err := ps.Advance(nil, now); !errors.Is(err, ErrNotAdvanceable) {
		t.Fatalf("advancing an active level should fail, got %v", err)
	}

	if _, err := ps.Current.Skip(); err != nil {
		t.Fatal(err)
	}
	next := testLevel(2)
	tr, err := ps.Advance(&next, now)
	if err != nil {
		t.Fatal(err)
	}
	if tr.To != LevelActive || tr.LevelNumber != 2 {
		t.Errorf("unexpected transition %+v", tr)
	}
	if ps.LevelIndex != 1 || ps.Current.Level.Number != 2 {
		t.Errorf("expected level 2 at index 1, got index %d", ps.LevelIndex)
	}
	if len(ps.Completed) != 1 || ps.Completed[0].Status != LevelSkipped {
		t.Errorf("unexpected outcomes %+v", ps.Completed)
	}

	ps.Current.Record("x", failing(0), now)
	ps.Current.Record("y", failing(0), now)
	tr, err = ps.Advance(nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if !ps.Finished || ps.Current != nil || tr.To != GameFinished {
		t.Errorf("expected finished run, got %+v", tr)
	}

	ps.Restart(testLevel(1), now)
	if ps.Finished || ps.LevelIndex != 0 || len(ps.Completed) != 0 {
		t.Errorf("restart should reset progress, got %+v", ps)
	}
}

func TestLevelViewHidesReference(t *testing.T) {
	s := NewLevelSession(testLevel(1), 1)
	if v := s.View(); v.ReferencePrompt != "" || v.Hint != "" {
		t.Errorf("reference and hint must be hidden, got %+v", v)
	}
	s.ToggleHints()
	if v := s.View(); v.Hint != "Think nautical" {
		t.Errorf("expected first hint, got %q", v.Hint)
	}
	s.Record("nope", failing(0), time.Now())
	if v := s.View(); v.ReferencePrompt != "You are a pirate who speaks in rhyme" {
		t.Errorf("expected revealed reference, got %q", v.ReferencePrompt)
	}
}

func TestPlaySessionSkipMovesOn(t *testing.T) {
	now := time.Now()
	ps := NewPlaySession("s1", testLevel(1), 3, now)
	next := testLevel(2)

	tr, err := ps.Skip(&next, now)
	if err != nil {
		t.Fatal(err)
	}
	if tr.From != LevelSkipped || tr.To != LevelActive || tr.Trigger != TriggerSkip || tr.LevelNumber != 2 {
		t.Errorf("unexpected transition %+v", tr)
	}
	if ps.Current.Level.Number != 2 || ps.LevelIndex != 1 {
		t.Errorf("expected to land on level 2, got %+v", ps.Current.Level)
	}
	if len(ps.Completed) != 1 || ps.Completed[0].Status != LevelSkipped {
		t.Errorf("unexpected outcomes %+v", ps.Completed)
	}

	tr, err = ps.Skip(nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if !ps.Finished || tr.To != GameFinished {
		t.Errorf("skipping the last level should finish the run, got %+v", tr)
	}
	if _, err := ps.Skip(nil, now); !errors.Is(err, ErrNotAdvanceable) {
		t.Errorf("expected ErrNotAdvanceable after finish, got %v", err)
	}
}

func TestPlaySessionSkipClosedLevel(t *testing.T) {
	now := time.Now()
	ps := NewPlaySession("s1", testLevel(1), 1, now)
	ps.Current.Record("x", failing(0), now)

	if _, err := ps.Skip(nil, now); !errors.Is(err, ErrLevelClosed) {
		t.Errorf("locked level cannot be skipped, got %v", err)
	}
	if ps.Finished || len(ps.Completed) != 0 {
		t.Error("failed skip must not move the run")
	}
}

func TestNewAttemptLog(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sub := SubmissionAttempt{LevelNumber: 3, CandidateText: "You are a sailor", Timestamp: at}
	result := EvaluationResult{SimilarityScore: 0.42, ScoreUnavailable: true, Hint: "ignored"}

	got := NewAttemptLog("s1", sub, "You are a pirate", result)
	want := AttemptLog{
		SessionID:        "s1",
		LevelNumber:      3,
		CandidateText:    "You are a sailor",
		ReferenceText:    "You are a pirate",
		Score:            0.42,
		ScoreUnavailable: true,
		Timestamp:        at,
	}
	if *got != want {
		t.Errorf("NewAttemptLog() = %+v, want %+v", *got, want)
	}
}
