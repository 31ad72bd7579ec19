package model

import (
	"strings"
	"time"
)

type LevelStatus string

const (
	LevelActive  LevelStatus = "active"
	LevelPassed  LevelStatus = "passed"
	LevelLocked  LevelStatus = "locked"
	LevelSkipped LevelStatus = "skipped"
	// GameFinished is only used as the target of the final advance
	GameFinished LevelStatus = "finished"
)

type Trigger string

const (
	TriggerSubmit  Trigger = "submit"
	TriggerSkip    Trigger = "skip"
	TriggerAdvance Trigger = "advance"
	TriggerRestart Trigger = "restart"
)

// DefaultMaxAttempts is the attempt budget when none is configured
const DefaultMaxAttempts = 5

// Transition records a state change of a level session
type Transition struct {
	LevelNumber int         `json:"levelNumber"`
	From        LevelStatus `json:"from"`
	To          LevelStatus `json:"to"`
	Trigger     Trigger     `json:"trigger"`
}

// AttemptRecord is a scored attempt shown back to the player
type AttemptRecord struct {
	Candidate string    `json:"candidate"`
	Score     float64   `json:"score"`
	Passed    bool      `json:"passed"`
	At        time.Time `json:"at"`
}

// LevelSession is the state of the level the player is currently on.
// Transition methods never perform I/O; callers serialize access per session.
type LevelSession struct {
	Level         Level             `json:"level"`
	Status        LevelStatus       `json:"status"`
	AttemptsUsed  int               `json:"attemptsUsed"`
	MaxAttempts   int               `json:"maxAttempts"`
	LastResult    *EvaluationResult `json:"lastResult,omitempty"`
	Revealed      bool              `json:"revealed"`
	HintsVisible  bool              `json:"hintsVisible"`
	HintCursor    int               `json:"hintCursor"`
	LastCandidate string            `json:"lastCandidate,omitempty"`
	Attempts      []AttemptRecord   `json:"attempts,omitempty"`
}

// NewLevelSession starts a fresh active session for a level
func NewLevelSession(level Level, maxAttempts int) *LevelSession {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &LevelSession{
		Level:       level,
		Status:      LevelActive,
		MaxAttempts: maxAttempts,
	}
}

// IsActive reports whether the level still accepts submissions
func (s *LevelSession) IsActive() bool {
	return s.Status == LevelActive
}

// RemainingAttempts returns how many submissions are left
func (s *LevelSession) RemainingAttempts() int {
	if !s.IsActive() {
		return 0
	}
	if r := s.MaxAttempts - s.AttemptsUsed; r > 0 {
		return r
	}
	return 0
}

// CheckSubmission validates a candidate without touching state and returns it trimmed.
func (s *LevelSession) CheckSubmission(candidate string) (string, error) {
	if !s.IsActive() {
		return "", ErrLevelClosed
	}
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return "", ErrInvalidInput
	}
	if s.LastCandidate != "" && trimmed == s.LastCandidate {
		return "", ErrDuplicateSubmission
	}
	return trimmed, nil
}

// Record consumes one attempt with the given evaluation
func (s *LevelSession) Record(candidate string, result EvaluationResult, at time.Time) (Transition, error) {
	trimmed, err := s.CheckSubmission(candidate)
	if err != nil {
		return Transition{}, err
	}

	from := s.Status
	s.AttemptsUsed++
	s.LastCandidate = trimmed
	r := result
	s.LastResult = &r
	s.Attempts = append(s.Attempts, AttemptRecord{
		Candidate: trimmed,
		Score:     result.SimilarityScore,
		Passed:    result.Passed,
		At:        at,
	})

	switch {
	case result.Passed:
		s.Status = LevelPassed
		s.Revealed = true
	case s.AttemptsUsed >= s.MaxAttempts:
		s.Status = LevelLocked
		s.Revealed = true
	}

	return Transition{LevelNumber: s.Level.Number, From: from, To: s.Status, Trigger: TriggerSubmit}, nil
}

// Skip abandons an active level without revealing the reference
func (s *LevelSession) Skip() (Transition, error) {
	if !s.IsActive() {
		return Transition{}, ErrLevelClosed
	}
	s.Status = LevelSkipped
	return Transition{LevelNumber: s.Level.Number, From: LevelActive, To: LevelSkipped, Trigger: TriggerSkip}, nil
}

// ToggleHints shows or hides hints; reopening starts again at the first hint
func (s *LevelSession) ToggleHints() {
	s.HintsVisible = !s.HintsVisible
	if s.HintsVisible {
		s.HintCursor = 0
	}
}

// AdvanceHint moves to the next hint; no-op at the last one
func (s *LevelSession) AdvanceHint() {
	if s.HintCursor < len(s.Level.Hints)-1 {
		s.HintCursor++
	}
}

// RetreatHint moves to the previous hint; no-op at the first one
func (s *LevelSession) RetreatHint() {
	if s.HintCursor > 0 {
		s.HintCursor--
	}
}

// CurrentHint returns the hint under the cursor
func (s *LevelSession) CurrentHint() string {
	if s.HintCursor < 0 || s.HintCursor >= len(s.Level.Hints) {
		return ""
	}
	return s.Level.Hints[s.HintCursor]
}

// BestScore returns the highest score across recorded attempts
func (s *LevelSession) BestScore() float64 {
	best := 0.0
	for _, a := range s.Attempts {
		if a.Score > best {
			best = a.Score
		}
	}
	return best
}
