package model

import "time"

// LevelOutcome summarizes a level the player has moved past
type LevelOutcome struct {
	LevelNumber  int         `json:"levelNumber"`
	Status       LevelStatus `json:"status"`
	AttemptsUsed int         `json:"attemptsUsed"`
	BestScore    float64     `json:"bestScore"`
}

// PlaySession is a player's run through the level sequence. It only lives in Redis.
type PlaySession struct {
	ID          string         `json:"id"`
	LevelIndex  int            `json:"levelIndex"`
	Current     *LevelSession  `json:"level,omitempty"`
	Completed   []LevelOutcome `json:"completed"`
	Finished    bool           `json:"finished"`
	MaxAttempts int            `json:"maxAttempts"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewPlaySession starts a run on the first level
func NewPlaySession(id string, first Level, maxAttempts int, now time.Time) *PlaySession {
	return &PlaySession{
		ID:          id,
		Current:     NewLevelSession(first, maxAttempts),
		Completed:   []LevelOutcome{},
		MaxAttempts: maxAttempts,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Advance closes the current level and moves to next, or finishes the run when next is nil.
func (s *PlaySession) Advance(next *Level, now time.Time) (Transition, error) {
	if s.Finished || s.Current == nil {
		return Transition{}, ErrNotAdvanceable
	}
	if s.Current.IsActive() {
		return Transition{}, ErrNotAdvanceable
	}

	cur := s.Current
	s.Completed = append(s.Completed, LevelOutcome{
		LevelNumber:  cur.Level.Number,
		Status:       cur.Status,
		AttemptsUsed: cur.AttemptsUsed,
		BestScore:    cur.BestScore(),
	})
	s.UpdatedAt = now

	if next == nil {
		s.Finished = true
		s.Current = nil
		return Transition{LevelNumber: cur.Level.Number, From: cur.Status, To: GameFinished, Trigger: TriggerAdvance}, nil
	}

	s.LevelIndex++
	s.Current = NewLevelSession(*next, s.MaxAttempts)
	return Transition{LevelNumber: next.Number, From: cur.Status, To: LevelActive, Trigger: TriggerAdvance}, nil
}

// Restart discards all progress and starts again at the first level
func (s *PlaySession) Restart(first Level, now time.Time) Transition {
	from := GameFinished
	if s.Current != nil {
		from = s.Current.Status
	}
	s.LevelIndex = 0
	s.Current = NewLevelSession(first, s.MaxAttempts)
	s.Completed = []LevelOutcome{}
	s.Finished = false
	s.UpdatedAt = now
	return Transition{LevelNumber: first.Number, From: from, To: LevelActive, Trigger: TriggerRestart}
}

// Skip abandons the active level and moves straight on to next, or finishes the run
// when next is nil. The skipped level is not revealed.
func (s *PlaySession) Skip(next *Level, now time.Time) (Transition, error) {
	if s.Finished || s.Current == nil {
		return Transition{}, ErrNotAdvanceable
	}
	if _, err := s.Current.Skip(); err != nil {
		return Transition{}, err
	}
	tr, err := s.Advance(next, now)
	if err != nil {
		return Transition{}, err
	}
	tr.Trigger = TriggerSkip
	return tr, nil
}
