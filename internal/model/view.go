package model

// LevelSummary is the public listing of a level. The reference system prompt is never included.
type LevelSummary struct {
	Number         int     `json:"number"`
	Category       string  `json:"category,omitempty"`
	Name           string  `json:"name,omitempty"`
	Difficulty     int     `json:"difficulty"`
	UserMessage    string  `json:"userMessage"`
	TargetResponse string  `json:"targetResponse"`
	HintCount      int     `json:"hintCount"`
	PassThreshold  float64 `json:"passThreshold"`
}

func (l Level) Summary() LevelSummary {
	return LevelSummary{
		Number:         l.Number,
		Category:       l.Category,
		Name:           l.Name,
		Difficulty:     l.Difficulty,
		UserMessage:    l.UserMessage(),
		TargetResponse: l.TargetResponse(),
		HintCount:      len(l.Hints),
		PassThreshold:  l.PassThreshold,
	}
}

// LevelView is what the player sees of the current level
type LevelView struct {
	LevelSummary
	Status            LevelStatus       `json:"status"`
	AttemptsUsed      int               `json:"attemptsUsed"`
	MaxAttempts       int               `json:"maxAttempts"`
	RemainingAttempts int               `json:"remainingAttempts"`
	Revealed          bool              `json:"revealed"`
	ReferencePrompt   string            `json:"referencePrompt,omitempty"`
	HintsVisible      bool              `json:"hintsVisible"`
	HintCursor        int               `json:"hintCursor"`
	Hint              string            `json:"hint,omitempty"`
	LastResult        *EvaluationResult `json:"lastResult,omitempty"`
	Attempts          []AttemptRecord   `json:"attempts,omitempty"`
}

// SessionView is the client representation of a play session
type SessionView struct {
	ID          string         `json:"id"`
	LevelIndex  int            `json:"levelIndex"`
	TotalLevels int            `json:"totalLevels"`
	Level       *LevelView     `json:"level,omitempty"`
	Completed   []LevelOutcome `json:"completed"`
	Finished    bool           `json:"finished"`
}

// View hides the reference prompt until it is revealed and hints until they are opened.
func (s *LevelSession) View() *LevelView {
	v := &LevelView{
		LevelSummary:      s.Level.Summary(),
		Status:            s.Status,
		AttemptsUsed:      s.AttemptsUsed,
		MaxAttempts:       s.MaxAttempts,
		RemainingAttempts: s.RemainingAttempts(),
		Revealed:          s.Revealed,
		HintsVisible:      s.HintsVisible,
		HintCursor:        s.HintCursor,
		LastResult:        s.LastResult,
		Attempts:          s.Attempts,
	}
	if s.Revealed {
		v.ReferencePrompt = s.Level.SystemPrompt()
	}
	if s.HintsVisible {
		v.Hint = s.CurrentHint()
	}
	return v
}

func (s *PlaySession) View(totalLevels int) SessionView {
	v := SessionView{
		ID:          s.ID,
		LevelIndex:  s.LevelIndex,
		TotalLevels: totalLevels,
		Completed:   s.Completed,
		Finished:    s.Finished,
	}
	if s.Current != nil {
		v.Level = s.Current.View()
	}
	return v
}
