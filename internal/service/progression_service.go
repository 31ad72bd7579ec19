package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"promptquest/internal/cache"
	"promptquest/internal/model"
)

// ProgressionService drives a player's play session through the level sequence
type ProgressionService struct {
	levels      *LevelService
	evaluator   Evaluator
	sessions    cache.SessionCache
	attempts    AttemptLogger
	tokens      *TokenService
	broadcaster Broadcaster
	maxAttempts int
	lockTTL     time.Duration
	evalTimeout time.Duration
	now         func() time.Time
}

func NewProgressionService(levels *LevelService, evaluator Evaluator, sessions cache.SessionCache, attempts AttemptLogger, tokens *TokenService, maxAttempts int, lockTTL time.Duration) *ProgressionService {
	if maxAttempts < 1 {
		maxAttempts = model.DefaultMaxAttempts
	}
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &ProgressionService{
		levels:      levels,
		evaluator:   evaluator,
		sessions:    sessions,
		attempts:    attempts,
		tokens:      tokens,
		broadcaster: noopBroadcaster{},
		maxAttempts: maxAttempts,
		lockTTL:     lockTTL,
		evalTimeout: lockTTL * 3 / 4,
		now:         time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ProgressionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start creates a play session on the first level and returns it with its token
func (s *ProgressionService) Start(ctx context.Context) (*model.SessionStartResponse, error) {
	first, err := s.levels.First()
	if err != nil {
		return nil, err
	}

	ps := model.NewPlaySession(uuid.NewString(), *first, s.maxAttempts, s.now())
	if err := s.sessions.Save(ctx, ps); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(ps.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("Session %s started", ps.ID)
	return &model.SessionStartResponse{
		Session: ps.View(s.levels.Count()),
		Token:   token,
	}, nil
}

// ValidateToken checks that token grants access to sessionID
func (s *ProgressionService) ValidateToken(token, sessionID string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if claims.SessionID != sessionID {
		return ErrInvalidSessionToken
	}
	return nil
}

func (s *ProgressionService) Get(ctx context.Context, id string) (*model.SessionView, error) {
	ps, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v := ps.View(s.levels.Count())
	return &v, nil
}

// Submit evaluates a candidate for the current level. Validation happens before any
// external call; a completion failure leaves the attempt count untouched.
func (s *ProgressionService) Submit(ctx context.Context, id, candidate string) (*model.SubmitResponse, error) {
	token, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.unlock(id, token)

	ps, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ps.Finished || ps.Current == nil {
		return nil, ErrGameFinished
	}

	cur := ps.Current
	trimmed, err := cur.CheckSubmission(candidate)
	if err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToSession(id, EventEvaluationPending, map[string]interface{}{
		"levelNumber": cur.Level.Number,
	})

	// the evaluation must finish well inside the lock, or a second submit could take it
	evalCtx, cancel := context.WithTimeout(ctx, s.evalTimeout)
	defer cancel()

	result, err := s.evaluator.Evaluate(evalCtx, cur.Level, trimmed)
	if err != nil {
		log.Printf("Session %s level %d: evaluation failed: %v", id, cur.Level.Number, err)
		s.broadcaster.BroadcastToSession(id, EventEvaluationFailed, map[string]interface{}{
			"levelNumber": cur.Level.Number,
			"message":     err.Error(),
		})
		return nil, err
	}

	now := s.now()
	tr, err := cur.Record(trimmed, *result, now)
	if err != nil {
		return nil, err
	}
	ps.UpdatedAt = now

	if err := s.sessions.Save(ctx, ps); err != nil {
		return nil, err
	}

	s.logAttempt(ctx, ps.ID, cur.Level, trimmed, result, now)

	view := ps.View(s.levels.Count())
	resp := &model.SubmitResponse{
		Result:     *result,
		Transition: tr,
		Session:    view,
	}
	s.broadcaster.BroadcastToSession(id, EventEvaluationResult, resp)
	return resp, nil
}

// Skip abandons the current level without revealing it and moves on to the next one
func (s *ProgressionService) Skip(ctx context.Context, id string) (*model.SessionView, error) {
	return s.mutate(ctx, id, EventLevelChanged, func(ps *model.PlaySession) error {
		if ps.Finished || ps.Current == nil {
			return ErrGameFinished
		}
		next, err := s.levels.Next(ps.Current.Level.Number)
		if err != nil {
			return err
		}
		_, err = ps.Skip(next, s.now())
		return err
	})
}

// Advance moves past a passed, locked or skipped level
func (s *ProgressionService) Advance(ctx context.Context, id string) (*model.SessionView, error) {
	return s.mutate(ctx, id, EventLevelChanged, func(ps *model.PlaySession) error {
		if ps.Finished || ps.Current == nil {
			return ErrGameFinished
		}
		next, err := s.levels.Next(ps.Current.Level.Number)
		if err != nil {
			return err
		}
		_, err = ps.Advance(next, s.now())
		return err
	})
}

// Restart discards all progress and starts again at level 1
func (s *ProgressionService) Restart(ctx context.Context, id string) (*model.SessionView, error) {
	return s.mutate(ctx, id, EventLevelChanged, func(ps *model.PlaySession) error {
		first, err := s.levels.First()
		if err != nil {
			return err
		}
		ps.Restart(*first, s.now())
		return nil
	})
}

// End drops the session and closes its sockets
func (s *ProgressionService) End(ctx context.Context, id string) error {
	token, err := s.lock(ctx, id)
	if err != nil {
		return err
	}
	defer s.unlock(id, token)

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}

	s.broadcaster.DisconnectSession(id)
	log.Printf("Session %s ended", id)
	return nil
}

func (s *ProgressionService) ToggleHints(ctx context.Context, id string) (*model.SessionView, error) {
	return s.mutateLevel(ctx, id, (*model.LevelSession).ToggleHints)
}

func (s *ProgressionService) NextHint(ctx context.Context, id string) (*model.SessionView, error) {
	return s.mutateLevel(ctx, id, (*model.LevelSession).AdvanceHint)
}

func (s *ProgressionService) PrevHint(ctx context.Context, id string) (*model.SessionView, error) {
	return s.mutateLevel(ctx, id, (*model.LevelSession).RetreatHint)
}

func (s *ProgressionService) mutateLevel(ctx context.Context, id string, fn func(*model.LevelSession)) (*model.SessionView, error) {
	return s.mutate(ctx, id, EventSessionUpdated, func(ps *model.PlaySession) error {
		if ps.Current == nil {
			return ErrGameFinished
		}
		fn(ps.Current)
		ps.UpdatedAt = s.now()
		return nil
	})
}

// mutate runs fn on the session under the session lock and saves the result
func (s *ProgressionService) mutate(ctx context.Context, id, event string, fn func(ps *model.PlaySession) error) (*model.SessionView, error) {
	token, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.unlock(id, token)

	ps, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ps); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, ps); err != nil {
		return nil, err
	}

	view := ps.View(s.levels.Count())
	s.broadcaster.BroadcastToSession(id, event, view)
	return &view, nil
}

func (s *ProgressionService) load(ctx context.Context, id string) (*model.PlaySession, error) {
	ps, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return nil, ErrSessionNotFound
	}
	return ps, nil
}

func (s *ProgressionService) lock(ctx context.Context, id string) (string, error) {
	token, ok, err := s.sessions.Lock(ctx, id, s.lockTTL)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSubmissionInFlight
	}
	return token, nil
}

// unlock runs detached from the request so a cancelled client still frees the session
func (s *ProgressionService) unlock(id, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sessions.Unlock(ctx, id, token); err != nil {
		log.Printf("Session %s: unlock failed: %v", id, err)
	}
}

// logAttempt is best-effort; audit failures never fail a submission
func (s *ProgressionService) logAttempt(ctx context.Context, sessionID string, level model.Level, candidate string, result *model.EvaluationResult, at time.Time) {
	if s.attempts == nil {
		return
	}
	sub := model.SubmissionAttempt{
		LevelNumber:   level.Number,
		CandidateText: candidate,
		Timestamp:     at,
	}
	entry := model.NewAttemptLog(sessionID, sub, level.SystemPrompt(), *result)
	if err := s.attempts.LogAttempt(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("Session %s: attempt log failed: %v", sessionID, err)
	}
}
