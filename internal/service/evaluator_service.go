package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"promptquest/internal/config"
	"promptquest/internal/llm"
	"promptquest/internal/model"
	"promptquest/internal/similarity"
)

// Evaluator scores one candidate prompt against a level
type Evaluator interface {
	Evaluate(ctx context.Context, level model.Level, candidate string) (*model.EvaluationResult, error)
}

// EvaluatorService combines similarity scoring, hint generation and the completion test
type EvaluatorService struct {
	scorer     similarity.Scorer
	hints      *HintGenerator
	completion *CompletionTester
}

func NewEvaluatorService(scorer similarity.Scorer, hints *HintGenerator, completion *CompletionTester) *EvaluatorService {
	return &EvaluatorService{
		scorer:     scorer,
		hints:      hints,
		completion: completion,
	}
}

// NewEvaluatorFromConfig wires the evaluator for a provider. Without credentials scoring
// falls back to word overlap; completions still fail with ErrCompletionUnavailable.
func NewEvaluatorFromConfig(cfg *config.AIConfig, provider llm.Completer, embedder llm.Embedder) *EvaluatorService {
	var scorer similarity.Scorer = similarity.LexicalScorer{}
	if cfg.IsEnabled() {
		scorer = similarity.NewEmbeddingScorer(embedder)
	}
	return NewEvaluatorService(
		scorer,
		NewHintGenerator(provider, cfg.Models.Hint, cfg.HintTemperature),
		NewCompletionTester(provider, cfg.Models.Completion),
	)
}

// Evaluate validates the input, then scores, hints and completes concurrently.
// Only a completion failure fails the evaluation.
func (s *EvaluatorService) Evaluate(ctx context.Context, level model.Level, candidate string) (*model.EvaluationResult, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return nil, model.ErrInvalidInput
	}
	if strings.TrimSpace(level.UserMessage()) == "" {
		return nil, fmt.Errorf("level %d: %w", level.Number, ErrMissingUserMessage)
	}

	reference := level.SystemPrompt()

	var (
		score    similarity.Score
		hint     string
		hintOK   bool
		response string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		score = s.scorer.Score(gctx, reference, candidate)
		return nil
	})
	g.Go(func() error {
		hint, hintOK = s.hints.Generate(gctx, reference, candidate)
		return nil
	})
	g.Go(func() error {
		var err error
		response, err = s.completion.Run(gctx, candidate, level.UserMessage())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCompletionUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.EvaluationResult{
		SimilarityScore:  score.Value,
		AIResponse:       response,
		Hint:             hint,
		Passed:           score.Value >= level.PassThreshold,
		ScoreUnavailable: score.Unavailable,
		HintUnavailable:  !hintOK,
		ScoreMethod:      score.Method,
	}, nil
}
