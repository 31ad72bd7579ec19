package similarity

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"promptquest/internal/model"
)

// Embedder turns text into a dense vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Score is the outcome of comparing two texts
type Score struct {
	Value       float64
	Unavailable bool
	Method      model.ScoreMethod
}

// Scorer compares a reference text with a candidate. Implementations never fail;
// a broken backend is reported through Score.Unavailable.
type Scorer interface {
	Score(ctx context.Context, reference, candidate string) Score
}

// EmbeddingScorer scores by cosine similarity of embeddings
type EmbeddingScorer struct {
	embedder Embedder
}

func NewEmbeddingScorer(embedder Embedder) *EmbeddingScorer {
	return &EmbeddingScorer{embedder: embedder}
}

// Score embeds both texts concurrently and returns their clamped cosine similarity.
// Any embedding failure degrades to 0.
func (s *EmbeddingScorer) Score(ctx context.Context, reference, candidate string) Score {
	var v1, v2 []float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		v1, err = s.embedder.Embed(gctx, reference)
		return err
	})
	g.Go(func() error {
		var err error
		v2, err = s.embedder.Embed(gctx, candidate)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("embedding scorer: %v (score degraded to 0)", err)
		return Score{Unavailable: true, Method: model.ScoreMethodEmbedding}
	}

	cos, err := Cosine(v1, v2)
	if err != nil {
		log.Printf("embedding scorer: %v (score degraded to 0)", err)
		return Score{Unavailable: true, Method: model.ScoreMethodEmbedding}
	}
	return Score{Value: Clamp01(cos), Method: model.ScoreMethodEmbedding}
}

// LexicalScorer scores by word overlap and performs no I/O
type LexicalScorer struct{}

func (LexicalScorer) Score(_ context.Context, reference, candidate string) Score {
	return Score{Value: Lexical(reference, candidate), Method: model.ScoreMethodLexical}
}
