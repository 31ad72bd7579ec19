package llm

import (
	"context"
	"log"
)

// VectorCache stores embeddings per model and text
type VectorCache interface {
	Get(ctx context.Context, model, text string) ([]float64, error)
	Set(ctx context.Context, model, text string, vec []float64) error
}

// CachedEmbedder serves embeddings from a cache and falls through to the provider.
// Cache failures are logged and never fail the call.
type CachedEmbedder struct {
	next  Embedder
	cache VectorCache
	model string
}

func NewCachedEmbedder(next Embedder, cache VectorCache, model string) *CachedEmbedder {
	return &CachedEmbedder{next: next, cache: cache, model: model}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vec, err := c.cache.Get(ctx, c.model, text)
	if err != nil {
		log.Printf("embedding cache get: %v", err)
	}
	if len(vec) > 0 {
		return vec, nil
	}

	vec, err = c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, c.model, text, vec); err != nil {
		log.Printf("embedding cache set: %v", err)
	}
	return vec, nil
}
