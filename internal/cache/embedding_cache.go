package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EmbeddingCache keeps embedding vectors keyed by model and text hash
type EmbeddingCache interface {
	Get(ctx context.Context, model, text string) ([]float64, error)
	Set(ctx context.Context, model, text string, vec []float64) error
}

type embeddingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEmbeddingCache(client *redis.Client, ttl time.Duration) EmbeddingCache {
	return &embeddingCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *embeddingCache) key(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("emb:%s:%s", model, hex.EncodeToString(sum[:]))
}

// Get returns nil, nil on a miss
func (c *embeddingCache) Get(ctx context.Context, model, text string) ([]float64, error) {
	data, err := c.client.Get(ctx, c.key(model, text)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, err
	}
	return vec, nil
}

func (c *embeddingCache) Set(ctx context.Context, model, text string, vec []float64) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(model, text), data, c.ttl).Err()
}
