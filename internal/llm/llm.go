package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"promptquest/internal/config"
)

var (
	ErrNotConfigured = errors.New("AI provider is not configured")
	ErrEmptyResponse = errors.New("empty response from AI provider")
)

// ChatRequest is a single-turn chat: optional system instruction plus one user message
type ChatRequest struct {
	Model       string
	System      string
	User        string
	Temperature *float32
}

// Completer returns the assistant text for a chat request
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Embedder returns a dense vector for a text. Must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Provider is a completion and embedding backend
type Provider interface {
	Completer
	Embedder
	Name() string
}

// New builds the provider selected by cfg. Without credentials every call fails with ErrNotConfigured.
func New(ctx context.Context, cfg *config.AIConfig) (Provider, error) {
	if !cfg.IsEnabled() {
		return Unconfigured{}, nil
	}

	httpc := &http.Client{Timeout: cfg.Timeout()}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg, httpc), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg, httpc)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// Float32 returns a pointer to v
func Float32(v float32) *float32 {
	return &v
}

// withRetry runs fn up to 1+retries times, sleeping attempt*300ms between tries
func withRetry(ctx context.Context, op string, retries int, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= retries+1; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrEmptyResponse) || ctx.Err() != nil {
			return lastErr
		}
		if attempt <= retries {
			log.Printf("%s: attempt %d failed: %v", op, attempt, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 300 * time.Millisecond):
			}
		}
	}
	return lastErr
}

// CleanText trims model output and strips markdown code fences
func CleanText(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```")
	if i := strings.IndexByte(cleaned, '\n'); i >= 0 && !strings.Contains(cleaned[:i], " ") {
		cleaned = cleaned[i+1:]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}
