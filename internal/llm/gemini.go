package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"promptquest/internal/config"
)

// Gemini talks to the Gemini API through the genai SDK
type Gemini struct {
	client         *genai.Client
	embeddingModel string
	retries        int
}

func NewGemini(ctx context.Context, cfg *config.AIConfig, httpc *http.Client) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpc,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{
		client:         client,
		embeddingModel: cfg.Models.Embedding,
		retries:        cfg.MaxRetries,
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, req ChatRequest) (string, error) {
	gcfg := &genai.GenerateContentConfig{Temperature: req.Temperature}
	if req.System != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	var out string
	err := withRetry(ctx, "gemini complete", g.retries, func() error {
		resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.User), gcfg)
		if err != nil {
			return err
		}
		out = strings.TrimSpace(resp.Text())
		if out == "" {
			return ErrEmptyResponse
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("gemini complete: %w", err)
	}
	return out, nil
}

func (g *Gemini) Embed(ctx context.Context, text string) ([]float64, error) {
	var vec []float64
	err := withRetry(ctx, "gemini embed", g.retries, func() error {
		resp, err := g.client.Models.EmbedContent(ctx, g.embeddingModel, genai.Text(text), nil)
		if err != nil {
			return err
		}
		if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
			return ErrEmptyResponse
		}
		values := resp.Embeddings[0].Values
		vec = make([]float64, len(values))
		for i, v := range values {
			vec[i] = float64(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	return vec, nil
}
