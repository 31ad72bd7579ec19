package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"promptquest/internal/config"
)

// OpenAI calls the OpenAI REST API directly
type OpenAI struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	retries        int
	httpc          *http.Client
}

func NewOpenAI(cfg *config.AIConfig, httpc *http.Client) *OpenAI {
	return &OpenAI{
		APIKey:         cfg.APIKey,
		BaseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		EmbeddingModel: cfg.Models.Embedding,
		retries:        cfg.MaxRetries,
		httpc:          httpc,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, req ChatRequest) (string, error) {
	messages := []any{}
	if req.System != "" {
		messages = append(messages, map[string]any{"role": "system", "content": req.System})
	}
	messages = append(messages, map[string]any{"role": "user", "content": req.User})

	body := map[string]any{
		"model":    req.Model,
		"messages": messages,
	}
	if req.Temperature != nil {
		body["temperature"] = *req.Temperature
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	err := withRetry(ctx, "openai complete", o.retries, func() error {
		return o.post(ctx, "chat/completions", body, &raw)
	})
	if err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("openai complete: %w", ErrEmptyResponse)
	}
	out := strings.TrimSpace(raw.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai complete: %w", ErrEmptyResponse)
	}
	return out, nil
}

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float64, error) {
	body := map[string]any{
		"model": o.EmbeddingModel,
		"input": text,
	}

	var raw struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	err := withRetry(ctx, "openai embed", o.retries, func() error {
		return o.post(ctx, "embeddings", body, &raw)
	})
	if err != nil {
		return nil, err
	}
	if len(raw.Data) == 0 || len(raw.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai embed: %w", ErrEmptyResponse)
	}
	return raw.Data[0].Embedding, nil
}

func (o *OpenAI) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/"+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("openai %s %d: %s", path, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openai %s: bad JSON: %w", path, err)
	}
	return nil
}
