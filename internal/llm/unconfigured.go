package llm

import "context"

// Unconfigured stands in when no API key is set
type Unconfigured struct{}

func (Unconfigured) Name() string { return "none" }

func (Unconfigured) Complete(context.Context, ChatRequest) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) Embed(context.Context, string) ([]float64, error) {
	return nil, ErrNotConfigured
}
