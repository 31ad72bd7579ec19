package service

import (
	"context"
	"strings"

	"promptquest/internal/llm"
)

// CompletionTester runs a candidate prompt as the system instruction against a fixed user message
type CompletionTester struct {
	completer llm.Completer
	model     string
}

func NewCompletionTester(completer llm.Completer, model string) *CompletionTester {
	return &CompletionTester{completer: completer, model: model}
}

// Run returns the assistant reply. Provider errors are returned as is.
func (t *CompletionTester) Run(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if strings.TrimSpace(userMessage) == "" {
		return "", ErrMissingUserMessage
	}
	return t.completer.Complete(ctx, llm.ChatRequest{
		Model:  t.model,
		System: systemPrompt,
		User:   userMessage,
	})
}
