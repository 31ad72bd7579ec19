package model

import (
	"errors"
	"testing"
)

func TestLevelValidate(t *testing.T) {
	good := testLevel(1)
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid level, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(l *Level)
	}{
		{"zero number", func(l *Level) { l.Number = 0 }},
		{"missing message", func(l *Level) { l.Conversation = l.Conversation[:2] }},
		{"wrong order", func(l *Level) { l.Conversation[0], l.Conversation[1] = l.Conversation[1], l.Conversation[0] }},
		{"empty user", func(l *Level) { l.Conversation[1].Content = "  " }},
		{"empty system", func(l *Level) { l.Conversation[0].Content = "" }},
		{"no hints", func(l *Level) { l.Hints = nil }},
		{"blank hint", func(l *Level) { l.Hints = []string{"ok", ""} }},
		{"zero threshold", func(l *Level) { l.PassThreshold = 0 }},
		{"threshold above one", func(l *Level) { l.PassThreshold = 1.2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLevel(1)
			tt.mutate(&l)
			if err := l.Validate(); !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}
}

func TestValidateSequence(t *testing.T) {
	if err := ValidateSequence([]Level{testLevel(1), testLevel(2)}); err != nil {
		t.Errorf("expected valid sequence, got %v", err)
	}
	if err := ValidateSequence([]Level{testLevel(1), testLevel(3)}); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected gap to be rejected, got %v", err)
	}
	if err := ValidateSequence(nil); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected empty sequence to be rejected, got %v", err)
	}
}

func TestThresholdPolicy(t *testing.T) {
	p := DefaultThresholdPolicy()
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		difficulty int
		want       float64
	}{
		{0, 0.8},
		{1, 0.7},
		{3, 0.5},
		{5, 0.3},
		{9, 0.3},
	}
	for _, tt := range tests {
		if got := p.Threshold(tt.difficulty); got != tt.want {
			t.Errorf("Threshold(%d) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}

	prev := p.Threshold(0)
	for d := 1; d < 20; d++ {
		cur := p.Threshold(d)
		if cur > prev {
			t.Errorf("threshold increased at difficulty %d: %v > %v", d, cur, prev)
		}
		prev = cur
	}

	if err := (ThresholdPolicy{Base: 0.8, Step: -0.1, Floor: 0.3}).Validate(); err == nil {
		t.Error("expected negative step to be rejected")
	}
}
