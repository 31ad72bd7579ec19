package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"promptquest/internal/model"
)

func TestLevelPackWriteAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	policy := model.DefaultThresholdPolicy()
	pack := &LevelPack{
		Policy: &policy,
		Levels: []model.Level{{
			Number:        1,
			Category:      "roleplay",
			Name:          "Pirate",
			Difficulty:    2,
			Conversation:  model.NewConversation("You are a pirate who speaks in rhyme", "Tell me about the sea", "Arr"),
			Hints:         []string{"Think ships", "Rhyme"},
			PassThreshold: 0.6,
		}},
	}
	if err := WriteLevelPack(path, pack); err != nil {
		t.Fatal(err)
	}

	levels, err := NewFileLevelSource(path).List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(levels) != 1 {
		t.Fatalf("expected one level, got %d", len(levels))
	}
	l := levels[0]
	if l.SystemPrompt() != "You are a pirate who speaks in rhyme" || l.PassThreshold != 0.6 || len(l.Hints) != 2 {
		t.Errorf("unexpected level %+v", l)
	}
	if err := l.Validate(); err != nil {
		t.Errorf("round-tripped level should validate: %v", err)
	}
}

func TestReadLevelPackYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	doc := `levels:
  - number: 1
    difficulty: 0
    referenceConversation:
      - role: system
        content: Answer only in haiku
      - role: user
        content: What is rain?
      - role: assistant
        content: Drops fall from grey clouds
    hints: ["Count syllables"]
    passThreshold: 0.8
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	pack, err := ReadLevelPack(path)
	if err != nil {
		t.Fatal(err)
	}
	if pack.Policy != nil {
		t.Error("policy should be optional")
	}
	if got := pack.Levels[0].UserMessage(); got != "What is rain?" {
		t.Errorf("unexpected user message %q", got)
	}
}

func TestReadLevelPackMissing(t *testing.T) {
	if _, err := ReadLevelPack(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}
