package model

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// conversationOrder is the only accepted shape of a reference conversation
var conversationOrder = []Role{RoleSystem, RoleUser, RoleAssistant}

// Message is one turn of a reference conversation
type Message struct {
	Role    Role   `json:"role" bson:"role" yaml:"role"`
	Content string `json:"content" bson:"content" yaml:"content"`
}

// Level is one challenge of the game. Levels are immutable once loaded.
type Level struct {
	Number        int       `json:"number" bson:"number" yaml:"number"`
	Category      string    `json:"category,omitempty" bson:"category,omitempty" yaml:"category,omitempty"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty" yaml:"name,omitempty"`
	Difficulty    int       `json:"difficulty" bson:"difficulty" yaml:"difficulty"`
	Conversation  []Message `json:"referenceConversation" bson:"referenceConversation" yaml:"referenceConversation"`
	Hints         []string  `json:"hints" bson:"hints" yaml:"hints"`
	PassThreshold float64   `json:"passThreshold" bson:"passThreshold" yaml:"passThreshold"`
}

// SystemPrompt returns the hidden reference instruction
func (l Level) SystemPrompt() string {
	return l.content(RoleSystem)
}

// UserMessage returns the fixed user query the candidate prompt is tested against
func (l Level) UserMessage() string {
	return l.content(RoleUser)
}

// TargetResponse returns the reference assistant reply
func (l Level) TargetResponse() string {
	return l.content(RoleAssistant)
}

func (l Level) content(role Role) string {
	for _, m := range l.Conversation {
		if m.Role == role {
			return m.Content
		}
	}
	return ""
}

// Validate checks the level authoring invariants
func (l Level) Validate() error {
	if l.Number < 1 {
		return fmt.Errorf("%w: number must be >= 1, got %d", ErrInvalidLevel, l.Number)
	}
	if len(l.Conversation) != len(conversationOrder) {
		return fmt.Errorf("%w: level %d needs exactly %d messages, got %d", ErrInvalidLevel, l.Number, len(conversationOrder), len(l.Conversation))
	}
	for i, role := range conversationOrder {
		if l.Conversation[i].Role != role {
			return fmt.Errorf("%w: level %d message %d must be %s, got %s", ErrInvalidLevel, l.Number, i, role, l.Conversation[i].Role)
		}
	}
	if strings.TrimSpace(l.SystemPrompt()) == "" {
		return fmt.Errorf("%w: level %d has an empty system message", ErrInvalidLevel, l.Number)
	}
	if strings.TrimSpace(l.UserMessage()) == "" {
		return fmt.Errorf("%w: level %d has an empty user message", ErrInvalidLevel, l.Number)
	}
	if len(l.Hints) == 0 {
		return fmt.Errorf("%w: level %d has no hints", ErrInvalidLevel, l.Number)
	}
	for i, h := range l.Hints {
		if strings.TrimSpace(h) == "" {
			return fmt.Errorf("%w: level %d hint %d is empty", ErrInvalidLevel, l.Number, i)
		}
	}
	if l.PassThreshold <= 0 || l.PassThreshold > 1 {
		return fmt.Errorf("%w: level %d pass threshold %.2f outside (0,1]", ErrInvalidLevel, l.Number, l.PassThreshold)
	}
	return nil
}

// NewConversation builds a reference conversation in the required order
func NewConversation(system, user, assistant string) []Message {
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
		{Role: RoleAssistant, Content: assistant},
	}
}

// ValidateSequence checks every level and that numbers run 1..n in order
func ValidateSequence(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: no levels", ErrInvalidLevel)
	}
	for i, l := range levels {
		if err := l.Validate(); err != nil {
			return err
		}
		if l.Number != i+1 {
			return fmt.Errorf("%w: level at position %d has number %d", ErrInvalidLevel, i+1, l.Number)
		}
	}
	return nil
}
