package config

import (
	"os"
	"strings"
	"time"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// AIModels defines which model handles each task
type AIModels struct {
	// Completion runs the candidate prompt against the level's user message
	Completion string `json:"completion"`

	// Hint writes the short clue (fast, cheap)
	Hint string `json:"hint"`

	// Embedding produces vectors for similarity scoring
	Embedding string `json:"embedding"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	Provider        Provider `json:"provider"`
	APIKey          string   `json:"-"` // Never serialize
	BaseURL         string   `json:"baseUrl,omitempty"`
	Models          AIModels `json:"models"`
	TimeoutMS       int      `json:"timeoutMs"`
	HintTemperature float32  `json:"hintTemperature"`
	MaxRetries      int      `json:"maxRetries"`
}

// DefaultAIConfig returns the AI configuration from the environment
func DefaultAIConfig() *AIConfig {
	provider := Provider(strings.ToLower(getEnv("AI_PROVIDER", string(ProviderGemini))))

	cfg := &AIConfig{
		Provider:        provider,
		TimeoutMS:       getEnvInt("AI_TIMEOUT_MS", 20000),
		HintTemperature: float32(getEnvFloat("AI_HINT_TEMPERATURE", 0.4)),
		MaxRetries:      getEnvInt("AI_MAX_RETRIES", 2),
	}

	switch provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.BaseURL = getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1")
		cfg.Models = AIModels{
			Completion: getEnv("AI_MODEL_COMPLETION", "gpt-4o-mini"),
			Hint:       getEnv("AI_MODEL_HINT", "gpt-4o-mini"),
			Embedding:  getEnv("AI_MODEL_EMBEDDING", "text-embedding-3-small"),
		}
	default:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		cfg.Models = AIModels{
			Completion: getEnv("AI_MODEL_COMPLETION", "gemini-2.0-flash"),
			Hint:       getEnv("AI_MODEL_HINT", "gemini-2.0-flash"),
			Embedding:  getEnv("AI_MODEL_EMBEDDING", "text-embedding-004"),
		}
	}

	return cfg
}

// IsEnabled returns true if the active provider has credentials
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout bounds every single provider call
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// CallBudget is the longest one provider call can take with every retry and backoff used
func (c *AIConfig) CallBudget() time.Duration {
	retries := c.MaxRetries
	if retries < 0 {
		retries = 0
	}
	backoff := time.Duration(retries*(retries+1)/2) * 300 * time.Millisecond
	return time.Duration(retries+1)*c.Timeout() + backoff
}
