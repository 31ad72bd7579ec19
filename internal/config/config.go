package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"promptquest/internal/model"
)

// Config holds server configuration
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	LevelsFile  string
	SessionTTL  time.Duration
	MaxAttempts int

	SubmitRatePerMin int
	SubmitBurst      int

	CORSAllowedOrigins []string
	SessionSecret      string

	EmbeddingCacheTTL time.Duration

	Log       LogConfig
	Threshold model.ThresholdPolicy
	AI        *AIConfig
}

// LogConfig controls the rotating log files
type LogConfig struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads .env (if present) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	defaultThreshold := model.DefaultThresholdPolicy()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "promptquest"),
		RedisAddr:   strings.TrimPrefix(getEnv("REDIS_URI", "localhost:6379"), "redis://"),
		LevelsFile:  os.Getenv("LEVELS_FILE"),
		SessionTTL:  getEnvDuration("SESSION_TTL", 2*time.Hour),
		MaxAttempts: getEnvInt("MAX_ATTEMPTS", model.DefaultMaxAttempts),

		SubmitRatePerMin: getEnvInt("SUBMIT_RATE_PER_MIN", 12),
		SubmitBurst:      getEnvInt("SUBMIT_BURST", 3),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SessionSecret:      getEnv("SESSION_SECRET", "promptquest-dev-secret"),

		EmbeddingCacheTTL: getEnvDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),

		Log: LogConfig{
			Dir:        getEnv("LOG_DIR", "logs"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
		Threshold: model.ThresholdPolicy{
			Base:  getEnvFloat("THRESHOLD_BASE", defaultThreshold.Base),
			Step:  getEnvFloat("THRESHOLD_STEP", defaultThreshold.Step),
			Floor: getEnvFloat("THRESHOLD_FLOOR", defaultThreshold.Floor),
		},
		AI: DefaultAIConfig(),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, val, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %v", key, val, defaultVal)
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("Warning: %s=%q is not a duration, using %s", key, val, defaultVal)
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
