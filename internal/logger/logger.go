package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"promptquest/internal/config"
)

// Setup sends the standard logger to stdout and a rotating server.log.
// The returned closer flushes the log file on shutdown.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, err
	}

	file := rotating(cfg, "server.log")
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return file, nil
}

// AttemptWriter returns the rotating attempts.log used for the audit trail
func AttemptWriter(cfg config.LogConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, err
	}
	return rotating(cfg, "attempts.log"), nil
}

func rotating(cfg config.LogConfig, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}
