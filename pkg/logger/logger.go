package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named, sugared zap logger.
type Logger struct {
	*zap.SugaredLogger
}

type Options struct {
	Level  string
	Format string // json or console
}

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init replaces the process root logger. Loggers obtained before Init keep
// writing to the previous root.
func Init(opts Options) error {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if strings.EqualFold(opts.Format, "console") {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build zap logger: %w", err)
	}

	mu.Lock()
	root = l
	mu.Unlock()
	return nil
}

func Named(name string) (*Logger, error) {
	if name == "" {
		return nil, fmt.Errorf("logger name is required")
	}
	mu.RLock()
	defer mu.RUnlock()
	return &Logger{SugaredLogger: root.Named(name).Sugar()}, nil
}

func MustNamed(name string) *Logger {
	l, err := Named(name)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *Logger) Unwrap() *zap.SugaredLogger {
	return l.SugaredLogger
}

// Reflect renders any value as a structured field.
func (l *Logger) Reflect(key string, value any) zap.Field {
	return zap.Reflect(key, value)
}

func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}
