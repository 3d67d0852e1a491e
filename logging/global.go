package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/giygas/interactions-api/config"
)

// Config describes where and how verbosely to log
type Config struct {
	Dir            string // empty logs to the console only
	Env            config.Environment
	Level          string // console level override
	Verbose        bool   // test environments only
	RetentionWeeks int
	MaxFileSize    int64
}

var (
	mu      sync.RWMutex
	active  *slog.Logger
	rotator *Rotator
)

// fallback serves callers that log before InitLogger
var fallback = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// InitLogger initializes the global logger instance
func InitLogger(logDir string) {
	InitLoggerWithConfig(Config{Dir: logDir, RetentionWeeks: defaultRetentionWeeks})
}

// InitLoggerWithConfig replaces the global logger, closing the log file
// of the previous one.
func InitLoggerWithConfig(cfg Config) {
	logger, r := setupLogger(cfg)

	mu.Lock()
	previous := rotator
	active, rotator = logger, r
	mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	slog.SetDefault(logger)
}

// Logger returns the global logger, or a stderr logger before init
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if active == nil {
		return fallback
	}
	return active
}

// Close flushes and closes the log file, if any
func Close() error {
	mu.Lock()
	r := rotator
	rotator = nil
	mu.Unlock()

	if r == nil {
		return nil
	}
	return r.Close()
}

// parseLogLevel maps a level name to a slog level, defaulting to info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel picks the console level. Test runs stay quiet unless
// verbose and ignore overrides; elsewhere an explicit level wins over the
// environment default.
func GetConsoleLogLevel(env config.Environment, level string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if level != "" {
		return parseLogLevel(level)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the file level; files keep everything
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}

// Package-level helpers over Logger

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
