package logging

import (
	"log/slog"
	"testing"

	"github.com/giygas/interactions-api/config"
)

// ResetForTest installs a fresh global logger writing to dir and drops it
// when the test ends.
func ResetForTest(t *testing.T, dir string, env config.Environment, level string, retentionWeeks int, maxFileSize int64) {
	t.Helper()

	previousDefault := slog.Default()
	InitLoggerWithConfig(Config{
		Dir:            dir,
		Env:            env,
		Level:          level,
		RetentionWeeks: retentionWeeks,
		MaxFileSize:    maxFileSize,
	})

	t.Cleanup(func() {
		_ = Close()
		mu.Lock()
		active = nil
		mu.Unlock()
		slog.SetDefault(previousDefault)
	})
}
