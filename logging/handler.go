// Package logging sets up structured logging: console text plus JSON
// files rotated weekly and by size, and an HTTP request middleware.
package logging

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"
)

// Defaults for zero Config values
const (
	defaultRetentionWeeks = 4
	defaultMaxFileSize    = 100 * 1024 * 1024
)

// setupLogger builds the console handler and, when cfg.Dir is set, a JSON
// file handler on a Rotator. The rotator is nil for console-only logging.
func setupLogger(cfg Config) (*slog.Logger, *Rotator) {
	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(cfg.Env, cfg.Level, cfg.Verbose),
	})

	if cfg.Dir == "" {
		return slog.New(console), nil
	}

	retention := cfg.RetentionWeeks
	if retention <= 0 {
		retention = defaultRetentionWeeks
	}
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}

	rotator, err := NewRotator(cfg.Dir, retention, maxSize)
	if err != nil {
		logger := slog.New(console)
		logger.Error("File logging disabled", "dir", cfg.Dir, "error", err)
		return logger, nil
	}

	file := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level: GetFileLogLevel(),
	})

	return slog.New(teeHandler{console, file}), rotator
}

// teeHandler sends each record to every handler enabled for its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(t, func(h slog.Handler) bool {
		return h.Enabled(ctx, level)
	})
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
