// Package log provides helpers for creating a configured slog.Logger.
//
// When a log file path is not provided, logs are written to stdout for
// non-error levels and to stderr for errors, so a build can keep generator
// chatter apart from failures.
package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// LevelTrace sits below Debug and is used for per-field resolution output.
const LevelTrace slog.Level = -8

var levelNames = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a --log.level value onto a slog level. Unknown names
// fall back to Info.
func ParseLevel(s string) slog.Level {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return slog.LevelInfo
}

// Fanout hands each record to every member handler that accepts its level.
type Fanout []slog.Handler

func (f Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f Fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (f Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f Fanout) WithGroup(name string) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f Fanout) derive(fn func(slog.Handler) slog.Handler) Fanout {
	out := make(Fanout, 0, len(f))
	for _, h := range f {
		out = append(out, fn(h))
	}
	return out
}

// Band restricts next to records with Min <= level < Max.
type Band struct {
	Min, Max slog.Level
	Next     slog.Handler
}

const (
	minLevel slog.Level = math.MinInt
	maxLevel slog.Level = math.MaxInt
)

// Below accepts every level under hi.
func Below(hi slog.Level, next slog.Handler) Band {
	return Band{Min: minLevel, Max: hi, Next: next}
}

// AtLeast accepts lo and every level above it.
func AtLeast(lo slog.Level, next slog.Handler) Band {
	return Band{Min: lo, Max: maxLevel, Next: next}
}

func (b Band) contains(l slog.Level) bool {
	return l >= b.Min && l < b.Max
}

func (b Band) Enabled(ctx context.Context, level slog.Level) bool {
	return b.contains(level) && b.Next.Enabled(ctx, level)
}

func (b Band) Handle(ctx context.Context, r slog.Record) error {
	if !b.contains(r.Level) {
		return nil
	}
	return b.Next.Handle(ctx, r)
}

func (b Band) WithAttrs(attrs []slog.Attr) slog.Handler {
	b.Next = b.Next.WithAttrs(attrs)
	return b
}

func (b Band) WithGroup(name string) slog.Handler {
	b.Next = b.Next.WithGroup(name)
	return b
}

// HandlerFactory builds a slog handler for one output.
type HandlerFactory func(w io.Writer, opts *slog.HandlerOptions) slog.Handler

// FormatHandler resolves a --log.format value. "auto" picks text output when
// stderr is an interactive terminal and JSON otherwise, which suits CI logs.
func FormatHandler(format string) HandlerFactory {
	switch format {
	case "json":
		return jsonHandler
	case "text":
		return textHandler
	default:
		if term.IsTerminal(int(os.Stderr.Fd())) {
			return textHandler
		}
		return jsonHandler
	}
}

func textHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewTextHandler(w, opts)
}

func jsonHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(w, opts)
}

// SetupLogger builds a slog.Logger for the CLI. Without a log file, records
// below Error go to stdout and errors to stderr. With one, the file receives
// everything at logLevel and stderr only keeps warnings and errors.
func SetupLogger(logLevel, logFile, format string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	build := FormatHandler(format)
	opts := func(l slog.Level) *slog.HandlerOptions { return &slog.HandlerOptions{Level: l} }

	if logFile == "" {
		return slog.New(Fanout{
			Below(slog.LevelError, build(os.Stdout, opts(level))),
			AtLeast(slog.LevelError, build(os.Stderr, opts(slog.LevelError))),
		}), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(Fanout{
		build(os.Stderr, opts(slog.LevelWarn)),
		build(f, opts(level)),
	})
	return logger, []io.Closer{f}, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
