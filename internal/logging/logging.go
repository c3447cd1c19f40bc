// Package logging configures log/slog for the generator and the CLI.
package logging

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format selects the handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configure New.
type Options struct {
	Level  slog.Level
	Format Format
	Output io.Writer
}

// New builds a logger writing to opts.Output. A nil output discards
// everything.
func New(opts Options) *slog.Logger {
	if opts.Output == nil {
		return Discard()
	}

	ho := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if opts.Format == FormatJSON {
		handler = slog.NewJSONHandler(opts.Output, ho)
	} else {
		handler = slog.NewTextHandler(opts.Output, ho)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return l, nil
}

// For tags a logger with the subsystem it serves.
func For(logger *slog.Logger, subsystem string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return logger.With("subsystem", subsystem)
}

// DumpSource logs synthesized source with line numbers at debug level.
func DumpSource(ctx context.Context, logger *slog.Logger, name string, src []byte) {
	if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	var sb strings.Builder

	sc := bufio.NewScanner(bytes.NewReader(src))
	for n := 1; sc.Scan(); n++ {
		fmt.Fprintf(&sb, "%4d  %s\n", n, sc.Text())
	}

	logger.DebugContext(ctx, "synthesized source", "unit", name, "lines", strings.Count(string(src), "\n"), "source", sb.String())
}
