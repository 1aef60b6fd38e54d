package logger

import (
	"context"
	"time"
)

type contextKey struct{}

var logContextKey = contextKey{}

// LogContext holds the fields of one CLI invocation that every log line carries.
type LogContext struct {
	Command   string    // CLI command: decode, encode, guess
	Type      string    // XDR type name
	Input     string    // Input label (file path, "stdin" or "arg[N]")
	Format    string    // Input format: single, stream-base64, ...
	StartTime time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a LogContext for command.
func NewLogContext(command string) *LogContext {
	return &LogContext{
		Command:   command,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	c := *lc
	return &c
}

// WithType returns a copy with the XDR type set
func (lc *LogContext) WithType(name string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Type = name
	}
	return clone
}

// WithInput returns a copy with the input label and format set
func (lc *LogContext) WithInput(label, format string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Input = label
		clone.Format = format
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
