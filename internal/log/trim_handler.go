package log

import (
	"context"
	"io"
	"log/slog"
)

// DefaultMaxValueLen is the rune count above which string attribute
// values are truncated. Long enough to keep a full video title, short
// enough that a multi-kilobyte description cannot flood a log line.
const DefaultMaxValueLen = 160

// TrimMarker is appended to truncated values so readers can tell a
// trimmed value from a naturally short one.
const TrimMarker = "..."

// TrimHandler wraps an slog.Handler and truncates oversized string
// attribute values before passing records on.
//
// Design decision: We use a handler wrapper rather than trimming at
// call sites because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay readable; nobody has to remember to truncate
type TrimHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler

	// maxLen is the maximum string value length in runes.
	maxLen int
}

// NewTrimHandler creates a TrimHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A maxLen of
// zero or less selects DefaultMaxValueLen.
func NewTrimHandler(handler slog.Handler, maxLen int) *TrimHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &TrimHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TrimHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it to the underlying handler.
func (h *TrimHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are trimmed before being added.
func (h *TrimHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TrimHandler{handler: h.handler.WithAttrs(trimmedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TrimHandler) WithGroup(name string) slog.Handler {
	return &TrimHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// trimAttr trims a single attribute, recursively handling groups.
func (h *TrimHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		if trimmed, ok := h.trimString(a.Value.String()); ok {
			return slog.String(a.Key, trimmed)
		}
	}

	return a
}

// trimString truncates s at a rune boundary when it exceeds maxLen
// runes. Truncating bytes instead would split multi-byte Persian
// characters and corrupt the output.
func (h *TrimHandler) trimString(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) <= h.maxLen {
		return s, false
	}
	return string(runes[:h.maxLen]) + TrimMarker, true
}

// NewLogger creates a new slog.Logger with trimmed text output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Info
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or
// passed to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	trimHandler := NewTrimHandler(textHandler, DefaultMaxValueLen)

	return slog.New(trimHandler)
}

// NewJSONLogger creates a new slog.Logger with trimmed JSON output.
// Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Info
//
// Returns a *slog.Logger configured for JSON output with trimming.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	trimHandler := NewTrimHandler(jsonHandler, DefaultMaxValueLen)

	return slog.New(trimHandler)
}
