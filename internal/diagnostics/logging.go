// Package diagnostics carries the ambient operational concerns that
// aren't part of the decision engine itself: structured cloud logging,
// secret loading, and a webhook alert path the agent uses when search
// comes back empty or misses its deadline.
package diagnostics

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"
)

// CloudHandler is a slog.Handler that emits one JSON object per log
// line shaped for a cloud log ingester: "severity", "message", "time",
// plus every attribute flattened to the top level.
type CloudHandler struct {
	writer     io.Writer
	level      slog.Level
	extraAttrs map[string]any
}

// NewCloudHandler builds a CloudHandler writing to w at the given
// minimum level.
func NewCloudHandler(w io.Writer, level slog.Level) *CloudHandler {
	return &CloudHandler{writer: w, level: level}
}

// Enabled reports whether level is at or above the handler's minimum.
func (h *CloudHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes r as one JSON log entry.
func (h *CloudHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := map[string]any{}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	for k, v := range h.extraAttrs {
		attrs[k] = v
	}

	entry := map[string]any{
		"severity": severityFor(r.Level),
		"message":  r.Message,
		"time":     time.Now().Format(time.RFC3339Nano),
	}
	for k, v := range attrs {
		entry[k] = v
	}

	return json.NewEncoder(h.writer).Encode(entry)
}

// WithAttrs returns a handler that merges attrs into every future entry.
func (h *CloudHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.extraAttrs = make(map[string]any, len(h.extraAttrs)+len(attrs))
	for k, v := range h.extraAttrs {
		next.extraAttrs[k] = v
	}
	for _, a := range attrs {
		next.extraAttrs[a.Key] = a.Value.Any()
	}
	return &next
}

// WithGroup is a no-op: grouped attributes are flattened like everything
// else this handler emits.
func (h *CloudHandler) WithGroup(string) slog.Handler {
	return h
}

func severityFor(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	default:
		return "DEFAULT"
	}
}
