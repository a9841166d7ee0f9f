package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// syncWriter serializes writes from handlers that share one destination.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(p)
	return err
}

type field struct {
	key   string
	value slog.Value
}

// consoleHandler renders one human-readable line per record:
//
//	2026-01-02T15:04:05Z INFO engine/segment: cues built [engine.go:12] cues=3
//
// The component and stage attributes become the line prefix instead of
// trailing fields.
type consoleHandler struct {
	out       *syncWriter
	level     *slog.LevelVar
	preset    []field
	groups    []string
	addSource bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{out: &syncWriter{w: w}, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := slices.Clone(h.preset)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.groups, attr)
		return true
	})
	prefix, fields := splitPrefix(fields)

	when := record.Time
	if when.IsZero() {
		when = time.Now()
	}

	var line strings.Builder
	line.Grow(96 + 24*len(fields))
	line.WriteString(when.UTC().Format(time.RFC3339))
	line.WriteString(" " + levelLabel(record.Level) + " ")
	if prefix != "" {
		line.WriteString(prefix + ": ")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	line.WriteString(msg)
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&line, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range fields {
		if f.key != "" {
			line.WriteString(" " + f.key + "=" + formatValue(f.value))
		}
	}
	line.WriteByte('\n')
	return h.out.write([]byte(line.String()))
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = slices.Clone(h.preset)
	for _, attr := range attrs {
		next.preset = appendField(next.preset, h.groups, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(slices.Clone(h.groups), name)
	return &next
}

// splitPrefix removes the first component and stage values from fields and
// joins them as "component/stage".
func splitPrefix(fields []field) (string, []field) {
	var component, stage string
	rest := fields[:0]
	for _, f := range fields {
		switch {
		case f.key == FieldComponent && component == "":
			component = stringValue(f.value)
		case f.key == FieldStage && stage == "":
			stage = stringValue(f.value)
		case f.key == FieldComponent || f.key == FieldStage:
		default:
			rest = append(rest, f)
		}
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{component, stage} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/"), rest
}

func appendField(dst []field, groups []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		inner := groups
		if attr.Key != "" {
			inner = append(slices.Clone(groups), attr.Key)
		}
		for _, child := range value.Group() {
			dst = appendField(dst, inner, child)
		}
		return dst
	}
	key := attr.Key
	if key != "" && len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	return append(dst, field{key: key, value: value})
}

func stringValue(v slog.Value) string {
	if v.Kind() == slog.KindString {
		return v.String()
	}
	return strings.Trim(formatValue(v), `"`)
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		// bool, ints, durations
		return v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}
