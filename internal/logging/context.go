package logging

import (
	"context"
	"log/slog"

	"scribe/internal/services"
)

// Standard structured field keys.
const (
	FieldComponent     = "component"
	FieldPipeline      = "pipeline" // text or speech
	FieldStage         = "stage"
	FieldCorrelationID = "correlation_id"
	FieldEventType     = "event_type"
	FieldErrorHint     = "error_hint" // what the operator should check next
	FieldImpact        = "impact"
)

// ContextFields returns the pipeline, stage and correlation id attached to
// ctx, in that order, skipping any that are absent.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	lookups := []struct {
		key string
		get func(context.Context) (string, bool)
	}{
		{FieldPipeline, services.PipelineFromContext},
		{FieldStage, services.StageFromContext},
		{FieldCorrelationID, services.RequestIDFromContext},
	}
	for _, l := range lookups {
		if v, ok := l.get(ctx); ok {
			fields = append(fields, slog.String(l.key, v))
		}
	}
	return fields
}

// WithContext returns logger extended with ContextFields(ctx).
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if fields := ContextFields(ctx); len(fields) > 0 {
		return logger.With(Args(fields...)...)
	}
	return logger
}
