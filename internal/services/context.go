package services

import "context"

type contextKey int

const (
	pipelineKey contextKey = iota
	stageKey
	requestIDKey
)

func withString(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key contextKey) (string, bool) {
	value, _ := ctx.Value(key).(string)
	return value, value != ""
}

// WithPipeline records which pipeline (text or speech) is running.
func WithPipeline(ctx context.Context, pipeline string) context.Context {
	return withString(ctx, pipelineKey, pipeline)
}

func PipelineFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, pipelineKey)
}

// WithStage records the current pipeline step, such as "extract" or "recognize".
func WithStage(ctx context.Context, stage string) context.Context {
	return withString(ctx, stageKey, stage)
}

func StageFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, stageKey)
}

// WithRequestID attaches a correlation id. Empty ids leave ctx unchanged.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey)
}
