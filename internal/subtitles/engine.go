package subtitles

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"scribe/internal/services"
)

// DefaultLanguage is reported for text-mode runs, which perform no detection.
const DefaultLanguage = "pt"

// Engine runs the text and speech pipelines. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	logger   *slog.Logger
	language string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger routes engine debug logs to logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLanguage overrides the language reported for text-mode results.
func WithLanguage(lang string) EngineOption {
	return func(e *Engine) {
		if lang = strings.TrimSpace(lang); lang != "" {
			e.language = lang
		}
	}
}

// NewEngine constructs an Engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   slog.New(slog.DiscardHandler),
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// TextRequest is the input of the text pipeline. A zero Settings means defaults.
type TextRequest struct {
	Text      string
	Format    Format
	Settings  Settings
	StartTime float64
}

// SpeechRequest is the input of the speech pipeline. A zero Settings means
// defaults. MediaDuration, when positive, is reported as the result duration.
type SpeechRequest struct {
	Segments      []SpeechSegment
	Format        Format
	Settings      SpeechSettings
	Language      string
	MediaDuration float64
}

// FromText cleans, segments, times and renders prose.
func (e *Engine) FromText(ctx context.Context, req TextRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimFunc(req.Text, unicode.IsSpace) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "text", "generate", "text is empty", nil)
	}
	settings := req.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return Result{}, err
	}

	cues := Segment(CleanText(req.Text), settings)
	cues = SynthesizeTiming(cues, settings, req.StartTime)
	cues = NormalizeTiming(cues, settings.Gap(), settings.MinDuration())

	output, err := Render(normalizeFormat(req.Format), cues)
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "text", "render", "", err)
	}

	result := Result{
		Subtitles:        output,
		SegmentCount:     len(cues),
		DetectedLanguage: e.language,
		Cues:             cues,
	}
	if len(cues) > 0 {
		result.Duration = cues[len(cues)-1].End
	}
	e.logger.DebugContext(ctx, "text subtitles generated",
		slog.String("format", string(normalizeFormat(req.Format))),
		slog.Int("cues", result.SegmentCount),
		slog.Float64("duration_seconds", result.Duration),
	)
	return result, nil
}

// FromSegments wraps, clamps and renders recognizer segments.
func (e *Engine) FromSegments(ctx context.Context, req SpeechRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(req.Segments) == 0 {
		return Result{}, services.Wrap(services.ErrValidation, "speech", "generate", "no speech segments", nil)
	}
	settings := req.Settings
	if settings == (SpeechSettings{}) {
		settings = DefaultSpeechSettings()
	}
	if err := settings.Validate(); err != nil {
		return Result{}, err
	}

	cues := AdaptSpeechSegments(req.Segments, settings)
	output, err := Render(normalizeFormat(req.Format), cues)
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "speech", "render", "", err)
	}

	result := Result{
		Subtitles:        output,
		SegmentCount:     len(cues),
		DetectedLanguage: strings.TrimSpace(req.Language),
		Cues:             cues,
		Duration:         req.MediaDuration,
	}
	if result.Duration <= 0 && len(cues) > 0 {
		result.Duration = cues[len(cues)-1].End
	}
	if dropped := len(req.Segments) - len(cues); dropped > 0 {
		e.logger.DebugContext(ctx, "blank speech segments skipped", slog.Int("dropped", dropped))
	}
	e.logger.DebugContext(ctx, "speech subtitles generated",
		slog.String("format", string(normalizeFormat(req.Format))),
		slog.Int("cues", result.SegmentCount),
		slog.String("language", result.DetectedLanguage),
	)
	return result, nil
}

// normalizeFormat treats an empty format as SRT so zero-value requests render.
func normalizeFormat(f Format) Format {
	if f == "" {
		return SRT
	}
	return f
}
