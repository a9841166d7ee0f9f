package transcription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"scribe/internal/config"
	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/media/ffprobe"
	"scribe/internal/services"
	"scribe/internal/services/whisperx"
	"scribe/internal/subtitles"
)

const (
	pipelineName   = "speech"
	lockRetryDelay = 250 * time.Millisecond
	extractedAudio = "audio.wav"
)

// Recognizer is the speech recognition collaborator. *whisperx.Service
// satisfies it.
type Recognizer interface {
	Ready() error
	Model() string
	ExtractAudio(ctx context.Context, source, dest string) error
	Transcribe(ctx context.Context, audioPath, outputDir, language string) (whisperx.Transcript, error)
}

// DurationProbe reports the media duration in seconds; 0 means unknown.
type DurationProbe func(ctx context.Context, path string) (float64, error)

// Request describes a single transcription.
type Request struct {
	// MediaPath is an audio or video file on the local filesystem.
	MediaPath string
	// Language is an ISO code, a language name or "auto". Empty uses the
	// configured default.
	Language string
	// Format is the output subtitle format. Empty uses the configured default.
	Format subtitles.Format
	// Settings overrides the configured speech settings when non-zero.
	Settings subtitles.SpeechSettings
}

// Service coordinates audio extraction, recognition and subtitle rendering.
type Service struct {
	cfg        *config.Config
	engine     *subtitles.Engine
	recognizer Recognizer
	probe      DurationProbe
	logger     *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "transcription")
		}
	}
}

// WithDurationProbe replaces the ffprobe-backed duration lookup.
func WithDurationProbe(probe DurationProbe) Option {
	return func(s *Service) {
		s.probe = probe
	}
}

// New builds a Service. A nil engine gets a default one.
func New(cfg *config.Config, engine *subtitles.Engine, recognizer Recognizer, opts ...Option) *Service {
	if engine == nil {
		engine = subtitles.NewEngine()
	}
	s := &Service{
		cfg:        cfg,
		engine:     engine,
		recognizer: recognizer,
		logger:     logging.NewNop(),
	}
	s.probe = ffprobeDuration(cfg.FFprobeBinary())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewWhisperX wires a Service to a WhisperX recognizer built from cfg.
func NewWhisperX(cfg *config.Config, ffmpegBinary string, engine *subtitles.Engine, opts ...Option) *Service {
	recognizer := whisperx.NewService(whisperx.Config{
		Model:       cfg.Transcription.Model,
		CUDAEnabled: cfg.Transcription.CUDAEnabled,
		VADMethod:   cfg.Transcription.VADMethod,
		HFToken:     cfg.Transcription.HFToken,
		Timeout:     cfg.TranscriptionTimeout(),
	}, ffmpegBinary)
	return New(cfg, engine, recognizer, opts...)
}

// Ready reports whether the recognizer can run.
func (s *Service) Ready() error {
	if s.recognizer == nil {
		return services.Wrap(services.ErrModelNotReady, pipelineName, "ready", "no recognizer configured", nil)
	}
	return s.recognizer.Ready()
}

// Model returns the recognizer model name.
func (s *Service) Model() string {
	if s.recognizer == nil {
		return ""
	}
	return s.recognizer.Model()
}

// Transcribe recognizes speech in req.MediaPath and renders subtitles.
func (s *Service) Transcribe(ctx context.Context, req Request) (subtitles.Result, error) {
	ctx = services.WithPipeline(ctx, pipelineName)
	logger := logging.WithContext(ctx, s.logger)

	mediaPath, err := validateMediaPath(req.MediaPath)
	if err != nil {
		return subtitles.Result{}, err
	}
	if err := s.Ready(); err != nil {
		return subtitles.Result{}, err
	}

	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = s.cfg.Transcription.Language
	}
	format := req.Format
	if format == "" {
		format = subtitles.ParseFormat(s.cfg.Speech.Format)
	}
	settings := req.Settings
	if settings == (subtitles.SpeechSettings{}) {
		settings = s.cfg.SpeechSettings()
	}

	if err := os.MkdirAll(s.cfg.Paths.WorkDir, 0o755); err != nil {
		return subtitles.Result{}, services.Wrap(services.ErrConfiguration, pipelineName, "prepare work dir", s.cfg.Paths.WorkDir, err)
	}
	runDir, err := os.MkdirTemp(s.cfg.Paths.WorkDir, "run-")
	if err != nil {
		return subtitles.Result{}, services.Wrap(services.ErrTransient, pipelineName, "prepare work dir", s.cfg.Paths.WorkDir, err)
	}
	defer func() {
		if removeErr := os.RemoveAll(runDir); removeErr != nil {
			logging.WarnWithContext(logger, "scratch cleanup failed", "cleanup_failed",
				logging.String("path", runDir),
				logging.Error(removeErr),
				logging.String(logging.FieldErrorHint, "remove the directory manually"),
				logging.String(logging.FieldImpact, "extracted audio left on disk"),
			)
		}
	}()

	audioPath := mediaPath
	if s.cfg.IsVideo(mediaPath) {
		audioPath = filepath.Join(runDir, extractedAudio)
		started := time.Now()
		if err := s.recognizer.ExtractAudio(services.WithStage(ctx, "extract"), mediaPath, audioPath); err != nil {
			return subtitles.Result{}, err
		}
		logger.Debug("audio extracted",
			logging.String("source", mediaPath),
			logging.Duration("elapsed", time.Since(started)),
		)
	}

	unlock, err := s.acquireLock(ctx)
	if err != nil {
		return subtitles.Result{}, err
	}
	defer unlock()

	started := time.Now()
	logger.Info("transcription started",
		logging.String("media", mediaPath),
		logging.String("model", s.recognizer.Model()),
		logging.String("language", language.DisplayName(lang)),
	)
	transcript, err := s.recognizer.Transcribe(services.WithStage(ctx, "recognize"), audioPath, runDir, lang)
	if err != nil {
		return subtitles.Result{}, err
	}
	if len(transcript.Segments) == 0 {
		return subtitles.Result{}, services.Wrap(services.ErrValidation, pipelineName, "recognize", "no speech detected", nil)
	}

	detected := language.ToISO2(transcript.Language)
	if detected == "" {
		detected = language.RecognizerArg(lang)
	}

	result, err := s.engine.FromSegments(ctx, subtitles.SpeechRequest{
		Segments:      transcript.SpeechSegments(),
		Format:        format,
		Settings:      settings,
		Language:      detected,
		MediaDuration: s.mediaDuration(ctx, logger, mediaPath),
	})
	if err != nil {
		return subtitles.Result{}, err
	}

	logger.Info("transcription complete",
		logging.String("media", mediaPath),
		logging.String("language", result.DetectedLanguage),
		logging.Int("cues", result.SegmentCount),
		logging.Float64("duration_seconds", result.Duration),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func validateMediaPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", services.Wrap(services.ErrValidation, pipelineName, "validate", "file path required", nil)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, pipelineName, "validate", path, err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", services.Wrap(services.ErrValidation, pipelineName, "validate", fmt.Sprintf("file not found: %s", expanded), nil)
		}
		return "", services.Wrap(services.ErrValidation, pipelineName, "validate", expanded, err)
	}
	if info.IsDir() {
		return "", services.Wrap(services.ErrValidation, pipelineName, "validate", fmt.Sprintf("%s is a directory", expanded), nil)
	}
	return expanded, nil
}

// acquireLock serializes recognizer runs across processes and goroutines.
// Each call opens its own lock handle so concurrent callers in one process
// contend on the same file.
func (s *Service) acquireLock(ctx context.Context) (func(), error) {
	lockPath := s.cfg.Paths.LockPath
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, pipelineName, "lock", lockPath, err)
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return nil, services.Wrap(services.ErrTimeout, pipelineName, "lock", "waiting for recognizer", err)
		}
		return nil, services.Wrap(services.ErrTransient, pipelineName, "lock", lockPath, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrTransient, pipelineName, "lock", "recognizer busy", nil)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(s.logger, "failed to release recognizer lock", "lock_release_failed",
				logging.String("lock", lockPath),
				logging.Error(err),
			)
		}
	}, nil
}

func (s *Service) mediaDuration(ctx context.Context, logger *slog.Logger, path string) float64 {
	if s.probe == nil {
		return 0
	}
	duration, err := s.probe(ctx, path)
	if err != nil {
		logging.WarnWithContext(logger, "media duration unavailable", "probe_failed",
			logging.String("media", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install ffprobe alongside ffmpeg"),
			logging.String(logging.FieldImpact, "reported duration falls back to the last cue end"),
		)
		return 0
	}
	return duration
}

func ffprobeDuration(binary string) DurationProbe {
	return func(ctx context.Context, path string) (float64, error) {
		result, err := ffprobe.Inspect(ctx, binary, path)
		if err != nil {
			return 0, err
		}
		return result.DurationSeconds(), nil
	}
}
