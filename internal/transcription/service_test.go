package transcription_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"scribe/internal/services"
	"scribe/internal/services/whisperx"
	"scribe/internal/subtitles"
	"scribe/internal/testsupport"
	"scribe/internal/transcription"
)

type fakeRecognizer struct {
	readyErr    error
	extractErr  error
	transcript  whisperx.Transcript
	extracted   []string
	transcribed []string
	languages   []string
}

func (f *fakeRecognizer) Ready() error  { return f.readyErr }
func (f *fakeRecognizer) Model() string { return "tiny" }

func (f *fakeRecognizer) ExtractAudio(_ context.Context, source, dest string) error {
	f.extracted = append(f.extracted, source+"->"+dest)
	if f.extractErr != nil {
		return f.extractErr
	}
	return os.WriteFile(dest, []byte("RIFF"), 0o644)
}

func (f *fakeRecognizer) Transcribe(_ context.Context, audioPath, _ string, lang string) (whisperx.Transcript, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return whisperx.Transcript{}, err
	}
	f.transcribed = append(f.transcribed, audioPath)
	f.languages = append(f.languages, lang)
	return f.transcript, nil
}

func sampleTranscript(lang string) whisperx.Transcript {
	return whisperx.Transcript{
		Language: lang,
		Segments: []whisperx.Segment{
			{Text: " Bom dia a todos. ", Start: 0.0, End: 0.5},
			{Text: "Hoje vamos falar sobre legendas.", Start: 1.0, End: 3.4},
		},
	}
}

func fixedProbe(seconds float64) transcription.DurationProbe {
	return func(context.Context, string) (float64, error) { return seconds, nil }
}

func TestTranscribeAudioFileSkipsExtraction(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	media := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "talk.wav"), "RIFF")
	rec := &fakeRecognizer{transcript: sampleTranscript("pt")}
	svc := transcription.New(cfg, nil, rec, transcription.WithDurationProbe(fixedProbe(42.5)))

	result, err := svc.Transcribe(context.Background(), transcription.Request{MediaPath: media})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(rec.extracted) != 0 {
		t.Fatalf("audio input should not be extracted: %v", rec.extracted)
	}
	if len(rec.transcribed) != 1 || rec.transcribed[0] != media {
		t.Fatalf("recognizer got %v", rec.transcribed)
	}
	if rec.languages[0] != "pt" {
		t.Fatalf("expected configured default language, got %q", rec.languages[0])
	}
	if result.SegmentCount != 2 || result.Duration != 42.5 || result.DetectedLanguage != "pt" {
		t.Fatalf("unexpected result: %+v", result)
	}
	// The first segment is shorter than the minimum and gets extended.
	if !strings.HasPrefix(result.Subtitles, "1\n00:00:00,000 --> 00:00:01,500\nBom dia a todos.\n") {
		t.Fatalf("unexpected SRT:\n%s", result.Subtitles)
	}
}

func TestTranscribeVideoExtractsAndCleansUp(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFormat("vtt"))
	media := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "Lecture.MKV"), "matroska")
	rec := &fakeRecognizer{transcript: sampleTranscript("en")}
	svc := transcription.New(cfg, nil, rec, transcription.WithDurationProbe(fixedProbe(0)))

	result, err := svc.Transcribe(context.Background(), transcription.Request{MediaPath: media, Language: "auto"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(rec.extracted) != 1 {
		t.Fatalf("expected one extraction, got %v", rec.extracted)
	}
	dest := strings.SplitN(rec.extracted[0], "->", 2)[1]
	if !strings.HasPrefix(dest, cfg.Paths.WorkDir) || filepath.Base(dest) != "audio.wav" {
		t.Fatalf("unexpected extraction target %q", dest)
	}
	if rec.transcribed[0] != dest {
		t.Fatalf("recognizer should read extracted audio, got %q", rec.transcribed[0])
	}
	if rec.languages[0] != "auto" {
		t.Fatalf("language = %q", rec.languages[0])
	}
	if result.DetectedLanguage != "en" {
		t.Fatalf("detected language = %q", result.DetectedLanguage)
	}
	if !strings.HasPrefix(result.Subtitles, "WEBVTT\n") {
		t.Fatalf("expected VTT output, got:\n%s", result.Subtitles)
	}
	// Unknown probe duration falls back to the last cue end.
	if result.Duration != 3.4 {
		t.Fatalf("duration = %v", result.Duration)
	}
	if leftovers := testsupport.ListDir(t, cfg.Paths.WorkDir); len(leftovers) != 0 {
		t.Fatalf("scratch files left behind: %v", leftovers)
	}
}

func TestTranscribeExtractionFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	media := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "clip.mp4"), "mp4")
	rec := &fakeRecognizer{
		extractErr: services.Wrap(services.ErrExternalTool, "transcription", "extract audio", "ffmpeg: invalid data", nil),
	}
	svc := transcription.New(cfg, nil, rec, transcription.WithDurationProbe(fixedProbe(0)))

	_, err := svc.Transcribe(context.Background(), transcription.Request{MediaPath: media})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if len(rec.transcribed) != 0 {
		t.Fatal("recognizer should not run after extraction failure")
	}
	if leftovers := testsupport.ListDir(t, cfg.Paths.WorkDir); len(leftovers) != 0 {
		t.Fatalf("scratch files left behind: %v", leftovers)
	}
}

func TestTranscribeValidatesPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	rec := &fakeRecognizer{transcript: sampleTranscript("pt")}
	svc := transcription.New(cfg, nil, rec)

	cases := []string{"", "   ", filepath.Join(t.TempDir(), "missing.wav"), t.TempDir()}
	for _, path := range cases {
		if _, err := svc.Transcribe(context.Background(), transcription.Request{MediaPath: path}); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("path %q: expected ErrValidation, got %v", path, err)
		}
	}
	if len(rec.transcribed) != 0 {
		t.Fatal("recognizer should not run for invalid paths")
	}
}

func TestTranscribeRecognizerNotReady(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	media := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "a.wav"), "RIFF")
	rec := &fakeRecognizer{readyErr: services.Wrap(services.ErrModelNotReady, "transcription", "locate uvx", "", nil)}
	svc := transcription.New(cfg, nil, rec)

	_, err := svc.Transcribe(context.Background(), transcription.Request{MediaPath: media})
	if !errors.Is(err, services.ErrModelNotReady) {
		t.Fatalf("expected ErrModelNotReady, got %v", err)
	}
}

func TestTranscribeNoSpeech(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	media := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "silence.wav"), "RIFF")
	rec := &fakeRecognizer{transcript: whisperx.Transcript{Language: "pt"}}
	svc := transcription.New(cfg, nil, rec, transcription.WithDurationProbe(fixedProbe(5)))

	_, err := svc.Transcribe(context.Background(), transcription.Request{MediaPath: media})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTranscribeProbeFailureFallsBack(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	media := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "a.wav"), "RIFF")
	rec := &fakeRecognizer{transcript: sampleTranscript("")}
	failing := func(context.Context, string) (float64, error) { return 0, errors.New("ffprobe missing") }
	svc := transcription.New(cfg, nil, rec, transcription.WithDurationProbe(failing))

	result, err := svc.Transcribe(context.Background(), transcription.Request{
		MediaPath: media,
		Language:  "Spanish",
		Format:    subtitles.JSON,
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Duration != 3.4 {
		t.Fatalf("duration = %v", result.Duration)
	}
	if result.DetectedLanguage != "es" {
		t.Fatalf("expected requested language when recognizer reports none, got %q", result.DetectedLanguage)
	}
	if !strings.HasPrefix(result.Subtitles, "{\n  \"segments\": [") {
		t.Fatalf("expected JSON output, got:\n%s", result.Subtitles)
	}
}

func TestTranscribeWaitsForLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	media := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "a.wav"), "RIFF")
	rec := &fakeRecognizer{transcript: sampleTranscript("pt")}
	svc := transcription.New(cfg, nil, rec, transcription.WithDurationProbe(fixedProbe(0)))

	held := flock.New(cfg.Paths.LockPath)
	if err := held.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	t.Cleanup(func() { _ = held.Unlock() })

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_, err := svc.Transcribe(ctx, transcription.Request{MediaPath: media})
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout while lock is held, got %v", err)
	}
	if len(rec.transcribed) != 0 {
		t.Fatal("recognizer should not run without the lock")
	}
}
