package whisperx

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	langpkg "scribe/internal/language"
	"scribe/internal/services"
)

// Transcribe runs WhisperX on audioPath and parses the JSON it writes into
// outputDir (the audio's directory when empty). An empty or "auto" language
// lets WhisperX detect it.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir, language string) (Transcript, error) {
	if audioPath == "" {
		return Transcript{}, services.Wrap(services.ErrValidation, stageName, "transcribe", "audio path required", nil)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Transcript{}, services.Wrap(services.ErrTransient, stageName, "ensure output dir", outputDir, err)
	}

	if err := s.run(ctx, "whisperx", UVXCommand, s.recognizerArgs(audioPath, outputDir, language)...); err != nil {
		return Transcript{}, err
	}

	transcript, err := LoadTranscript(outputPath(audioPath, outputDir))
	if err != nil {
		return Transcript{}, services.Wrap(services.ErrExternalTool, stageName, "read whisperx output", "", err)
	}
	if transcript.Language == "" {
		transcript.Language = langpkg.RecognizerArg(language)
	}
	return transcript, nil
}

// outputPath is where WhisperX writes JSON for audioPath.
func outputPath(audioPath, outputDir string) string {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, stem+"."+outputFormat)
}

// recognizerArgs builds the uvx argument list:
// index flags, whisperx and its source, model and output flags, VAD,
// language, then device flags.
func (s *Service) recognizerArgs(source, outputDir, language string) []string {
	args := s.indexArgs()
	args = append(args,
		"whisperx", source,
		"--model", s.cfg.model(),
		"--batch_size", batchSize,
		"--beam_size", beamSize,
		"--output_dir", outputDir,
		"--output_format", outputFormat,
		"--vad_method", s.cfg.vadMethod(),
	)
	if s.cfg.vadMethod() == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}
	if lang := langpkg.RecognizerArg(language); lang != "" {
		args = append(args, "--language", lang)
	}
	return append(args, s.deviceArgs()...)
}

func (s *Service) indexArgs() []string {
	if s.cfg.CUDAEnabled {
		return []string{"--index-url", CUDAIndexURL, "--extra-index-url", PypiIndexURL}
	}
	return []string{"--index-url", PypiIndexURL}
}

func (s *Service) deviceArgs() []string {
	if s.cfg.CUDAEnabled {
		return []string{"--device", CUDADevice}
	}
	return []string{"--device", CPUDevice, "--compute_type", cpuComputeType}
}
