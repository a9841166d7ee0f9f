package whisperx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"scribe/internal/services"
)

const stageName = "transcription"

// torchWeightsEnv restores the pre-2.6 torch.load behavior pyannote checkpoints need.
const torchWeightsEnv = "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD"

// CommandRunner executes an external command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Service runs ffmpeg and WhisperX (through uvx) as subprocesses.
type Service struct {
	cfg      Config
	ffmpeg   string
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// NewService returns a Service. An empty ffmpegBinary means "ffmpeg" on PATH.
func NewService(cfg Config, ffmpegBinary string) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &Service{cfg: cfg, ffmpeg: ffmpegBinary, runner: execRunner, lookPath: exec.LookPath}
}

// WithCommandRunner replaces subprocess execution, mainly for tests.
func (s *Service) WithCommandRunner(runner CommandRunner) {
	if runner != nil {
		s.runner = runner
	}
}

// WithLookPath replaces the binary lookup used by Ready.
func (s *Service) WithLookPath(lookPath func(string) (string, error)) {
	if lookPath != nil {
		s.lookPath = lookPath
	}
}

func (s *Service) Model() string        { return s.cfg.model() }
func (s *Service) CUDAEnabled() bool    { return s.cfg.CUDAEnabled }
func (s *Service) FFmpegBinary() string { return s.ffmpeg }

// Ready returns ErrModelNotReady when uvx cannot be found.
func (s *Service) Ready() error {
	if _, err := s.lookPath(UVXCommand); err != nil {
		return services.Wrap(services.ErrModelNotReady, stageName, "locate uvx", "install uv to run WhisperX", err)
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if _, set := os.LookupEnv(torchWeightsEnv); !set {
		cmd.Env = append(os.Environ(), torchWeightsEnv+"=1")
	}
	return cmd.CombinedOutput()
}

// run executes name under the configured timeout. Failures are ErrTimeout
// when the deadline fired and ErrExternalTool otherwise, carrying the
// command's trimmed output.
func (s *Service) run(ctx context.Context, operation, name string, args ...string) error {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	output, err := s.runner(ctx, name, args...)
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, stageName, operation, fmt.Sprintf("%s exceeded %s", name, s.cfg.Timeout), err)
	}
	message := name
	if errors.Is(err, exec.ErrNotFound) {
		message = name + " not found"
	} else if out := strings.TrimSpace(string(output)); out != "" {
		message = name + ": " + out
	}
	return services.Wrap(services.ErrExternalTool, stageName, operation, message, err)
}
