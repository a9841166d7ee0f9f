package whisperx

import "time"

// Config selects the model, device and VAD used for recognition.
type Config struct {
	Model       string // empty means DefaultModel
	CUDAEnabled bool
	VADMethod   string // VADMethodSilero or VADMethodPyannote
	// HFToken is passed only with pyannote VAD.
	HFToken string
	// Timeout bounds each ffmpeg or WhisperX invocation. Zero disables it.
	Timeout time.Duration
}

const (
	DefaultModel      = "base"
	VADMethodSilero   = "silero"
	VADMethodPyannote = "pyannote"

	CPUDevice  = "cpu"
	CUDADevice = "cuda"

	CUDAIndexURL = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL = "https://pypi.org/simple"

	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)

// Fixed recognizer knobs.
const (
	batchSize      = "4"
	beamSize       = "5"
	outputFormat   = "json"
	cpuComputeType = "int8"
)

func (c Config) model() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

func (c Config) vadMethod() string {
	if c.VADMethod == "" {
		return VADMethodSilero
	}
	return c.VADMethod
}
