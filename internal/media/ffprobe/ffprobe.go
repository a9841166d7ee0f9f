package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"scribe/internal/services"
)

const defaultBinary = "ffprobe"

var probeArgs = []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json"}

// Runner executes ffprobe and returns its stdout.
type Runner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// Result is the part of ffprobe's JSON the transcription pipeline reads.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

type Stream struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Channels  int    `json:"channels"`
	Duration  string `json:"duration"`
}

// Format is container-level metadata. Duration is ffprobe's decimal string
// and may be "N/A".
type Format struct {
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect probes path with binary ("ffprobe" when blank).
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	return InspectWith(ctx, runFFprobe, binary, path)
}

// InspectWith is Inspect with an injectable runner.
func InspectWith(ctx context.Context, run Runner, binary, path string) (Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, services.Wrap(services.ErrValidation, "ffprobe", "inspect", "empty path", nil)
	}
	if binary = strings.TrimSpace(binary); binary == "" {
		binary = defaultBinary
	}

	args := append(append([]string(nil), probeArgs...), "--", path)
	output, err := run(ctx, binary, args...)
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", path, err)
	}
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "parse", path, err)
	}
	return result, nil
}

// runFFprobe returns stdout; on failure ffprobe's stderr is folded into the error.
func runFFprobe(ctx context.Context, binary string, args ...string) ([]byte, error) {
	output, err := exec.CommandContext(ctx, binary, args...).Output() //nolint:gosec
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
			return nil, fmt.Errorf("%w: %s", err, stderr)
		}
	}
	return output, err
}

func (r Result) audioStreams() []Stream {
	var audio []Stream
	for _, s := range r.Streams {
		if strings.EqualFold(s.CodecType, "audio") {
			audio = append(audio, s)
		}
	}
	return audio
}

func (r Result) AudioStreamCount() int { return len(r.audioStreams()) }

func (r Result) HasAudio() bool { return r.AudioStreamCount() > 0 }

// DurationSeconds prefers the container duration and falls back to the
// longest audio stream. Zero means unknown.
func (r Result) DurationSeconds() float64 {
	if d := seconds(r.Format.Duration); d > 0 {
		return d
	}
	var longest float64
	for _, s := range r.audioStreams() {
		longest = math.Max(longest, seconds(s.Duration))
	}
	return longest
}

// seconds parses an ffprobe duration. Blank, "N/A" and non-finite values are 0.
func seconds(value string) float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}
