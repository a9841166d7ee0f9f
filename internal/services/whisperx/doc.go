// Package whisperx runs speech recognition through WhisperX and prepares its
// input with ffmpeg.
//
// This package handles:
//   - Audio extraction from video containers to mono 16kHz WAV
//   - WhisperX invocation through uvx
//   - Parsing WhisperX JSON output into timed segments
//
// Failures are tagged with the services error markers: a missing uvx is
// ErrModelNotReady, a failing tool is ErrExternalTool and an expired
// deadline is ErrTimeout.
package whisperx
