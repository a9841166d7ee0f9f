// Package ffprobe wraps the ffprobe JSON output the transcription pipeline
// needs: audio stream presence and media duration.
package ffprobe
