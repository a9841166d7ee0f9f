// Package transcription turns a media file into subtitles.
//
// A run validates the input path, extracts a mono 16kHz WAV when the input is
// a video container, runs the recognizer while holding a cross-process file
// lock, probes the media duration and hands the recognized segments to the
// subtitle engine. Scratch files live in a per-run directory under the
// configured work dir and are removed on every exit path.
package transcription
