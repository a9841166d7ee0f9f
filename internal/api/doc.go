// Package api serves the subtitle engine over HTTP.
//
// Routes:
//
//	GET  /status              recognizer readiness, model, version and dependencies
//	POST /generate-from-text  subtitles from prose
//	POST /transcribe          subtitles from a local media file
//	GET  /languages           supported recognition languages
//	GET  /health              liveness probe
//	GET  /metrics             Prometheus exposition
//
// Request and response bodies use snake_case keys. Every failure answers
// {"success": false, "error": "..."} with the status code derived from the
// services error markers. Durations in request bodies are seconds.
package api
