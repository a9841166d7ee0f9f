// Package subtitles turns prose or recognizer segments into timed subtitle
// cues and renders them as SRT, WebVTT, ASS, JSON or a plain transcript.
//
// Text mode cleans the input, packs sentences into cues no longer than the
// configured character budget, assigns reading-speed based durations and
// removes overlaps. Speech mode trusts recognizer timing and only wraps text
// and clamps each duration. Engine ties both pipelines to the formatters and
// holds no mutable state.
package subtitles
