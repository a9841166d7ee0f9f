// Package main hosts the Scribe CLI entrypoint and command graph.
//
// The Cobra command tree exposes the subtitle engine directly (generate,
// transcribe, inspect), runs the HTTP API (serve), and reports languages,
// dependency status and configuration. Configuration resolution, .env
// loading and logger construction live in the shared command context so
// subcommands only wire flags to internal packages.
package main
