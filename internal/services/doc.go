// Package services defines shared utilities consumed by the subtitle pipelines
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp pipeline names, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failures
//     classifiable (validation vs external tool vs timeout) all the way to the
//     HTTP layer.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform.
package services
