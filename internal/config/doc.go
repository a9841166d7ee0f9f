// Package config loads, normalizes, and validates Scribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_TOKEN. The Config type centralizes every knob the CLI and HTTP server
// need, and converts the [text] and [speech] sections into engine settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
