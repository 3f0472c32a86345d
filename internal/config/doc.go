// Package config loads, normalizes, and validates storyreel configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// reader and CLI need: shelf and cache directories, reader timings, layout
// breakpoint, and the external audio player command.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
