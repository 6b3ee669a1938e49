// Package config loads, normalizes, and validates demoreel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DEMOREEL_HEALTH_URL. The Config type centralizes every knob the scaffold
// generator and both recorder variants need, so output paths, external
// binaries, and segment timing are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
