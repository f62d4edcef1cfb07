// Package config loads, normalizes, and validates archiveboard configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and infers the SQL dialect from the database
// URL scheme when not set explicitly. The Config type centralizes every knob
// the core packages and CLI need, so the media store root, database
// connection, and logging destination are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a canonical dialect name, and clear validation errors.
package config
