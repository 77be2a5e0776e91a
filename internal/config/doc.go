// Package config loads, normalizes, and validates streampick configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// engine and CLI need: provider binary and timeouts, retry policy, unified
// branch budget, selection defaults, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized values, canonical log formats, and clear validation errors.
package config
