// Package config loads, normalizes, and validates hifiwifi configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads .env files and applies HIFIWIFI_*
// environment overrides (plus OLLAMA_HOST). The Config type centralizes every
// knob the daemon and CLI need, and converts the [backend] section into the
// settings the Ollama client consumes.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, canonical log formats, and clear validation errors.
package config
