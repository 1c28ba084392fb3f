// Package config loads clipdeck settings from an optional TOML file, a
// .env file and environment overrides, in that order of precedence from
// lowest to highest.
package config
