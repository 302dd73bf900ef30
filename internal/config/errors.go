package config

import "errors"

// Package-level sentinel errors for configuration handling.
var (
	// ErrLoadConfig indicates the file or environment layers could not
	// be read or decoded.
	ErrLoadConfig = errors.New("failed to load config")
	// ErrInvalidConfig indicates a loaded value failed validation.
	ErrInvalidConfig = errors.New("invalid config")
)
