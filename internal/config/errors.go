package config

import "errors"

// Sentinel kinds for configuration errors; callers match with errors.Is.
var (
	// ErrInvalidConfig means the layered config failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig wraps failures reading the file or environment layers.
	ErrLoadConfig = errors.New("load config failed")
)
