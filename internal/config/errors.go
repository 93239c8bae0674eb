// Package config provides configuration types and defaults for cutlist.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFrameRate indicates a frame rate outside the supported set.
	ErrInvalidFrameRate = errors.New("unsupported frame rate")

	// ErrInvalidGapThreshold indicates a negative gap threshold.
	ErrInvalidGapThreshold = errors.New("gap threshold out of range")

	// ErrInvalidParser indicates an unknown parser strategy name.
	ErrInvalidParser = errors.New("invalid parser")
)
