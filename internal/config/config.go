// Package config provides configuration types and defaults for cutlist.
package config

import (
	"fmt"

	"github.com/snorkem/cutlist/internal/timecode"
)

// Default constants
const (
	// DefaultFPS is the frame rate assumed when none is given. Most film
	// offline EDLs run at 23.976.
	DefaultFPS float64 = 23.976

	// DefaultGapThresholdFrames is the largest source discontinuity that
	// still merges adjacent same-clip events into one instance.
	DefaultGapThresholdFrames int64 = 1

	// DefaultParser selects the parsing strategy.
	DefaultParser string = "auto"

	// DefaultSkipBlackEdits drops black/blank filler events by default;
	// filler carries no clip identity and only pads the cut list.
	DefaultSkipBlackEdits bool = true
)

// Config holds all configuration for an EDL parse run.
type Config struct {
	// FPS is the frame rate the whole run is interpreted at.
	FPS float64 `toml:"fps"`

	// GapThresholdFrames controls when same-clip events merge.
	GapThresholdFrames int64 `toml:"gap_threshold_frames"`

	// Parser is the strategy name: auto, cmx3600, or builtin.
	Parser string `toml:"parser"`

	// SkipBlackEdits drops black/blank filler events before consolidation.
	// On by default; set false to keep filler as unidentified instances.
	SkipBlackEdits bool `toml:"skip_black_edits"`

	// VideoOnly drops audio-only events before consolidation.
	VideoOnly bool `toml:"video_only"`

	// Verbose enables unrecognized-line diagnostics.
	Verbose bool `toml:"verbose"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		FPS:                DefaultFPS,
		GapThresholdFrames: DefaultGapThresholdFrames,
		Parser:             DefaultParser,
		SkipBlackEdits:     DefaultSkipBlackEdits,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := timecode.RateForFPS(c.FPS); err != nil {
		return fmt.Errorf("%w: %g", ErrInvalidFrameRate, c.FPS)
	}

	if c.GapThresholdFrames < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidGapThreshold, c.GapThresholdFrames)
	}

	switch c.Parser {
	case "auto", "cmx3600", "builtin":
	default:
		return fmt.Errorf("%w: '%s', valid options: auto, cmx3600, builtin", ErrInvalidParser, c.Parser)
	}

	return nil
}

// Rate returns the validated FrameRate for the configured FPS.
func (c *Config) Rate() (timecode.FrameRate, error) {
	return timecode.RateForFPS(c.FPS)
}
