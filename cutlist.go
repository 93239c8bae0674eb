// Package cutlist provides a Go library for parsing CMX3600-style edit
// decision lists into consolidated clip instances.
//
// Cutlist reads the loosely structured EDL text dialects NLEs actually
// export, converts timecodes with exact drop-frame arithmetic, merges
// adjacent edits of the same source clip into gap-free spans, and derives
// timeline analytics from the result.
//
// Basic usage:
//
//	engine, err := cutlist.New(
//	    cutlist.WithFrameRate(23.976),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := engine.ParseFile("final_v3.edl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%d events, %d clip instances\n",
//	    len(result.Events), len(result.Instances))
package cutlist

import (
	"github.com/snorkem/cutlist/internal/analytics"
	"github.com/snorkem/cutlist/internal/config"
	"github.com/snorkem/cutlist/internal/consolidate"
	"github.com/snorkem/cutlist/internal/discovery"
	"github.com/snorkem/cutlist/internal/edl"
	"github.com/snorkem/cutlist/internal/errors"
	"github.com/snorkem/cutlist/internal/fileio"
	"github.com/snorkem/cutlist/internal/reporter"
	"github.com/snorkem/cutlist/internal/timecode"
)

// Re-exported core types.
type (
	Event           = edl.Event
	Warning         = edl.Warning
	WarningKind     = edl.WarningKind
	ClipInstance    = consolidate.ClipInstance
	AnalyticsReport = analytics.Report
	InstanceStat    = analytics.InstanceStat
	FrameRate       = timecode.FrameRate
	Timecode        = timecode.Timecode
	Reporter        = reporter.Reporter
)

// Warning kinds.
const (
	WarnInvalidTimecodeFormat = edl.WarnInvalidTimecodeFormat
	WarnFrameOutOfRange       = edl.WarnFrameOutOfRange
	WarnInvertedRange         = edl.WarnInvertedRange
	WarnImpliedDropFrame      = edl.WarnImpliedDropFrame
	WarnUnidentifiedClip      = edl.WarnUnidentifiedClip
)

// Logger receives verbose-only diagnostics such as unrecognized lines.
type Logger interface {
	Debug(format string, args ...any)
}

// Engine is the main entry point for EDL parsing.
type Engine struct {
	config *config.Config
	logger Logger
}

// ParseResult is the outcome of one parse run. Created fresh per
// invocation; never mutated afterwards.
type ParseResult struct {
	Events    []Event
	Instances []ClipInstance
	Warnings  []Warning
	Strategy  string
	Fallback  string // why the rich grammar was abandoned, empty otherwise
	Rate      FrameRate

	// SkippedBlack counts black/blank filler events dropped before
	// consolidation when skip-black is enabled.
	SkippedBlack int

	// SkippedAudio counts audio-only events dropped before consolidation
	// when video-only mode is enabled.
	SkippedAudio int
}

// Option configures the engine.
type Option func(*Engine)

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{config: config.NewConfig()}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// NewWithConfig creates an Engine from an existing configuration.
func NewWithConfig(cfg *config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{config: cfg}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// WithFrameRate sets the frame rate the whole run is interpreted at.
// Supported rates: 23.976, 24, 25, 29.97, 30, 59.94, 60.
func WithFrameRate(fps float64) Option {
	return func(e *Engine) {
		e.config.FPS = fps
	}
}

// WithGapThreshold sets the largest source discontinuity, in frames, that
// still merges adjacent same-clip events.
func WithGapThreshold(frames int64) Option {
	return func(e *Engine) {
		e.config.GapThresholdFrames = frames
	}
}

// WithParser selects the parsing strategy: "auto", "cmx3600", or "builtin".
func WithParser(name string) Option {
	return func(e *Engine) {
		e.config.Parser = name
	}
}

// WithSkipBlackEdits drops black/blank filler events before consolidation.
// This is the default.
func WithSkipBlackEdits() Option {
	return func(e *Engine) {
		e.config.SkipBlackEdits = true
	}
}

// WithKeepBlackEdits keeps black/blank filler events; each becomes an
// unidentified singleton instance.
func WithKeepBlackEdits() Option {
	return func(e *Engine) {
		e.config.SkipBlackEdits = false
	}
}

// WithVideoOnly drops audio-only events before consolidation.
func WithVideoOnly() Option {
	return func(e *Engine) {
		e.config.VideoOnly = true
	}
}

// WithLogger directs verbose diagnostics to the given logger.
func WithLogger(logger Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() *config.Config {
	return e.config
}

// Parse parses EDL text into events, consolidated instances, and warnings.
func (e *Engine) Parse(text string) (*ParseResult, error) {
	rate, err := e.config.Rate()
	if err != nil {
		return nil, err
	}
	strategy, err := edl.ParseStrategy(e.config.Parser)
	if err != nil {
		return nil, err
	}

	parsed, err := edl.Parse(text, rate, strategy, e.logger)
	if err != nil {
		return nil, err
	}

	events := parsed.Events
	skippedBlack, skippedAudio := 0, 0
	if e.config.SkipBlackEdits || e.config.VideoOnly {
		kept := events[:0:0]
		for _, ev := range events {
			if e.config.SkipBlackEdits && ev.IsBlack() {
				skippedBlack++
				continue
			}
			if e.config.VideoOnly && ev.Channel.IsAudio() && !ev.Channel.IsVideo() {
				skippedAudio++
				continue
			}
			kept = append(kept, ev)
		}
		events = kept
		if len(events) == 0 {
			return nil, errors.NewNoEventsFoundError("EDL input after event filtering")
		}
	}

	instances, consolidationWarnings := consolidate.Consolidate(events, e.config.GapThresholdFrames)

	warnings := make([]Warning, 0, len(parsed.Warnings)+len(consolidationWarnings))
	warnings = append(warnings, parsed.Warnings...)
	warnings = append(warnings, consolidationWarnings...)

	return &ParseResult{
		Events:       events,
		Instances:    instances,
		Warnings:     warnings,
		Strategy:     parsed.Strategy,
		Fallback:     parsed.Fallback,
		Rate:         rate,
		SkippedBlack: skippedBlack,
		SkippedAudio: skippedAudio,
	}, nil
}

// ParseFile reads and parses one EDL file. Legacy 8-bit encodings are
// decoded transparently.
func (e *Engine) ParseFile(path string) (*ParseResult, error) {
	text, err := fileio.ReadText(path)
	if err != nil {
		return nil, err
	}
	return e.Parse(text)
}

// Analyze derives timeline statistics from a parse result.
func (e *Engine) Analyze(result *ParseResult) *AnalyticsReport {
	return analytics.Analyze(result.Instances, result.Rate)
}

// FindEDLs finds EDL files in a directory, sorted by filename.
func FindEDLs(dir string) ([]string, error) {
	return discovery.FindEDLFiles(dir)
}

// IsNoEventsFound reports whether err means the input had no recognizable
// edit events.
func IsNoEventsFound(err error) bool {
	return errors.IsNoEventsFound(err)
}

// IsUnsupportedFrameRate reports whether err means the requested frame rate
// is outside the supported set.
func IsUnsupportedFrameRate(err error) bool {
	return errors.IsUnsupportedFrameRate(err)
}

// IsNoFilesFound reports whether err means a directory had no EDL files.
func IsNoFilesFound(err error) bool {
	return errors.IsNoFilesFound(err)
}
