package edl

import (
	"fmt"
	"strings"

	"github.com/snorkem/cutlist/internal/errors"
	"github.com/snorkem/cutlist/internal/timecode"
)

// Strategy selects which parsing backend runs.
type Strategy string

const (
	// StrategyAuto tries the rich CMX3600 grammar first and falls back to
	// the builtin tokenizer when the grammar cannot handle the input.
	StrategyAuto Strategy = "auto"
	// StrategyRich forces the rich CMX3600 grammar.
	StrategyRich Strategy = "cmx3600"
	// StrategyBuiltin forces the builtin line tokenizer.
	StrategyBuiltin Strategy = "builtin"
)

// ParseStrategy converts a strategy string to a Strategy value.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyAuto:
		return StrategyAuto, nil
	case StrategyRich:
		return StrategyRich, nil
	case StrategyBuiltin:
		return StrategyBuiltin, nil
	default:
		return "", errors.NewConfigError(fmt.Sprintf("invalid parser '%s', valid options: auto, cmx3600, builtin", s))
	}
}

// Logger receives verbose-only diagnostics such as unrecognized lines.
// A nil Logger discards them.
type Logger interface {
	Debug(format string, args ...any)
}

// Parser is the contract both backends implement. Parse never aborts on a
// single bad line: recoverable conditions become warnings and parsing
// continues. A non-nil error means the backend could not make sense of the
// input as a whole.
type Parser interface {
	Name() string
	Parse(text string) ([]Event, []Warning, error)
}

// Result is the outcome of a parse run.
type Result struct {
	Events   []Event
	Warnings []Warning
	Strategy string // backend that produced the events
	Fallback string // why the rich grammar was abandoned, empty if it was not
}

// Parse runs the selected strategy over the EDL text. In auto mode the rich
// grammar runs first; an internal grammar failure, or a run that recognizes
// no events, hands the text to the builtin tokenizer transparently. Zero
// recognized events from the final backend is fatal: there is nothing to
// consolidate.
func Parse(text string, rate timecode.FrameRate, strategy Strategy, logger Logger) (*Result, error) {
	switch strategy {
	case StrategyRich:
		return runSingle(NewRichParser(rate, logger), text)
	case StrategyBuiltin:
		return runSingle(NewBuiltinParser(rate, logger), text)
	default:
		return runWithFallback(NewRichParser(rate, logger), NewBuiltinParser(rate, logger), text)
	}
}

func runSingle(p Parser, text string) (*Result, error) {
	events, warnings, err := p.Parse(text)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errors.NewNoEventsFoundError("EDL input")
	}
	return &Result{Events: events, Warnings: warnings, Strategy: p.Name()}, nil
}

func runWithFallback(primary, fallback Parser, text string) (*Result, error) {
	events, warnings, err := primary.Parse(text)
	if err == nil && len(events) > 0 {
		return &Result{Events: events, Warnings: warnings, Strategy: primary.Name()}, nil
	}

	reason := "no events recognized"
	if err != nil {
		reason = err.Error()
	}

	events, warnings, err = fallback.Parse(text)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errors.NewNoEventsFoundError("EDL input")
	}
	return &Result{
		Events:   events,
		Warnings: warnings,
		Strategy: fallback.Name(),
		Fallback: reason,
	}, nil
}
