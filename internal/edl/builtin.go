package edl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/snorkem/cutlist/internal/errors"
	"github.com/snorkem/cutlist/internal/timecode"
)

// Comment keys the builtin tokenizer associates with the preceding event.
const (
	keyClipName   = "FROM CLIP NAME:"
	keySourceFile = "SOURCE FILE:"
)

// tcShaped matches a token that looks like a timecode, regardless of whether
// its field values are in range.
var tcShaped = regexp.MustCompile(`^\d{1,2}[:;]\d{1,2}[:;]\d{1,2}[:;]\d{1,2}$`)

// BuiltinParser is the fallback line-oriented tokenizer. It recognizes a
// numbered event line by its shape alone: a leading integer token plus
// exactly four timecode-shaped tokens at the end of the line. Everything
// else is a comment or continuation line.
type BuiltinParser struct {
	rate   timecode.FrameRate
	logger Logger
}

// NewBuiltinParser creates a builtin tokenizer for the given rate.
func NewBuiltinParser(rate timecode.FrameRate, logger Logger) *BuiltinParser {
	return &BuiltinParser{rate: rate, logger: logger}
}

// Name returns the strategy identifier recorded in the parse result.
func (p *BuiltinParser) Name() string { return string(StrategyBuiltin) }

// Parse tokenizes the EDL text line by line.
func (p *BuiltinParser) Parse(text string) ([]Event, []Warning, error) {
	var events []Event
	var warnings []Warning
	var current *Event

	for i, raw := range strings.Split(text, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "TITLE:") || strings.HasPrefix(line, "FCM:") {
			continue
		}

		tokens := strings.Fields(line)
		num, numErr := strconv.Atoi(tokens[0])

		if numErr == nil && countShaped(tokens) > 0 {
			ev, ws, ok := p.parseEventLine(num, lineNum, tokens)
			warnings = append(warnings, ws...)
			if ok {
				events = append(events, ev)
				current = &events[len(events)-1]
			} else {
				// The dropped event's comment lines must not leak onto the
				// previous event.
				current = nil
			}
			continue
		}

		if applyCommentKeys(line, current) {
			continue
		}

		// Not a warning: headers from exotic dialects and stray notes are
		// common and harmless.
		if p.logger != nil {
			p.logger.Debug("line %d: unrecognized: %s", lineNum, line)
		}
	}

	return events, warnings, nil
}

// parseEventLine parses a line already classified as event-shaped. A
// malformed timecode drops the whole event; the tokenizer does not keep
// partial records.
func (p *BuiltinParser) parseEventLine(num, lineNum int, tokens []string) (Event, []Warning, bool) {
	var warnings []Warning

	first, shaped := shapedSpan(tokens)
	if shaped != 4 || first+4 != len(tokens) {
		warnings = append(warnings, Warning{
			Kind:    WarnInvalidTimecodeFormat,
			Line:    lineNum,
			Event:   num,
			Message: fmt.Sprintf("expected four timecode fields, found %d", shaped),
		})
		return Event{}, warnings, false
	}

	ev := Event{Number: num, Line: lineNum}
	if first > 1 {
		ev.Reel = tokens[1]
	}
	if first > 2 {
		ev.Channel = Channel(tokens[2])
	}
	if first > 3 {
		ev.Transition, ev.WipeCode = parseTransition(tokens[3])
	}
	if first > 4 {
		if d, err := strconv.Atoi(tokens[4]); err == nil {
			ev.TransitionDuration = d
		}
	}

	tcs := make([]timecode.Timecode, 4)
	for i, tok := range tokens[first : first+4] {
		tc, err := timecode.Parse(tok, p.rate)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    warnKindFor(err),
				Line:    lineNum,
				Event:   num,
				Message: err.Error(),
			})
			return Event{}, warnings, false
		}
		tcs[i] = tc
	}
	ev.SourceIn, ev.SourceOut, ev.RecordIn, ev.RecordOut = tcs[0], tcs[1], tcs[2], tcs[3]

	warnings = append(warnings, impliedDropWarnings(p.rate, lineNum, num, tokens[first:first+4])...)
	return ev, warnings, true
}

// applyCommentKeys folds known comment keys into the most recent event.
// Reports whether the line matched a key.
func applyCommentKeys(line string, current *Event) bool {
	if current == nil {
		return false
	}
	if idx := strings.Index(line, keyClipName); idx >= 0 {
		current.ClipName = strings.TrimSpace(line[idx+len(keyClipName):])
		return true
	}
	if idx := strings.Index(line, keySourceFile); idx >= 0 {
		current.SourceFile = strings.TrimSpace(line[idx+len(keySourceFile):])
		return true
	}
	return false
}

// countShaped counts timecode-shaped tokens in the line.
func countShaped(tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if tcShaped.MatchString(tok) {
			n++
		}
	}
	return n
}

// shapedSpan returns the index of the first timecode-shaped token and the
// total count of shaped tokens.
func shapedSpan(tokens []string) (first, count int) {
	first = -1
	for i, tok := range tokens {
		if tcShaped.MatchString(tok) {
			if first < 0 {
				first = i
			}
			count++
		}
	}
	return first, count
}

// parseTransition normalizes a transition token. Wipe codes (W001, ...)
// collapse to the wipe type with the code preserved.
func parseTransition(tok string) (TransitionType, string) {
	up := strings.ToUpper(tok)
	switch up {
	case "C":
		return TransitionCut, ""
	case "D":
		return TransitionDissolve, ""
	case "K":
		return TransitionKey, ""
	case "KB":
		return TransitionKeyBackground, ""
	}
	if strings.HasPrefix(up, "W") {
		return TransitionWipe, up
	}
	return TransitionType(up), ""
}

// warnKindFor maps a timecode parse error to its warning kind.
func warnKindFor(err error) WarningKind {
	if errors.IsKind(err, errors.KindFrameOutOfRange) {
		return WarnFrameOutOfRange
	}
	return WarnInvalidTimecodeFormat
}

// impliedDropWarnings flags timecode fields that name frame numbers real
// drop-frame counting skips. The event is kept; some EDLs legitimately
// carry non-drop numbering at drop-frame rates.
func impliedDropWarnings(rate timecode.FrameRate, lineNum, eventNum int, texts []string) []Warning {
	if !rate.DropFrame() {
		return nil
	}
	var warnings []Warning
	for _, text := range texts {
		if timecode.ImpliedDropFrameViolation(text, rate) {
			warnings = append(warnings, Warning{
				Kind:    WarnImpliedDropFrame,
				Line:    lineNum,
				Event:   eventNum,
				Message: fmt.Sprintf("'%s' is a skipped frame number at %s", text, rate),
			})
		}
	}
	return warnings
}
