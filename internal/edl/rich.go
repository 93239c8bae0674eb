package edl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/snorkem/cutlist/internal/errors"
	"github.com/snorkem/cutlist/internal/timecode"
)

// eventHeadRe matches the fixed prefix of an EDL event line:
// EVENT# REEL CHANNEL TRANSITION [DURATION] ...rest
var eventHeadRe = regexp.MustCompile(`^(\d+)\s+(\S+)\s+(V|B|AA?\d*(?:/V)?)\s+(C|D|W\d{0,3}|KB|K)(?:\s+(\d{2,3}))?(?:\s+(\d{1,2}[:;].*))?$`)

// tcQuadRe matches four whitespace-separated timecodes.
var tcQuadRe = regexp.MustCompile(`^(\d{1,2}[:;]\d{1,2}[:;]\d{1,2}[:;]\d{1,2})\s+(\d{1,2}[:;]\d{1,2}[:;]\d{1,2}[:;]\d{1,2})\s+(\d{1,2}[:;]\d{1,2}[:;]\d{1,2}[:;]\d{1,2})\s+(\d{1,2}[:;]\d{1,2}[:;]\d{1,2}[:;]\d{1,2})\s*$`)

// m2Re matches a motion memory line: M2 REEL SPEED TIMECODE
var m2Re = regexp.MustCompile(`^M2\s+(\S+)\s+(-?[0-9.]+)\s+(\d{1,2}[:;]\d{1,2}[:;]\d{1,2}[:;]\d{1,2})`)

// locRe matches a locator line: * LOC: TIMECODE COLOR COMMENT
var locRe = regexp.MustCompile(`^\*\s*LOC:\s+(\d{1,2}[:;]\d{1,2}[:;]\d{1,2}[:;]\d{1,2})\s*(\w*)\s*(.*)$`)

// Clip identity comment spellings understood by the rich grammar, beyond the
// two the builtin tokenizer knows.
var (
	clipNameKeys   = []string{"FROM CLIP NAME:", "TO CLIP NAME:"}
	sourceFileKeys = []string{"SOURCE FILE:", "FROM CLIP:", "FROM FILE:"}
)

// RichParser implements the fuller CMX3600 grammar: single-line events, the
// split header/timecode-line dialect, FCM headers, motion memory, locators
// and freeze-frame notes. It is the primary strategy; an input it cannot
// make sense of falls back to the builtin tokenizer.
type RichParser struct {
	rate   timecode.FrameRate
	logger Logger
}

// NewRichParser creates a rich CMX3600 parser for the given rate.
func NewRichParser(rate timecode.FrameRate, logger Logger) *RichParser {
	return &RichParser{rate: rate, logger: logger}
}

// Name returns the strategy identifier recorded in the parse result.
func (p *RichParser) Name() string { return string(StrategyRich) }

// Parse reads the EDL text. Recoverable conditions become warnings; a
// grammar-level inconsistency (an event header with no timecodes in reach)
// is returned as an error so the caller can fall back.
func (p *RichParser) Parse(text string) ([]Event, []Warning, error) {
	var events []Event
	var warnings []Warning
	var current *Event

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		lineNum := i + 1
		line := strings.TrimSpace(lines[i])

		if line == "" || strings.HasPrefix(line, "TITLE:") {
			continue
		}
		if strings.HasPrefix(line, "FCM:") {
			// Frame count mode headers are informational here; the frame
			// rate is fixed by configuration for the whole run.
			if p.logger != nil {
				p.logger.Debug("line %d: %s", lineNum, line)
			}
			continue
		}

		if m := eventHeadRe.FindStringSubmatch(line); m != nil {
			ev, consumed, ws, ok, err := p.parseEvent(m, lines, i)
			if err != nil {
				return nil, nil, err
			}
			i += consumed
			warnings = append(warnings, ws...)
			if ok {
				events = append(events, ev)
				current = &events[len(events)-1]
			} else {
				current = nil
			}
			continue
		}

		if m := m2Re.FindStringSubmatch(line); m != nil {
			if current != nil {
				speed, _ := strconv.ParseFloat(m[2], 64)
				current.Speed = &speed
			}
			continue
		}

		if p.parseComment(line, current) {
			continue
		}

		if p.logger != nil {
			p.logger.Debug("line %d: unrecognized: %s", lineNum, line)
		}
	}

	return events, warnings, nil
}

// parseEvent assembles one event from a matched header. The timecode quad
// sits either on the header line itself or alone on the next non-blank
// line; anything else is a grammar failure. Returns how many extra lines
// were consumed.
func (p *RichParser) parseEvent(m []string, lines []string, idx int) (Event, int, []Warning, bool, error) {
	lineNum := idx + 1
	num, _ := strconv.Atoi(m[1])

	ev := Event{
		Number:  num,
		Reel:    m[2],
		Channel: Channel(m[3]),
		Line:    lineNum,
	}
	ev.Transition, ev.WipeCode = parseTransition(m[4])
	if m[5] != "" {
		ev.TransitionDuration, _ = strconv.Atoi(m[5])
	}

	quad := tcQuadRe.FindStringSubmatch(strings.TrimSpace(m[6]))
	consumed := 0
	if quad == nil {
		if m[6] != "" {
			return Event{}, 0, nil, false, errors.NewParseError(lineNum, "malformed timecode fields after event header")
		}
		// Split dialect: the quad is on its own line.
		next := idx + 1
		for next < len(lines) && strings.TrimSpace(lines[next]) == "" {
			next++
		}
		if next >= len(lines) {
			return Event{}, 0, nil, false, errors.NewParseError(lineNum, "event header at end of input without timecodes")
		}
		quad = tcQuadRe.FindStringSubmatch(strings.TrimSpace(lines[next]))
		if quad == nil {
			return Event{}, 0, nil, false, errors.NewParseError(next+1, "expected timecode line after event header")
		}
		consumed = next - idx
	}

	var warnings []Warning
	tcs := make([]timecode.Timecode, 4)
	for i, tok := range quad[1:5] {
		tc, err := timecode.Parse(tok, p.rate)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    warnKindFor(err),
				Line:    lineNum,
				Event:   num,
				Message: err.Error(),
			})
			return Event{}, consumed, warnings, false, nil
		}
		tcs[i] = tc
	}
	ev.SourceIn, ev.SourceOut, ev.RecordIn, ev.RecordOut = tcs[0], tcs[1], tcs[2], tcs[3]

	warnings = append(warnings, impliedDropWarnings(p.rate, lineNum, num, quad[1:5])...)
	return ev, consumed, warnings, true, nil
}

// parseComment folds a note line into the current event. Reports whether
// the line was a comment the grammar understands (or safely ignores).
func (p *RichParser) parseComment(line string, current *Event) bool {
	if !strings.HasPrefix(line, "*") {
		return false
	}
	if current == nil {
		return true // orphan comments before the first event are ignored
	}

	if m := locRe.FindStringSubmatch(line); m != nil {
		current.Markers = append(current.Markers, Marker{
			Timecode: m[1],
			Color:    m[2],
			Comment:  strings.TrimSpace(m[3]),
		})
		return true
	}

	body := strings.TrimSpace(strings.TrimPrefix(line, "*"))
	for _, key := range clipNameKeys {
		if strings.HasPrefix(body, key) {
			name := strings.TrimSpace(strings.TrimPrefix(body, key))
			current.ClipName = strings.TrimSuffix(name, " FF")
			if strings.HasSuffix(name, " FF") {
				current.FreezeFrame = true
			}
			return true
		}
	}
	for _, key := range sourceFileKeys {
		if strings.HasPrefix(body, key) {
			current.SourceFile = strings.TrimSpace(strings.TrimPrefix(body, key))
			return true
		}
	}
	if strings.HasPrefix(body, "FREEZE FRAME") {
		current.FreezeFrame = true
		return true
	}

	return true // other notes are pass-through
}

// String renders an event in event-line form, mostly for diagnostics.
func (e *Event) String() string {
	return fmt.Sprintf("%03d  %-8s %-4s %-2s %s %s %s %s",
		e.Number, e.Reel, e.Channel, e.Transition,
		e.SourceIn, e.SourceOut, e.RecordIn, e.RecordOut)
}
