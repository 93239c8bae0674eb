// Package edl parses CMX3600-style edit decision lists into ordered edit
// events. Two parsing strategies share one contract: a rich grammar covering
// the common EDL dialects, and a line-oriented builtin tokenizer used as the
// fallback.
package edl

import (
	"fmt"
	"strings"

	"github.com/snorkem/cutlist/internal/timecode"
)

// TransitionType represents the transition code of an edit event. Stored as
// parsed; the engine does not interpret transitions further.
type TransitionType string

const (
	// TransitionCut represents a cut (instantaneous transition).
	TransitionCut TransitionType = "C"
	// TransitionDissolve represents a dissolve/cross-fade.
	TransitionDissolve TransitionType = "D"
	// TransitionWipe represents a wipe transition.
	TransitionWipe TransitionType = "W"
	// TransitionKey represents a key (overlay).
	TransitionKey TransitionType = "K"
	// TransitionKeyBackground represents a key with background.
	TransitionKeyBackground TransitionType = "KB"
)

// Channel represents the channel/track designator of an edit event
// (V, A, A2, AA, B, ...).
type Channel string

// IsVideo reports whether the channel carries video.
func (c Channel) IsVideo() bool {
	s := string(c)
	return strings.Contains(s, "V") || s == "B"
}

// IsAudio reports whether the channel carries audio.
func (c Channel) IsAudio() bool {
	s := string(c)
	return strings.Contains(s, "A") || s == "B"
}

// Reels that carry no clip identity: black/blank filler and the auxiliary
// source convention.
const (
	ReelBlack     = "BL"
	ReelBlackLong = "BLACK"
	ReelAuxiliary = "AX"
)

// Marker is a locator line attached to an event (rich grammar only).
type Marker struct {
	Timecode string
	Color    string
	Comment  string
}

// Event is one parsed EDL record.
type Event struct {
	Number     int
	Reel       string
	ClipName   string // from FROM CLIP NAME: comment
	SourceFile string // from SOURCE FILE: comment
	Channel    Channel
	Transition TransitionType

	SourceIn  timecode.Timecode
	SourceOut timecode.Timecode
	RecordIn  timecode.Timecode
	RecordOut timecode.Timecode

	// Pass-through extras populated only by the rich grammar.
	TransitionDuration int
	WipeCode           string
	FreezeFrame        bool
	Speed              *float64 // M2 motion memory, frames per second
	Markers            []Marker

	Line int // 1-based line number of the event line
}

// Identity returns the clip identity used for consolidation: explicit source
// filename first, then clip name, then the reel field. Black filler and
// auxiliary reels carry no identity; the empty result marks the event
// unidentified.
func (e *Event) Identity() string {
	if e.SourceFile != "" {
		return e.SourceFile
	}
	if e.ClipName != "" {
		return e.ClipName
	}
	switch strings.ToUpper(e.Reel) {
	case ReelBlack, ReelBlackLong, ReelAuxiliary, "":
		return ""
	}
	return e.Reel
}

// IsBlack reports whether the event references black/blank filler.
func (e *Event) IsBlack() bool {
	up := strings.ToUpper(e.Reel)
	return up == ReelBlack || up == ReelBlackLong
}

// DisplayName returns the best human-readable name for the event.
func (e *Event) DisplayName() string {
	if name := e.Identity(); name != "" {
		return name
	}
	return fmt.Sprintf("event %d", e.Number)
}

// WarningKind classifies recoverable, event-scoped parse conditions.
type WarningKind int

const (
	// WarnInvalidTimecodeFormat marks an event-shaped line whose timecode
	// text does not match HH:MM:SS:FF.
	WarnInvalidTimecodeFormat WarningKind = iota
	// WarnFrameOutOfRange marks a timecode field outside the rate's range.
	WarnFrameOutOfRange
	// WarnInvertedRange marks an event or instance whose out point precedes
	// its in point.
	WarnInvertedRange
	// WarnImpliedDropFrame marks a timecode that names a frame number real
	// drop-frame counting would skip.
	WarnImpliedDropFrame
	// WarnUnidentifiedClip marks an event with neither clip name, source
	// file, nor usable reel.
	WarnUnidentifiedClip
)

// String returns a short identifier for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnInvalidTimecodeFormat:
		return "invalid timecode format"
	case WarnFrameOutOfRange:
		return "frame out of range"
	case WarnInvertedRange:
		return "inverted range"
	case WarnImpliedDropFrame:
		return "implied drop-frame violation"
	case WarnUnidentifiedClip:
		return "unidentified clip"
	default:
		return "unknown"
	}
}

// Warning is a recoverable condition collected during parsing or
// consolidation. Event is the event number when known, zero otherwise.
type Warning struct {
	Kind    WarningKind
	Line    int
	Event   int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}
