// Package consolidate groups parsed edit events into clip instances:
// contiguous, gap-free spans of the same source clip in file order.
package consolidate

import (
	"fmt"

	"github.com/snorkem/cutlist/internal/edl"
	"github.com/snorkem/cutlist/internal/timecode"
)

// DefaultGapThreshold is the largest source discontinuity, in frames, that
// still merges two adjacent same-clip events. Contiguous events have a gap
// of zero.
const DefaultGapThreshold = 1

// ClipInstance is a consolidated span of one or more events referencing the
// same source clip. Immutable once built.
type ClipInstance struct {
	Identity   string // resolved clip identity, empty for unidentified events
	ClipName   string
	SourceFile string
	Reel       string

	SourceIn  timecode.Timecode
	SourceOut timecode.Timecode
	RecordIn  timecode.Timecode
	RecordOut timecode.Timecode

	Events []int // indices into the event list, file order
	Frames int64 // inclusive source span of the whole instance

	// InstanceNumber counts appearances of the same identity across the
	// file, starting at 1. A clip that is revisited after a gap gets a new
	// instance with the next number. InstanceTotal is how many instances
	// that identity yields across the whole file.
	InstanceNumber int
	InstanceTotal  int

	Warnings []edl.Warning
}

// DisplayName returns the best human-readable name for the instance. A clip
// that yields more than one instance gets its instance number appended.
func (ci *ClipInstance) DisplayName() string {
	if ci.Identity == "" {
		if len(ci.Events) > 0 {
			return fmt.Sprintf("unidentified (event %d)", ci.Events[0])
		}
		return "unidentified"
	}
	if ci.InstanceTotal > 1 {
		return fmt.Sprintf("%s (Instance %d)", ci.Identity, ci.InstanceNumber)
	}
	return ci.Identity
}

// RecordFrames returns the instance's span on the edited timeline.
func (ci *ClipInstance) RecordFrames() int64 {
	return timecode.DeltaFrames(ci.RecordOut, ci.RecordIn)
}

// Consolidate partitions events, in file order, into maximal runs sharing
// one clip identity where every adjacent pair's source gap stays within
// threshold frames. Identity changes and oversized gaps both force a new
// instance; a clip that reappears later in the file starts a fresh instance
// rather than merging backwards. Unidentified events become singleton
// instances. Returned warnings aggregate every instance's warnings in file
// order.
func Consolidate(events []edl.Event, threshold int64) ([]ClipInstance, []edl.Warning) {
	var instances []ClipInstance
	var keys []string
	var warnings []edl.Warning
	appearances := make(map[string]int)

	start := 0
	for i := 1; i <= len(events); i++ {
		if i < len(events) && sameRun(&events[i-1], &events[i], threshold) {
			continue
		}
		if start < i {
			ci, key := buildInstance(events, start, i, appearances)
			instances = append(instances, ci)
			keys = append(keys, key)
		}
		start = i
	}

	// Totals are only known once the whole file has been walked.
	for i := range instances {
		instances[i].InstanceTotal = appearances[keys[i]]
		warnings = append(warnings, instances[i].Warnings...)
	}
	return instances, warnings
}

// sameRun reports whether next extends prev's run: identical non-empty
// identity and a source gap within threshold. Contiguous events (next
// source-in exactly one frame past prev source-out) have gap zero.
func sameRun(prev, next *edl.Event, threshold int64) bool {
	id := prev.Identity()
	if id == "" || id != next.Identity() {
		return false
	}
	delta := timecode.DeltaFrames(next.SourceIn, prev.SourceOut)
	if delta < 0 {
		delta = -delta
	}
	return delta-1 <= threshold
}

func buildInstance(events []edl.Event, start, end int, appearances map[string]int) (ClipInstance, string) {
	first, last := &events[start], &events[end-1]

	ci := ClipInstance{
		Identity:   first.Identity(),
		ClipName:   first.ClipName,
		SourceFile: first.SourceFile,
		Reel:       first.Reel,
		SourceIn:   first.SourceIn,
		SourceOut:  last.SourceOut,
		RecordIn:   first.RecordIn,
		RecordOut:  last.RecordOut,
		Frames:     timecode.DeltaFrames(last.SourceOut, first.SourceIn) + 1,
	}
	for i := start; i < end; i++ {
		ci.Events = append(ci.Events, i)
	}

	key := ci.Identity
	if key == "" {
		// Unidentified events never merge, so each gets its own counter.
		key = fmt.Sprintf("event-%d", first.Number)
		ci.Warnings = append(ci.Warnings, edl.Warning{
			Kind:    edl.WarnUnidentifiedClip,
			Line:    first.Line,
			Event:   first.Number,
			Message: "event has no clip name, source file, or usable reel",
		})
	}
	appearances[key]++
	ci.InstanceNumber = appearances[key]

	for i := start; i < end; i++ {
		ev := &events[i]
		if timecode.DeltaFrames(ev.SourceOut, ev.SourceIn) < 0 {
			ci.Warnings = append(ci.Warnings, edl.Warning{
				Kind:    edl.WarnInvertedRange,
				Line:    ev.Line,
				Event:   ev.Number,
				Message: fmt.Sprintf("source out %s precedes source in %s", ev.SourceOut, ev.SourceIn),
			})
		}
		if timecode.DeltaFrames(ev.RecordOut, ev.RecordIn) < 0 {
			ci.Warnings = append(ci.Warnings, edl.Warning{
				Kind:    edl.WarnInvertedRange,
				Line:    ev.Line,
				Event:   ev.Number,
				Message: fmt.Sprintf("record out %s precedes record in %s", ev.RecordOut, ev.RecordIn),
			})
		}
		if i > start {
			if timecode.DeltaFrames(ev.SourceIn, events[i-1].SourceOut) <= 0 {
				ci.Warnings = append(ci.Warnings, edl.Warning{
					Kind:    edl.WarnInvertedRange,
					Line:    ev.Line,
					Event:   ev.Number,
					Message: fmt.Sprintf("source in %s overlaps previous event's source out %s", ev.SourceIn, events[i-1].SourceOut),
				})
			}
		}
	}

	return ci, key
}
