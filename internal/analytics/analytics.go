// Package analytics derives timeline statistics from consolidated clip
// instances: per-instance durations, share of the edited timeline, and
// duration rankings.
package analytics

import (
	"sort"

	"github.com/snorkem/cutlist/internal/consolidate"
	"github.com/snorkem/cutlist/internal/timecode"
)

// InstanceStat is one instance's contribution to the edited timeline.
// Durations are record spans: the time the instance occupies in the
// sequence, not the source footage span.
type InstanceStat struct {
	Index   int // position in the original instance list
	Name    string
	Frames  int64
	Seconds float64
	Percent float64
}

// Report is the derived summary for one instance list. Recomputed on
// demand; never mutates its inputs.
type Report struct {
	TotalFrames  int64
	TotalSeconds float64

	// Ranked is sorted by percent descending; ties keep file order.
	Ranked []InstanceStat

	Longest  InstanceStat
	Shortest InstanceStat
}

// Analyze computes the report for a consolidated instance list. With an
// empty list the report is all zeros.
func Analyze(instances []consolidate.ClipInstance, rate timecode.FrameRate) *Report {
	report := &Report{}
	if len(instances) == 0 {
		return report
	}

	stats := make([]InstanceStat, len(instances))
	for i := range instances {
		frames := instances[i].RecordFrames()
		stats[i] = InstanceStat{
			Index:   i,
			Name:    instances[i].DisplayName(),
			Frames:  frames,
			Seconds: timecode.DurationSeconds(frames, rate),
		}
		report.TotalFrames += frames
	}
	report.TotalSeconds = timecode.DurationSeconds(report.TotalFrames, rate)

	for i := range stats {
		if report.TotalSeconds > 0 {
			stats[i].Percent = stats[i].Seconds / report.TotalSeconds * 100
		}
	}

	// First-encountered wins ties in both directions.
	report.Longest, report.Shortest = stats[0], stats[0]
	for _, s := range stats[1:] {
		if s.Frames > report.Longest.Frames {
			report.Longest = s
		}
		if s.Frames < report.Shortest.Frames {
			report.Shortest = s
		}
	}

	report.Ranked = stats
	sort.SliceStable(report.Ranked, func(a, b int) bool {
		return report.Ranked[a].Percent > report.Ranked[b].Percent
	})

	return report
}
