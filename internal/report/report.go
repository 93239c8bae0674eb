// Package report renders consolidated cut lists and analytics to text and
// CSV files.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/snorkem/cutlist/internal/analytics"
	"github.com/snorkem/cutlist/internal/consolidate"
	"github.com/snorkem/cutlist/internal/edl"
	"github.com/snorkem/cutlist/internal/errors"
	"github.com/snorkem/cutlist/internal/timecode"
	"github.com/snorkem/cutlist/internal/util"
)

// Document is everything the writers need to render one EDL's cut list.
type Document struct {
	SourceFile string
	Rate       timecode.FrameRate
	Instances  []consolidate.ClipInstance
	Warnings   []edl.Warning
	Strategy   string
}

var csvHeader = []string{
	"Clip Name", "Source File", "Instance",
	"Source In", "Source Out", "Sequence In", "Sequence Out",
	"Duration TC", "Duration Frames", "Notes",
}

// sortedByRecord returns the instances ordered by sequence position.
// File order already follows record time in a conformant EDL; the sort is
// stable so malformed input stays deterministic.
func sortedByRecord(instances []consolidate.ClipInstance) []consolidate.ClipInstance {
	sorted := make([]consolidate.ClipInstance, len(instances))
	copy(sorted, instances)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].RecordIn.Frames() < sorted[b].RecordIn.Frames()
	})
	return sorted
}

func notes(ci *consolidate.ClipInstance) string {
	if len(ci.Warnings) == 0 {
		return ""
	}
	seen := make(map[edl.WarningKind]bool)
	var parts []string
	for _, w := range ci.Warnings {
		if !seen[w.Kind] {
			seen[w.Kind] = true
			parts = append(parts, w.Kind.String())
		}
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "; " + p
	}
	return out
}

// instanceLabel is blank for clips that yield a single instance, matching
// the decorated DisplayName.
func instanceLabel(ci *consolidate.ClipInstance) string {
	if ci.InstanceTotal > 1 {
		return strconv.Itoa(ci.InstanceNumber)
	}
	return ""
}

// WriteText renders the cut list as an aligned text table.
func WriteText(w io.Writer, doc *Document) error {
	fmt.Fprintf(w, "Cut list for %s\n", doc.SourceFile)
	fmt.Fprintf(w, "Frame rate: %s, parser: %s, clips: %d\n\n",
		doc.Rate, doc.Strategy, len(doc.Instances))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{
		"Clip Name", "Source File", "Inst",
		"Source In", "Source Out", "Seq In", "Seq Out",
		"Dur TC", "Frames", "Notes",
	})

	for _, ci := range sortedByRecord(doc.Instances) {
		t.AppendRow(table.Row{
			ci.DisplayName(), ci.SourceFile, instanceLabel(&ci),
			ci.SourceIn.String(), ci.SourceOut.String(),
			ci.RecordIn.String(), ci.RecordOut.String(),
			timecode.FromFrames(ci.Frames, doc.Rate).String(), ci.Frames,
			notes(&ci),
		})
	}
	t.Render()

	if len(doc.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d warning(s):\n", len(doc.Warnings))
		for _, warning := range doc.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
	return nil
}

// WriteCSV renders the cut list as CSV with a header row.
func WriteCSV(w io.Writer, doc *Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, ci := range sortedByRecord(doc.Instances) {
		row := []string{
			ci.DisplayName(), ci.SourceFile, instanceLabel(&ci),
			ci.SourceIn.String(), ci.SourceOut.String(),
			ci.RecordIn.String(), ci.RecordOut.String(),
			timecode.FromFrames(ci.Frames, doc.Rate).String(),
			strconv.FormatInt(ci.Frames, 10),
			notes(&ci),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAnalytics renders the derived timeline statistics.
func WriteAnalytics(w io.Writer, report *analytics.Report) error {
	fmt.Fprintf(w, "Timeline: %s (%d frames)\n",
		util.FormatDuration(report.TotalSeconds), report.TotalFrames)

	if len(report.Ranked) == 0 {
		fmt.Fprintln(w, "No instances.")
		return nil
	}

	fmt.Fprintf(w, "Longest:  %s (%s)\n",
		report.Longest.Name, util.FormatDuration(report.Longest.Seconds))
	fmt.Fprintf(w, "Shortest: %s (%s)\n\n",
		report.Shortest.Name, util.FormatDuration(report.Shortest.Seconds))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Rank", "Clip", "Duration", "Frames", "Timeline %"})
	for i, s := range report.Ranked {
		t.AppendRow(table.Row{
			i + 1, s.Name, util.FormatDuration(s.Seconds), s.Frames,
			util.FormatPercent(s.Percent),
		})
	}
	t.Render()
	return nil
}

// Save writes the rendered output to path. An existing file is an error
// unless overwrite is set.
func Save(path string, overwrite bool, render func(io.Writer) error) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.NewPathError("refusing to overwrite existing file " + path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("failed to create "+path, err)
	}

	if err := render(f); err != nil {
		f.Close()
		return errors.NewOperationFailedError("failed to write "+path, err)
	}
	return f.Close()
}
