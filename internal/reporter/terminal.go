package reporter

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/snorkem/cutlist/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	showBar  bool
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
}

// NewTerminalReporter creates a new terminal reporter. showProgress enables
// the batch progress bar; disable it when stdout is not a terminal.
func NewTerminalReporter(showProgress bool) *TerminalReporter {
	return &TerminalReporter{
		showBar: showProgress,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) ParseStarted(summary FileSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("EDL")
	r.printLabel(12, "File:", summary.InputFile)
	r.printLabel(12, "Frame rate:", summary.FrameRate)
	r.printLabel(12, "Parser:", summary.Parser)
	r.printLabel(12, "Gap frames:", fmt.Sprintf("%d", summary.GapFrames))
}

func (r *TerminalReporter) ParseComplete(summary ParseSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("PARSE")
	r.printLabel(11, "Events:", fmt.Sprintf("%d", summary.Events))
	r.printLabel(11, "Instances:", fmt.Sprintf("%d", summary.Instances))
	r.printLabel(11, "Strategy:", summary.Strategy)
	if summary.Fallback != "" {
		fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), "fell back to builtin: "+summary.Fallback)
	}
	if summary.Warnings > 0 {
		r.printLabel(11, "Warnings:", r.yellow.Sprintf("%d", summary.Warnings))
	}
}

func (r *TerminalReporter) Analytics(summary AnalyticsSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("ANALYTICS")
	r.printLabel(10, "Timeline:", fmt.Sprintf("%s (%d frames)", summary.TotalDuration, summary.TotalFrames))
	r.printLabel(10, "Longest:", fmt.Sprintf("%s (%s)", summary.Longest.Name, summary.Longest.Duration))
	r.printLabel(10, "Shortest:", fmt.Sprintf("%s (%s)", summary.Shortest.Name, summary.Shortest.Duration))

	for i, entry := range summary.Ranked {
		fmt.Printf("  %2d. %s  %s  %s\n",
			i+1, entry.Name, entry.Duration, util.FormatPercent(entry.Percent))
	}
}

func (r *TerminalReporter) ReportWritten(path, format string) {
	fmt.Printf("  %s %s report %s\n", r.bold.Sprint("Wrote"), format, r.green.Sprint(path))
}

func (r *TerminalReporter) Warning(message string) {
	_, _ = r.yellow.Printf("  WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()

	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(message string) {
	r.finishProgress()

	fmt.Println()
	fmt.Printf("%s %s\n", r.green.Add(color.Bold).Sprint("✓"), r.bold.Sprint(message))
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Processing %d files -> %s\n", info.TotalFiles, r.bold.Sprint(info.OutputDir))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}

	if !r.showBar {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions(
		info.TotalFiles,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Parsing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	r.mu.Lock()
	bar := r.progress
	r.mu.Unlock()

	if bar != nil {
		bar.Describe(context.Filename)
		_ = bar.Set(context.CurrentFile - 1)
		return
	}

	fmt.Printf("\nFile %s of %d: %s\n",
		r.bold.Sprintf("%d", context.CurrentFile),
		context.TotalFiles,
		context.Filename)
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d succeeded", summary.SuccessfulCount, summary.TotalFiles))
	fmt.Printf("  Events: %d, instances: %d\n", summary.TotalEvents, summary.TotalInstances)
	if summary.TotalWarnings > 0 {
		fmt.Printf("  Warnings: %s\n", r.yellow.Sprintf("%d", summary.TotalWarnings))
	}
}

func (r *TerminalReporter) Verbose(message string) {
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), message)
}
