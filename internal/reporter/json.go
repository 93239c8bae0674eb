package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events, one object per line, for machine
// consumers wrapping the CLI.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) ParseStarted(summary FileSummary) {
	r.write(map[string]interface{}{
		"type":       "parse_started",
		"input_file": summary.InputFile,
		"frame_rate": summary.FrameRate,
		"parser":     summary.Parser,
		"gap_frames": summary.GapFrames,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) ParseComplete(summary ParseSummary) {
	r.write(map[string]interface{}{
		"type":       "parse_complete",
		"input_file": summary.InputFile,
		"events":     summary.Events,
		"instances":  summary.Instances,
		"warnings":   summary.Warnings,
		"strategy":   summary.Strategy,
		"fallback":   summary.Fallback,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) Analytics(summary AnalyticsSummary) {
	ranked := make([]map[string]interface{}, len(summary.Ranked))
	for i, entry := range summary.Ranked {
		ranked[i] = map[string]interface{}{
			"name":     entry.Name,
			"duration": entry.Duration,
			"percent":  entry.Percent,
		}
	}

	r.write(map[string]interface{}{
		"type":           "analytics",
		"total_duration": summary.TotalDuration,
		"total_frames":   summary.TotalFrames,
		"longest":        summary.Longest.Name,
		"shortest":       summary.Shortest.Name,
		"ranked":         ranked,
		"timestamp":      r.timestamp(),
	})
}

func (r *JSONReporter) ReportWritten(path, format string) {
	r.write(map[string]interface{}{
		"type":      "report_written",
		"path":      path,
		"format":    format,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) OperationComplete(message string) {
	r.write(map[string]interface{}{
		"type":      "operation_complete",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]interface{}{
		"type":        "batch_started",
		"total_files": info.TotalFiles,
		"file_list":   info.FileList,
		"output_dir":  info.OutputDir,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]interface{}{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"filename":     context.Filename,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	r.write(map[string]interface{}{
		"type":             "batch_complete",
		"successful_count": summary.SuccessfulCount,
		"total_files":      summary.TotalFiles,
		"total_events":     summary.TotalEvents,
		"total_instances":  summary.TotalInstances,
		"total_warnings":   summary.TotalWarnings,
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}
