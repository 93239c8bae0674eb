package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/snorkem/cutlist"
	"github.com/snorkem/cutlist/internal/config"
	"github.com/snorkem/cutlist/internal/logging"
	"github.com/snorkem/cutlist/internal/report"
	"github.com/snorkem/cutlist/internal/reporter"
	"github.com/snorkem/cutlist/internal/util"
)

var (
	flagOutput    string
	flagFPS       float64
	flagGap       int64
	flagParser    string
	flagFormat    string
	flagAnalytics bool
	flagKeepBlack bool
	flagVideoOnly bool
	flagOverwrite bool
)

var reportCmd = &cobra.Command{
	Use:   "report <input>",
	Short: "Parse an EDL file or directory and write cut list reports",
	Long: `Report parses one EDL file, or every EDL file in a directory, and
writes a consolidated cut list next to it. Warnings are listed in the
output but never affect the exit status; a parse with zero usable events
is fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory (defaults to the input's directory)")
	reportCmd.Flags().Float64Var(&flagFPS, "fps", config.DefaultFPS, "frame rate (23.976, 24, 25, 29.97, 30, 59.94, 60)")
	reportCmd.Flags().Int64Var(&flagGap, "gap-threshold", config.DefaultGapThresholdFrames, "max source gap in frames that still merges same-clip edits")
	reportCmd.Flags().StringVar(&flagParser, "parser", config.DefaultParser, "parsing strategy (auto, cmx3600, builtin)")
	reportCmd.Flags().StringVar(&flagFormat, "format", "txt", "report format (txt, csv, all)")
	reportCmd.Flags().BoolVar(&flagAnalytics, "analytics", false, "also write timeline analytics")
	reportCmd.Flags().BoolVar(&flagKeepBlack, "keep-black", false, "keep black/blank filler events (skipped by default)")
	reportCmd.Flags().BoolVar(&flagVideoOnly, "video-only", false, "ignore audio-only events")
	reportCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "overwrite existing report files")
}

func runReport(cmd *cobra.Command, args []string) error {
	switch flagFormat {
	case "txt", "csv", "all":
	default:
		return fmt.Errorf("invalid format '%s', valid options: txt, csv, all", flagFormat)
	}

	inputPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	inputInfo, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input path does not exist: %s", inputPath)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	outputDir := flagOutput
	if outputDir == "" {
		if inputInfo.IsDir() {
			outputDir = inputPath
		} else {
			outputDir = filepath.Dir(inputPath)
		}
	}
	if outputDir, err = filepath.Abs(outputDir); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logger, err := logging.Setup(filepath.Join(outputDir, "logs"), cfg.Verbose, flagNoLog,
		logging.Run{Version: appVersion, Input: inputPath})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
	}

	rep := newReporter()

	engine, err := cutlist.NewWithConfig(cfg, cutlist.WithLogger(logger))
	if err != nil {
		return err
	}

	if inputInfo.IsDir() {
		return runBatch(engine, rep, logger, inputPath, outputDir)
	}

	if err := processFile(engine, rep, logger, inputPath, outputDir); err != nil {
		return err
	}
	rep.OperationComplete("Cut list complete")
	return nil
}

// loadConfig builds the run configuration: config file first, then explicit
// flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("fps") {
		cfg.FPS = flagFPS
	}
	if cmd.Flags().Changed("gap-threshold") {
		cfg.GapThresholdFrames = flagGap
	}
	if cmd.Flags().Changed("parser") {
		cfg.Parser = flagParser
	}
	if flagKeepBlack {
		cfg.SkipBlackEdits = false
	}
	if flagVideoOnly {
		cfg.VideoOnly = true
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newReporter picks the output channel: NDJSON when asked for, a terminal
// reporter otherwise, with the progress bar only on a real terminal.
func newReporter() reporter.Reporter {
	if flagJSON {
		return reporter.NewJSONReporter()
	}
	return reporter.NewTerminalReporter(isatty.IsTerminal(os.Stdout.Fd()))
}

func runBatch(engine *cutlist.Engine, rep reporter.Reporter, logger *logging.Logger, inputDir, outputDir string) error {
	files, err := cutlist.FindEDLs(inputDir)
	if err != nil {
		return err
	}
	logger.Info("Discovered %d EDL files in %s", len(files), inputDir)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	rep.BatchStarted(reporter.BatchStartInfo{
		TotalFiles: len(files),
		FileList:   names,
		OutputDir:  outputDir,
	})

	summary := reporter.BatchSummary{TotalFiles: len(files)}
	for i, file := range files {
		rep.FileProgress(reporter.FileProgressContext{
			CurrentFile: i + 1,
			TotalFiles:  len(files),
			Filename:    filepath.Base(file),
		})

		result, err := processFileResult(engine, rep, logger, file, outputDir)
		if err != nil {
			logger.Error("%s: %v", filepath.Base(file), err)
			continue
		}
		summary.SuccessfulCount++
		summary.TotalEvents += len(result.Events)
		summary.TotalInstances += len(result.Instances)
		summary.TotalWarnings += len(result.Warnings)
	}

	rep.BatchComplete(summary)
	if summary.SuccessfulCount == 0 {
		return fmt.Errorf("no EDL files parsed successfully")
	}
	return nil
}

func processFile(engine *cutlist.Engine, rep reporter.Reporter, logger *logging.Logger, path, outputDir string) error {
	_, err := processFileResult(engine, rep, logger, path, outputDir)
	return err
}

func processFileResult(engine *cutlist.Engine, rep reporter.Reporter, logger *logging.Logger, path, outputDir string) (*cutlist.ParseResult, error) {
	name := filepath.Base(path)

	cfg := engine.Config()
	rep.ParseStarted(reporter.FileSummary{
		InputFile: name,
		FrameRate: fmt.Sprintf("%g fps", cfg.FPS),
		Parser:    cfg.Parser,
		GapFrames: cfg.GapThresholdFrames,
	})
	logger.Section(name)
	logger.Info("Parsing %s", path)

	result, err := engine.ParseFile(path)
	if err != nil {
		rep.Error(reporter.ReporterError{
			Title:      "parse failed",
			Message:    err.Error(),
			Context:    path,
			Suggestion: suggestionFor(err),
		})
		return nil, err
	}

	rep.ParseComplete(reporter.ParseSummary{
		InputFile: name,
		Events:    len(result.Events),
		Instances: len(result.Instances),
		Warnings:  len(result.Warnings),
		Strategy:  result.Strategy,
		Fallback:  result.Fallback,
	})
	if result.Fallback != "" {
		logger.Warn("rich grammar abandoned: %s", result.Fallback)
	}
	if result.SkippedBlack > 0 {
		rep.Verbose(fmt.Sprintf("skipped %d black edit(s)", result.SkippedBlack))
	}
	if result.SkippedAudio > 0 {
		rep.Verbose(fmt.Sprintf("skipped %d audio-only event(s)", result.SkippedAudio))
	}
	for _, warning := range result.Warnings {
		rep.Warning(warning.String())
		logger.Warn("%s", warning)
	}

	if err := writeReports(engine, rep, result, name, outputDir); err != nil {
		return nil, err
	}
	return result, nil
}

func writeReports(engine *cutlist.Engine, rep reporter.Reporter, result *cutlist.ParseResult, name, outputDir string) error {
	doc := &report.Document{
		SourceFile: name,
		Rate:       result.Rate,
		Instances:  result.Instances,
		Warnings:   result.Warnings,
		Strategy:   result.Strategy,
	}

	base := util.SanitizeFilename(strings.TrimSuffix(name, filepath.Ext(name)))

	if flagFormat == "txt" || flagFormat == "all" {
		path := filepath.Join(outputDir, base+"_cutlist.txt")
		if err := report.Save(path, flagOverwrite, func(w io.Writer) error {
			return report.WriteText(w, doc)
		}); err != nil {
			return err
		}
		rep.ReportWritten(path, "txt")
	}

	if flagFormat == "csv" || flagFormat == "all" {
		path := filepath.Join(outputDir, base+"_cutlist.csv")
		if err := report.Save(path, flagOverwrite, func(w io.Writer) error {
			return report.WriteCSV(w, doc)
		}); err != nil {
			return err
		}
		rep.ReportWritten(path, "csv")
	}

	if flagAnalytics {
		stats := engine.Analyze(result)
		rep.Analytics(analyticsSummary(stats))

		path := filepath.Join(outputDir, base+"_analytics.txt")
		if err := report.Save(path, flagOverwrite, func(w io.Writer) error {
			return report.WriteAnalytics(w, stats)
		}); err != nil {
			return err
		}
		rep.ReportWritten(path, "analytics")
	}

	return nil
}

func analyticsSummary(stats *cutlist.AnalyticsReport) reporter.AnalyticsSummary {
	entry := func(s cutlist.InstanceStat) reporter.RankEntry {
		return reporter.RankEntry{
			Name:     s.Name,
			Duration: util.FormatDuration(s.Seconds),
			Percent:  s.Percent,
		}
	}

	summary := reporter.AnalyticsSummary{
		TotalDuration: util.FormatDuration(stats.TotalSeconds),
		TotalFrames:   stats.TotalFrames,
		Longest:       entry(stats.Longest),
		Shortest:      entry(stats.Shortest),
	}
	for _, s := range stats.Ranked {
		summary.Ranked = append(summary.Ranked, entry(s))
	}
	return summary
}

// suggestionFor maps common failures to a next step for the user.
func suggestionFor(err error) string {
	switch {
	case cutlist.IsNoEventsFound(err):
		return "check that the file is a CMX3600-style EDL, or try --parser builtin"
	case cutlist.IsUnsupportedFrameRate(err):
		return "use one of: 23.976, 24, 25, 29.97, 30, 59.94, 60"
	default:
		return ""
	}
}
