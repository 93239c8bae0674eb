package reporter

// FileSummary describes the EDL about to be parsed.
type FileSummary struct {
	InputFile string
	FrameRate string
	Parser    string
	GapFrames int64
}

// ParseSummary describes a completed parse of one EDL.
type ParseSummary struct {
	InputFile string
	Events    int
	Instances int
	Warnings  int
	Strategy  string
	Fallback  string // why the rich grammar was abandoned, empty otherwise
}

// RankEntry is one row of the duration ranking.
type RankEntry struct {
	Name     string
	Duration string
	Percent  float64
}

// AnalyticsSummary describes derived timeline statistics.
type AnalyticsSummary struct {
	TotalDuration string
	TotalFrames   int64
	Longest       RankEntry
	Shortest      RankEntry
	Ranked        []RankEntry
}

// ReporterError carries structured error information for display.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchStartInfo describes a batch run over a directory of EDLs.
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
	OutputDir  string
}

// FileProgressContext tracks position within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
	Filename    string
}

// BatchSummary describes a completed batch run.
type BatchSummary struct {
	SuccessfulCount int
	TotalFiles      int
	TotalEvents     int
	TotalInstances  int
	TotalWarnings   int
}
