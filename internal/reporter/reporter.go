package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	ParseStarted(summary FileSummary)
	ParseComplete(summary ParseSummary)
	Analytics(summary AnalyticsSummary)
	ReportWritten(path, format string)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(message string)
	BatchStarted(info BatchStartInfo)
	FileProgress(context FileProgressContext)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) ParseStarted(FileSummary)         {}
func (NullReporter) ParseComplete(ParseSummary)       {}
func (NullReporter) Analytics(AnalyticsSummary)       {}
func (NullReporter) ReportWritten(string, string)     {}
func (NullReporter) Warning(string)                   {}
func (NullReporter) Error(ReporterError)              {}
func (NullReporter) OperationComplete(string)         {}
func (NullReporter) BatchStarted(BatchStartInfo)      {}
func (NullReporter) FileProgress(FileProgressContext) {}
func (NullReporter) BatchComplete(BatchSummary)       {}
func (NullReporter) Verbose(string)                   {}
