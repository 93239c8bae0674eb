package main

import (
	"github.com/spf13/cobra"
)

const appVersion = "0.3.0"

var (
	flagConfig  string
	flagVerbose bool
	flagJSON    bool
	flagNoLog   bool
)

var rootCmd = &cobra.Command{
	Use:     "cutlist",
	Short:   "Parse EDL files into consolidated cut lists",
	Version: appVersion,
	Long: `Cutlist reads CMX3600-style edit decision lists, merges adjacent
edits of the same source clip into gap-free instances, and writes cut list
reports and timeline analytics.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit NDJSON events instead of terminal output")
	rootCmd.PersistentFlags().BoolVar(&flagNoLog, "no-log", false, "disable log file creation")

	rootCmd.AddCommand(reportCmd)
}
