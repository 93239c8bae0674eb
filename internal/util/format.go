// Package util provides utility functions for formatting and common operations.
package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EDL file extensions recognized during discovery.
var edlExtensions = []string{".edl"}

// IsEDLFile checks if the path has an EDL file extension.
func IsEDLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range edlExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FormatDuration formats seconds as HH:MM:SS.
func FormatDuration(seconds float64) string {
	if seconds < 0 || seconds != seconds { // NaN check
		return "??:??:??"
	}

	totalSecs := int64(seconds)
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	secs := totalSecs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// SanitizeFilename replaces characters that are unsafe in output filenames.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
