// Package errors provides structured error types for cutlist operations.
package errors

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents I/O errors.
	KindIO ErrorKind = iota
	// KindPath represents path-related errors.
	KindPath
	// KindTimecodeFormat represents a timecode that does not match HH:MM:SS:FF.
	KindTimecodeFormat
	// KindFrameOutOfRange represents a timecode field outside the frame-rate range.
	KindFrameOutOfRange
	// KindUnsupportedFrameRate represents a frame rate outside the supported set.
	KindUnsupportedFrameRate
	// KindNoEventsFound represents an EDL with zero recognized event lines.
	KindNoEventsFound
	// KindParse represents EDL grammar errors.
	KindParse
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindNoFilesFound represents no suitable EDL files found.
	KindNoFilesFound
	// KindOperationFailed represents general operation failures.
	KindOperationFailed
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindPath:
		return "Path error"
	case KindTimecodeFormat:
		return "Invalid timecode format"
	case KindFrameOutOfRange:
		return "Frame out of range"
	case KindUnsupportedFrameRate:
		return "Unsupported frame rate"
	case KindNoEventsFound:
		return "No events found"
	case KindParse:
		return "Parse error"
	case KindConfig:
		return "Configuration error"
	case KindNoFilesFound:
		return "No files found"
	case KindOperationFailed:
		return "Operation failed"
	default:
		return "Unknown error"
	}
}

// CoreError is the main error type for cutlist operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewPathError creates a new path-related error.
func NewPathError(message string) *CoreError {
	return &CoreError{Kind: KindPath, Message: message}
}

// NewTimecodeFormatError creates an error for unparsable timecode text.
func NewTimecodeFormatError(text string) *CoreError {
	return &CoreError{Kind: KindTimecodeFormat, Message: fmt.Sprintf("'%s' does not match HH:MM:SS:FF", text)}
}

// NewFrameOutOfRangeError creates an error for a timecode field outside its range.
func NewFrameOutOfRangeError(text string, field string, value, limit int) *CoreError {
	return &CoreError{
		Kind:    KindFrameOutOfRange,
		Message: fmt.Sprintf("'%s': %s value %d exceeds %d", text, field, value, limit),
	}
}

// NewUnsupportedFrameRateError creates an error for a frame rate outside the supported set.
func NewUnsupportedFrameRateError(fps float64) *CoreError {
	return &CoreError{
		Kind:    KindUnsupportedFrameRate,
		Message: fmt.Sprintf("%g fps is not a supported rate (23.976, 24, 25, 29.97, 30, 59.94, 60)", fps),
	}
}

// NewNoEventsFoundError creates an error for an EDL with no recognized events.
func NewNoEventsFoundError(source string) *CoreError {
	return &CoreError{Kind: KindNoEventsFound, Message: fmt.Sprintf("no edit events recognized in %s", source)}
}

// NewParseError creates a new EDL grammar error.
func NewParseError(line int, message string) *CoreError {
	return &CoreError{Kind: KindParse, Message: fmt.Sprintf("line %d: %s", line, message)}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message}
}

// NewNoFilesFoundError creates an error for when no EDL files are found.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no EDL files found in %s", dir)}
}

// NewOperationFailedError creates a new general operation failure error.
func NewOperationFailedError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindOperationFailed, Message: message, Underlying: underlying}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsNoEventsFound checks if the error is a no-events-found error.
func IsNoEventsFound(err error) bool {
	return IsKind(err, KindNoEventsFound)
}

// IsUnsupportedFrameRate checks if the error is an unsupported-frame-rate error.
func IsUnsupportedFrameRate(err error) bool {
	return IsKind(err, KindUnsupportedFrameRate)
}

// IsNoFilesFound checks if the error is a no-files-found error.
func IsNoFilesFound(err error) bool {
	return IsKind(err, KindNoFilesFound)
}
