package errors

import (
	"errors"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindIO, "I/O error"},
		{KindPath, "Path error"},
		{KindTimecodeFormat, "Invalid timecode format"},
		{KindFrameOutOfRange, "Frame out of range"},
		{KindUnsupportedFrameRate, "Unsupported frame rate"},
		{KindNoEventsFound, "No events found"},
		{KindParse, "Parse error"},
		{KindConfig, "Configuration error"},
		{KindNoFilesFound, "No files found"},
		{KindOperationFailed, "Operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCoreErrorError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &CoreError{
		Kind:       KindIO,
		Message:    "test message",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "I/O error: test message: underlying error"
	if got != expected {
		t.Errorf("CoreError.Error() = %v, want %v", got, expected)
	}

	err2 := &CoreError{
		Kind:    KindConfig,
		Message: "config issue",
	}

	got2 := err2.Error()
	expected2 := "Configuration error: config issue"
	if got2 != expected2 {
		t.Errorf("CoreError.Error() = %v, want %v", got2, expected2)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	underlying := errors.New("root cause")
	err := NewIOError("wrapper", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should find the underlying error")
	}
}

func TestIsKind(t *testing.T) {
	err := NewNoEventsFoundError("empty.edl")

	if !IsKind(err, KindNoEventsFound) {
		t.Error("IsKind(KindNoEventsFound) = false, want true")
	}
	if IsKind(err, KindIO) {
		t.Error("IsKind(KindIO) = true, want false")
	}
	if IsKind(errors.New("plain"), KindNoEventsFound) {
		t.Error("IsKind() on a plain error = true, want false")
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsNoEventsFound(NewNoEventsFoundError("x.edl")) {
		t.Error("IsNoEventsFound() = false, want true")
	}
	if !IsUnsupportedFrameRate(NewUnsupportedFrameRateError(48)) {
		t.Error("IsUnsupportedFrameRate() = false, want true")
	}
	if !IsNoFilesFound(NewNoFilesFoundError("/tmp")) {
		t.Error("IsNoFilesFound() = false, want true")
	}
	if IsNoEventsFound(NewIOError("io", nil)) {
		t.Error("IsNoEventsFound() on an I/O error = true, want false")
	}
}

func TestIsMatchesByKind(t *testing.T) {
	a := NewTimecodeFormatError("bogus")
	b := NewTimecodeFormatError("other")

	if !errors.Is(a, b) {
		t.Error("errors with the same kind should match via errors.Is")
	}
	if errors.Is(a, NewParseError(1, "x")) {
		t.Error("errors with different kinds should not match")
	}
}
