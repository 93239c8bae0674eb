package logging

import (
	"os"
	"strings"
	"testing"
)

func TestSetupWritesRunContext(t *testing.T) {
	dir := t.TempDir()
	logger, err := Setup(dir, true, false, Run{Version: "0.3.0", Input: "final_v3.edl"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	logger.Section("final_v3.edl")
	logger.Debug("line %d: unrecognized", 7)
	logger.Warn("something odd")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(logger.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"cutlist 0.3.0",
		"Input: final_v3.edl",
		"---- final_v3.edl ----",
		"[DEBUG] line 7: unrecognized",
		"[WARN] something odd",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestDebugFilteredWhenNotVerbose(t *testing.T) {
	logger, err := Setup(t.TempDir(), false, false, Run{Version: "0.3.0", Input: "x.edl"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	logger.Debug("should not appear")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logger.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "should not appear") {
		t.Error("debug line written without verbose")
	}
}

func TestNoLogReturnsNil(t *testing.T) {
	logger, err := Setup(t.TempDir(), false, true, Run{})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if logger != nil {
		t.Fatal("Setup() with noLog expected nil logger")
	}

	// Every method must be safe on the nil receiver.
	logger.Info("ignored")
	logger.Debug("ignored")
	logger.Warn("ignored")
	logger.Error("ignored")
	logger.Section("ignored")
	if err := logger.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
	if logger.FilePath() != "" {
		t.Error("nil FilePath() not empty")
	}
	if logger.Writer() == nil {
		t.Error("nil Writer() returned nil")
	}
}
