package cutlist

import (
	"math"
	"path/filepath"
	"testing"
)

const sampleEDL = `TITLE: FINAL_V3
FCM: NON-DROP FRAME

001  A001C002 V     C        01:00:00:00 01:00:02:00 00:00:00:00 00:00:02:00
* FROM CLIP NAME: A001C002

002  A001C002 V     C        01:00:02:01 01:00:05:00 00:00:02:00 00:00:05:00
* FROM CLIP NAME: A001C002

003  A002C003 V     C        02:00:00:00 02:00:03:00 00:00:05:00 00:00:08:00
* FROM CLIP NAME: A002C003
`

func TestParseEndToEnd(t *testing.T) {
	engine, err := New(WithFrameRate(24))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := engine.Parse(sampleEDL)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(result.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(result.Events))
	}
	if len(result.Instances) != 2 {
		t.Fatalf("instances = %d, want 2", len(result.Instances))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}

	first := result.Instances[0]
	if first.Identity != "A001C002" {
		t.Errorf("instance 1 identity = %q", first.Identity)
	}
	if got := first.SourceIn.String(); got != "01:00:00:00" {
		t.Errorf("instance 1 source in = %s", got)
	}
	if got := first.SourceOut.String(); got != "01:00:05:00" {
		t.Errorf("instance 1 source out = %s", got)
	}

	second := result.Instances[1]
	if second.Identity != "A002C003" {
		t.Errorf("instance 2 identity = %q", second.Identity)
	}
	if got := second.SourceIn.String(); got != "02:00:00:00" {
		t.Errorf("instance 2 source in = %s", got)
	}
	if got := second.SourceOut.String(); got != "02:00:03:00" {
		t.Errorf("instance 2 source out = %s", got)
	}
}

func TestGapThresholdThroughFacade(t *testing.T) {
	edlFor := func(nextIn string) string {
		return "001 A001 V C 01:00:00:00 01:00:00:10 00:00:00:00 00:00:00:10\n" +
			"FROM CLIP NAME: shot\n" +
			"002 A001 V C " + nextIn + " 01:00:01:00 00:00:00:10 00:00:01:00\n" +
			"FROM CLIP NAME: shot\n"
	}

	tests := []struct {
		name   string
		nextIn string
		want   int
	}{
		{"gap zero merges", "01:00:00:11", 1},
		{"gap one merges", "01:00:00:12", 1},
		{"gap two splits", "01:00:00:13", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(WithFrameRate(24))
			if err != nil {
				t.Fatal(err)
			}
			result, err := engine.Parse(edlFor(tt.nextIn))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(result.Instances) != tt.want {
				t.Errorf("instances = %d, want %d", len(result.Instances), tt.want)
			}
		})
	}
}

func TestSkipBlackEdits(t *testing.T) {
	text := `001 A001 V C 01:00:00:00 01:00:01:00 00:00:00:00 00:00:01:00
FROM CLIP NAME: shot
002 BL   V C 00:00:00:00 00:00:02:00 00:00:01:00 00:00:03:00
003 A002 V C 02:00:00:00 02:00:01:00 00:00:03:00 00:00:04:00
FROM CLIP NAME: other
`

	// Skipping black filler is the default.
	engine, err := New(WithFrameRate(24))
	if err != nil {
		t.Fatal(err)
	}
	result, err := engine.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.SkippedBlack != 1 {
		t.Errorf("SkippedBlack = %d, want 1", result.SkippedBlack)
	}
	if len(result.Events) != 2 || len(result.Instances) != 2 {
		t.Errorf("events/instances = %d/%d, want 2/2", len(result.Events), len(result.Instances))
	}
	// Kept, BL becomes an unidentified singleton.
	engine, err = New(WithFrameRate(24), WithKeepBlackEdits())
	if err != nil {
		t.Fatal(err)
	}
	result, err = engine.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Instances) != 3 {
		t.Errorf("instances without skip = %d, want 3", len(result.Instances))
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Kind != WarnUnidentifiedClip {
		t.Errorf("warnings = %v, want one unidentified-clip warning", result.Warnings)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(WithFrameRate(48)); err == nil {
		t.Error("New(WithFrameRate(48)) expected error")
	}
	if _, err := New(WithGapThreshold(-1)); err == nil {
		t.Error("New(WithGapThreshold(-1)) expected error")
	}
	if _, err := New(WithParser("fancy")); err == nil {
		t.Error("New(WithParser(\"fancy\")) expected error")
	}
}

func TestParseNoEventsIsFatal(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatal(err)
	}
	_, err = engine.Parse("TITLE: EMPTY\n")
	if !IsNoEventsFound(err) {
		t.Errorf("Parse() error = %v, want no-events kind", err)
	}
}

func TestParseFileFixture(t *testing.T) {
	engine, err := New(WithFrameRate(24))
	if err != nil {
		t.Fatal(err)
	}

	result, err := engine.ParseFile(filepath.Join("testdata", "final_v3.edl"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}

	if result.Strategy != "cmx3600" {
		t.Errorf("strategy = %q, want cmx3600", result.Strategy)
	}
	// The BL filler event is skipped by default.
	if result.SkippedBlack != 1 {
		t.Errorf("SkippedBlack = %d, want 1", result.SkippedBlack)
	}
	if len(result.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(result.Events))
	}
	if len(result.Instances) != 2 {
		t.Fatalf("instances = %d, want 2", len(result.Instances))
	}

	first := result.Instances[0]
	if first.Identity != "A001C002_230114_R1AB.mov" {
		t.Errorf("instance 1 identity = %q", first.Identity)
	}
	if len(first.Events) != 2 {
		t.Errorf("instance 1 spans %d events, want 2", len(first.Events))
	}

	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}
}

func TestVideoOnly(t *testing.T) {
	text := `001 A001 V  C 01:00:00:00 01:00:01:00 00:00:00:00 00:00:01:00
002 A001 A2 C 01:00:00:00 01:00:01:00 00:00:00:00 00:00:01:00
003 A002 B  C 02:00:00:00 02:00:01:00 00:00:01:00 00:00:02:00
`

	engine, err := New(WithFrameRate(24), WithVideoOnly())
	if err != nil {
		t.Fatal(err)
	}
	result, err := engine.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.SkippedAudio != 1 {
		t.Errorf("SkippedAudio = %d, want 1", result.SkippedAudio)
	}
	// The audio/video "B" event carries video and stays.
	if len(result.Events) != 2 {
		t.Errorf("events = %d, want 2", len(result.Events))
	}

	engine, err = New(WithFrameRate(24))
	if err != nil {
		t.Fatal(err)
	}
	result, err = engine.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Events) != 3 || result.SkippedAudio != 0 {
		t.Errorf("events/skipped = %d/%d, want 3/0", len(result.Events), result.SkippedAudio)
	}
}

func TestAnalyzeThroughFacade(t *testing.T) {
	engine, err := New(WithFrameRate(24))
	if err != nil {
		t.Fatal(err)
	}
	result, err := engine.Parse(sampleEDL)
	if err != nil {
		t.Fatal(err)
	}

	report := engine.Analyze(result)
	if report.TotalFrames != 8*24 {
		t.Errorf("TotalFrames = %d, want %d", report.TotalFrames, 8*24)
	}

	sum := 0.0
	for _, s := range report.Ranked {
		sum += s.Percent
	}
	if math.Abs(sum-100.0) > 1e-6 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
	if report.Longest.Name != "A001C002" {
		t.Errorf("Longest = %s, want A001C002", report.Longest.Name)
	}
}
