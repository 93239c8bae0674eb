package timecode

import (
	"math"
	"testing"

	"github.com/snorkem/cutlist/internal/errors"
)

func TestRateForFPS(t *testing.T) {
	tests := []struct {
		fps      float64
		wantBase int64
		wantDrop bool
		wantErr  bool
	}{
		{23.976, 24, false, false},
		{23.98, 24, false, false}, // common truncation
		{24, 24, false, false},
		{25, 25, false, false},
		{29.97, 30, true, false},
		{30, 30, false, false},
		{59.94, 60, true, false},
		{60, 60, false, false},
		{48, 0, false, true},
		{23.5, 0, false, true},
		{0, 0, false, true},
	}

	for _, tt := range tests {
		rate, err := RateForFPS(tt.fps)
		if (err != nil) != tt.wantErr {
			t.Errorf("RateForFPS(%g) error = %v, wantErr %v", tt.fps, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.IsUnsupportedFrameRate(err) {
				t.Errorf("RateForFPS(%g) error kind = %v, want UnsupportedFrameRate", tt.fps, err)
			}
			continue
		}
		if rate.Base() != tt.wantBase {
			t.Errorf("RateForFPS(%g).Base() = %d, want %d", tt.fps, rate.Base(), tt.wantBase)
		}
		if rate.DropFrame() != tt.wantDrop {
			t.Errorf("RateForFPS(%g).DropFrame() = %v, want %v", tt.fps, rate.DropFrame(), tt.wantDrop)
		}
	}
}

func TestParseRate(t *testing.T) {
	rate, err := ParseRate(" 29.97 ")
	if err != nil {
		t.Fatalf("ParseRate() error = %v", err)
	}
	if !rate.DropFrame() {
		t.Error("ParseRate(29.97).DropFrame() = false, want true")
	}

	if _, err := ParseRate("fast"); err == nil {
		t.Error("ParseRate(\"fast\") expected error, got nil")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		rate    FrameRate
		want    int64
		wantErr errors.ErrorKind
		isErr   bool
	}{
		{name: "zero", text: "00:00:00:00", rate: Rate24, want: 0},
		{name: "one hour at 24", text: "01:00:00:00", rate: Rate24, want: 86400},
		{name: "one frame", text: "00:00:00:01", rate: Rate24, want: 1},
		{name: "one second at 25", text: "00:00:01:00", rate: Rate25, want: 25},
		{name: "semicolon separators", text: "00;01;00;02", rate: Rate2997, want: 1800},
		{name: "single digit fields", text: "1:2:3:4", rate: Rate24, want: 3600*24 + 2*60*24 + 3*24 + 4},
		{name: "surrounding space", text: " 01:00:00:00 ", rate: Rate24, want: 86400},
		{name: "drop frame minute", text: "00:01:00:02", rate: Rate2997, want: 1800},
		{name: "drop frame ten minute", text: "00:10:00:00", rate: Rate2997, want: 17982},
		{name: "not a timecode", text: "banana", rate: Rate24, isErr: true, wantErr: errors.KindTimecodeFormat},
		{name: "three fields", text: "01:00:00", rate: Rate24, isErr: true, wantErr: errors.KindTimecodeFormat},
		{name: "frames at base", text: "00:00:00:24", rate: Rate24, isErr: true, wantErr: errors.KindFrameOutOfRange},
		{name: "frames over base", text: "00:00:00:30", rate: Rate24, isErr: true, wantErr: errors.KindFrameOutOfRange},
		{name: "hours over range", text: "24:00:00:00", rate: Rate24, isErr: true, wantErr: errors.KindFrameOutOfRange},
		{name: "minutes over range", text: "00:60:00:00", rate: Rate24, isErr: true, wantErr: errors.KindFrameOutOfRange},
		{name: "seconds over range", text: "00:00:60:00", rate: Rate24, isErr: true, wantErr: errors.KindFrameOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := Parse(tt.text, tt.rate)
			if (err != nil) != tt.isErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.text, err, tt.isErr)
			}
			if tt.isErr {
				if !errors.IsKind(err, tt.wantErr) {
					t.Errorf("Parse(%q) error = %v, want kind %v", tt.text, err, tt.wantErr)
				}
				return
			}
			if tc.Frames() != tt.want {
				t.Errorf("Parse(%q).Frames() = %d, want %d", tt.text, tc.Frames(), tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	rates := []FrameRate{Rate23976, Rate24, Rate25, Rate2997, Rate30, Rate5994, Rate60}

	for _, rate := range rates {
		t.Run(rate.String(), func(t *testing.T) {
			// Cover minute and ten-minute rollovers for a few hours of material.
			for n := int64(0); n < rate.Base()*3600*3; n += 7 {
				tc := FromFrames(n, rate)
				back, err := Parse(tc.String(), rate)
				if err != nil {
					t.Fatalf("Parse(FromFrames(%d).String()) error = %v", n, err)
				}
				if back.Frames() != n {
					t.Fatalf("round trip %d -> %s -> %d", n, tc, back.Frames())
				}
			}
		})
	}
}

func TestDropFrameSkipLaw(t *testing.T) {
	// FromFrames must never emit a skipped frame number: at the start of any
	// minute not divisible by 10, the frame field must jump past the drops.
	for _, rate := range []FrameRate{Rate2997, Rate5994} {
		t.Run(rate.String(), func(t *testing.T) {
			dpm := 2 * (rate.Base() / 30)
			for n := int64(0); n < rate.Base()*3600; n++ {
				_, mm, ss, ff := FromFrames(n, rate).Fields()
				if ss == 0 && mm%10 != 0 && ff < dpm {
					t.Fatalf("frame %d rendered as skipped number %02d:%02d at minute %d", n, ss, ff, mm)
				}
			}
		})
	}
}

func TestDropFrameKnownValues(t *testing.T) {
	tests := []struct {
		frames int64
		rate   FrameRate
		want   string
	}{
		{0, Rate2997, "00:00:00;00"},
		{1799, Rate2997, "00:00:59;29"},
		{1800, Rate2997, "00:01:00;02"},
		{3598, Rate2997, "00:02:00;02"},
		{17982, Rate2997, "00:10:00;00"},
		{107892, Rate2997, "01:00:00;00"}, // 30*3600 - 108 dropped
		{3600, Rate5994, "00:01:00;04"},
		{215784, Rate5994, "01:00:00;00"},
	}

	for _, tt := range tests {
		got := FromFrames(tt.frames, tt.rate).String()
		if got != tt.want {
			t.Errorf("FromFrames(%d, %s) = %s, want %s", tt.frames, tt.rate, got, tt.want)
		}
	}
}

func TestImpliedDropFrameViolation(t *testing.T) {
	tests := []struct {
		text string
		rate FrameRate
		want bool
	}{
		{"00:01:00:00", Rate2997, true},
		{"00:01:00:01", Rate2997, true},
		{"00:01:00:02", Rate2997, false},
		{"00:10:00:00", Rate2997, false},
		{"00:01:01:00", Rate2997, false},
		{"00:01:00:03", Rate5994, true},
		{"00:01:00:04", Rate5994, false},
		{"00:01:00:00", Rate24, false}, // non-drop rates never violate
		{"garbage", Rate2997, false},
	}

	for _, tt := range tests {
		if got := ImpliedDropFrameViolation(tt.text, tt.rate); got != tt.want {
			t.Errorf("ImpliedDropFrameViolation(%q, %s) = %v, want %v", tt.text, tt.rate, got, tt.want)
		}
	}
}

func TestDeltaFrames(t *testing.T) {
	a := FromFrames(100, Rate24)
	b := FromFrames(40, Rate24)

	if got := DeltaFrames(a, b); got != 60 {
		t.Errorf("DeltaFrames(a, b) = %d, want 60", got)
	}
	if got := DeltaFrames(b, a); got != -60 {
		t.Errorf("DeltaFrames(b, a) = %d, want -60", got)
	}
}

func TestDeltaFramesRateMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("DeltaFrames() with mismatched rates should panic")
		}
	}()
	DeltaFrames(FromFrames(0, Rate24), FromFrames(0, Rate25))
}

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		count int64
		rate  FrameRate
		want  float64
	}{
		{24, Rate24, 1.0},
		{48, Rate24, 2.0},
		{25, Rate25, 1.0},
		{24000, Rate23976, 1001.0},
		{30000, Rate2997, 1001.0},
		{0, Rate24, 0},
	}

	for _, tt := range tests {
		got := DurationSeconds(tt.count, tt.rate)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("DurationSeconds(%d, %s) = %v, want %v", tt.count, tt.rate, got, tt.want)
		}
	}
}

func TestTimecodeString(t *testing.T) {
	tests := []struct {
		frames int64
		rate   FrameRate
		want   string
	}{
		{0, Rate24, "00:00:00:00"},
		{86400, Rate24, "01:00:00:00"},
		{86400 + 2*60*24 + 3*24 + 4, Rate24, "01:02:03:04"},
		{90000, Rate25, "01:00:00:00"},
	}

	for _, tt := range tests {
		got := FromFrames(tt.frames, tt.rate).String()
		if got != tt.want {
			t.Errorf("FromFrames(%d, %s).String() = %s, want %s", tt.frames, tt.rate, got, tt.want)
		}
	}
}
