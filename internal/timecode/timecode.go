// Package timecode provides frame-accurate timecode arithmetic for the
// standard broadcast frame rates, including drop-frame compensation for the
// 29.97/59.94 family.
package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/snorkem/cutlist/internal/errors"
)

// FrameRate describes one of the supported nominal frame rates. The zero
// value is not a valid rate; use RateForFPS or one of the predefined rates.
type FrameRate struct {
	nominal float64 // as written on the tin (23.976, 29.97, ...)
	num     int64   // exact rational numerator (24000 for 23.976)
	den     int64   // exact rational denominator (1001 for 23.976)
	base    int64   // rounded integer frame base used by timecode fields
	drop    bool
}

// Supported frame rates. Only the 29.97/59.94 family counts drop-frame.
var (
	Rate23976 = FrameRate{nominal: 23.976, num: 24000, den: 1001, base: 24}
	Rate24    = FrameRate{nominal: 24, num: 24, den: 1, base: 24}
	Rate25    = FrameRate{nominal: 25, num: 25, den: 1, base: 25}
	Rate2997  = FrameRate{nominal: 29.97, num: 30000, den: 1001, base: 30, drop: true}
	Rate30    = FrameRate{nominal: 30, num: 30, den: 1, base: 30}
	Rate5994  = FrameRate{nominal: 59.94, num: 60000, den: 1001, base: 60, drop: true}
	Rate60    = FrameRate{nominal: 60, num: 60, den: 1, base: 60}
)

// supportedRates lists every rate RateForFPS will accept.
var supportedRates = []FrameRate{
	Rate23976, Rate24, Rate25, Rate2997, Rate30, Rate5994, Rate60,
}

// fpsMatchTolerance absorbs common truncations like 23.98 and 29.976.
const fpsMatchTolerance = 0.01

// SupportedRates returns the enumerated standard rates.
func SupportedRates() []FrameRate {
	out := make([]FrameRate, len(supportedRates))
	copy(out, supportedRates)
	return out
}

// RateForFPS resolves a nominal fps value to a supported FrameRate.
// Values within a small tolerance of a supported rate are accepted, so
// 23.98 resolves to 23.976. Anything else is an UnsupportedFrameRate error.
func RateForFPS(fps float64) (FrameRate, error) {
	for _, r := range supportedRates {
		if math.Abs(fps-r.nominal) < fpsMatchTolerance {
			return r, nil
		}
	}
	return FrameRate{}, errors.NewUnsupportedFrameRateError(fps)
}

// ParseRate resolves a textual fps value (e.g. "23.976") to a FrameRate.
func ParseRate(s string) (FrameRate, error) {
	fps, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return FrameRate{}, errors.NewConfigError(fmt.Sprintf("invalid frame rate '%s'", s))
	}
	return RateForFPS(fps)
}

// FPS returns the nominal frame rate.
func (r FrameRate) FPS() float64 { return r.nominal }

// Base returns the rounded integer frame base (24 for 23.976).
func (r FrameRate) Base() int64 { return r.base }

// DropFrame reports whether the rate uses drop-frame counting.
func (r FrameRate) DropFrame() bool { return r.drop }

// Rational returns the exact rational form of the rate.
func (r FrameRate) Rational() (num, den int64) { return r.num, r.den }

// IsValid reports whether the rate is one of the supported rates.
func (r FrameRate) IsValid() bool { return r.base != 0 }

func (r FrameRate) String() string {
	if r.drop {
		return fmt.Sprintf("%g fps (drop frame)", r.nominal)
	}
	return fmt.Sprintf("%g fps", r.nominal)
}

// dropPerMinute returns how many frame numbers are skipped at the start of
// each minute not divisible by 10: two per 30 frames of base rate, so 2 at
// 29.97 and 4 at 59.94.
func (r FrameRate) dropPerMinute() int64 {
	if !r.drop {
		return 0
	}
	return 2 * (r.base / 30)
}

// Timecode is an absolute, non-negative frame count interpreted under a
// specific FrameRate.
type Timecode struct {
	frames int64
	rate   FrameRate
}

var tcPattern = regexp.MustCompile(`^(\d{1,2})[:;](\d{1,2})[:;](\d{1,2})[:;](\d{1,2})$`)

// Parse parses HH:MM:SS:FF text into a Timecode. Semicolon separators are
// accepted for drop-frame material but carry no meaning of their own.
func Parse(text string, rate FrameRate) (Timecode, error) {
	hh, mm, ss, ff, err := fields(text, rate)
	if err != nil {
		return Timecode{}, err
	}
	return Timecode{frames: fieldsToFrames(hh, mm, ss, ff, rate), rate: rate}, nil
}

// fields validates and splits timecode text into its four components.
func fields(text string, rate FrameRate) (hh, mm, ss, ff int64, err error) {
	m := tcPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, 0, 0, 0, errors.NewTimecodeFormatError(text)
	}

	// \d{1,2} cannot fail Atoi
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	f, _ := strconv.Atoi(m[4])

	switch {
	case h > 23:
		return 0, 0, 0, 0, errors.NewFrameOutOfRangeError(text, "hours", h, 23)
	case mi > 59:
		return 0, 0, 0, 0, errors.NewFrameOutOfRangeError(text, "minutes", mi, 59)
	case s > 59:
		return 0, 0, 0, 0, errors.NewFrameOutOfRangeError(text, "seconds", s, 59)
	case int64(f) >= rate.base:
		return 0, 0, 0, 0, errors.NewFrameOutOfRangeError(text, "frames", f, int(rate.base)-1)
	}

	return int64(h), int64(mi), int64(s), int64(f), nil
}

// fieldsToFrames converts timecode fields to an absolute frame count,
// subtracting the frame numbers skipped by drop-frame counting.
func fieldsToFrames(hh, mm, ss, ff int64, rate FrameRate) int64 {
	frames := (hh*3600+mm*60+ss)*rate.base + ff
	if dpm := rate.dropPerMinute(); dpm > 0 {
		totalMinutes := hh*60 + mm
		frames -= dpm * (totalMinutes - totalMinutes/10)
	}
	return frames
}

// FromFrames builds the Timecode for an absolute frame count, adding back
// the skipped frame numbers for drop-frame rates.
func FromFrames(n int64, rate FrameRate) Timecode {
	if n < 0 {
		n = 0
	}
	return Timecode{frames: n, rate: rate}
}

// ImpliedDropFrameViolation reports whether timecode text names a frame
// number that real drop-frame counting skips (frames 00..01 at 29.97,
// 00..03 at 59.94, at the start of any minute not divisible by 10). Some
// EDLs carry non-drop-frame numbering at drop-frame rates, so this is a
// validation signal rather than a parse failure.
func ImpliedDropFrameViolation(text string, rate FrameRate) bool {
	dpm := rate.dropPerMinute()
	if dpm == 0 {
		return false
	}
	_, mm, ss, ff, err := fields(text, rate)
	if err != nil {
		return false
	}
	return ss == 0 && mm%10 != 0 && ff < dpm
}

// Frames returns the absolute frame count.
func (t Timecode) Frames() int64 { return t.frames }

// Rate returns the FrameRate the count is interpreted under.
func (t Timecode) Rate() FrameRate { return t.rate }

// Fields returns the HH, MM, SS, FF display components of the timecode.
func (t Timecode) Fields() (hh, mm, ss, ff int64) {
	n := t.frames
	base := t.rate.base

	if dpm := t.rate.dropPerMinute(); dpm > 0 {
		framesPerMinute := base*60 - dpm
		framesPerTenMinutes := base*600 - dpm*9

		tenMinuteBlocks := n / framesPerTenMinutes
		rem := n % framesPerTenMinutes

		// The first minute of each ten-minute block drops nothing.
		n += dpm * 9 * tenMinuteBlocks
		if rem >= base*60 {
			n += dpm * ((rem - base*60) / framesPerMinute)
			n += dpm
		}
	}

	ff = n % base
	ss = (n / base) % 60
	mm = (n / (base * 60)) % 60
	hh = n / (base * 3600)
	return hh, mm, ss, ff
}

// String formats the timecode as HH:MM:SS:FF (HH:MM:SS;FF for drop-frame).
func (t Timecode) String() string {
	hh, mm, ss, ff := t.Fields()
	sep := ":"
	if t.rate.drop {
		sep = ";"
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", hh, mm, ss, sep, ff)
}

// DeltaFrames returns the signed frame difference a-b. Both operands must
// share the same FrameRate; a mismatch is a programming error, not a
// recoverable condition.
func DeltaFrames(a, b Timecode) int64 {
	if a.rate != b.rate {
		panic(fmt.Sprintf("timecode: frame rate mismatch (%s vs %s)", a.rate, b.rate))
	}
	return a.frames - b.frames
}

// DurationSeconds converts a frame count to seconds using the exact
// rational rate, avoiding the accumulated error of the decimal nominal.
func DurationSeconds(count int64, rate FrameRate) float64 {
	return float64(count) * float64(rate.den) / float64(rate.num)
}
