package keeper

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// maxDurationDays bounds a countdown so its length, and its target once added
// to any unix-ms timestamp, stays inside int64.
const maxDurationDays = 99_999

// MaxDurationMs is the longest countdown a Timer accepts.
const MaxDurationMs = maxDurationDays * msPerDay

var (
	ErrBadDurationInput = errors.New("unrecognized duration")
	ErrDurationTooLong  = errors.New("duration too long")
)

// Display is a duration broken into the pieces a widget shows.
type Display struct {
	Days int64
	// Clock is HH:MM:SS.
	Clock string
	// Fraction is ".hh" for a Stopwatch and empty for a Timer.
	Fraction string
}

func (d Display) String() string {
	s := d.Clock + d.Fraction
	if d.Days > 0 {
		s = fmt.Sprintf("%dd %s", d.Days, s)
	}
	return s
}

// StopwatchDisplay reads the duration as an instant after the unix epoch and
// takes its UTC clock fields; whole days are an overflow field in front.
func StopwatchDisplay(ms int64) Display {
	ms = max(ms, 0)
	at := time.UnixMilli(ms).UTC()
	return Display{
		Days:     ms / msPerDay,
		Clock:    fmt.Sprintf("%02d:%02d:%02d", at.Hour(), at.Minute(), at.Second()),
		Fraction: fmt.Sprintf(".%02d", at.Nanosecond()/int(time.Millisecond)/10),
	}
}

// TimerDisplay rounds up to whole seconds so the last partial second still
// shows 1 until the countdown is truly over.
func TimerDisplay(ms int64) Display {
	var total int64
	if ms > 0 {
		total = (ms + 999) / 1000
	}
	return Display{
		Days:  total / 86400,
		Clock: fmt.Sprintf("%02d:%02d:%02d", total%86400/3600, total%3600/60, total%60),
	}
}

// DurationInput is the user-entered countdown length.
type DurationInput struct {
	Days    int64 `json:"d"`
	Hours   int64 `json:"h"`
	Minutes int64 `json:"m"`
	Seconds int64 `json:"s"`
}

func (in DurationInput) Milliseconds() int64 {
	return (in.Days*86400 + in.Hours*3600 + in.Minutes*60 + in.Seconds) * 1000
}

// Validate rejects inputs whose components or total exceed MaxDurationMs.
// Milliseconds is only meaningful for a valid input.
func (in DurationInput) Validate() error {
	limit := int64(maxDurationDays) * 86400
	for _, c := range []struct{ value, unit int64 }{
		{in.Days, 86400}, {in.Hours, 3600}, {in.Minutes, 60}, {in.Seconds, 1},
	} {
		if c.value > limit/c.unit || c.value < -limit/c.unit {
			return fmt.Errorf("%w: %s", ErrDurationTooLong, in)
		}
	}
	if in.Milliseconds() > MaxDurationMs {
		return fmt.Errorf("%w: %s", ErrDurationTooLong, in)
	}
	return nil
}

// fitsAfter reports whether now+ms stays inside int64.
func fitsAfter(now, ms int64) bool {
	return ms <= 0 || now <= math.MaxInt64-ms
}

func (in DurationInput) IsZero() bool {
	return in == DurationInput{}
}

func (in DurationInput) String() string {
	return fmt.Sprintf("%dd %dh %dm %ds", in.Days, in.Hours, in.Minutes, in.Seconds)
}

// ParseDurationInput accepts "1d 2h 3m 4s" (any subset, any order, spaces
// optional) or clock style "[[D:]HH:]MM:SS".
func ParseDurationInput(s string) (DurationInput, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return DurationInput{}, ErrBadDurationInput
	}
	if strings.Contains(s, ":") {
		return parseClockInput(s)
	}

	var in DurationInput
	num := ""
	for _, r := range s {
		switch {
		case r == ' ':
			continue
		case r == '-' && num == "", r >= '0' && r <= '9':
			num += string(r)
		case r == 'd' || r == 'h' || r == 'm' || r == 's':
			v, err := strconv.ParseInt(num, 10, 64)
			if err != nil {
				return DurationInput{}, fmt.Errorf("%w: %q", ErrBadDurationInput, s)
			}
			switch r {
			case 'd':
				in.Days = v
			case 'h':
				in.Hours = v
			case 'm':
				in.Minutes = v
			case 's':
				in.Seconds = v
			}
			num = ""
		default:
			return DurationInput{}, fmt.Errorf("%w: %q", ErrBadDurationInput, s)
		}
	}
	if num != "" {
		// A bare trailing number counts as seconds.
		v, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return DurationInput{}, fmt.Errorf("%w: %q", ErrBadDurationInput, s)
		}
		in.Seconds = v
	}
	if err := in.Validate(); err != nil {
		return DurationInput{}, fmt.Errorf("%w: %w", ErrBadDurationInput, err)
	}
	return in, nil
}

func parseClockInput(s string) (DurationInput, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 4 {
		return DurationInput{}, fmt.Errorf("%w: %q", ErrBadDurationInput, s)
	}
	values := make([]int64, 4)
	offset := 4 - len(parts)
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return DurationInput{}, fmt.Errorf("%w: %q", ErrBadDurationInput, s)
		}
		values[offset+i] = v
	}
	in := DurationInput{Days: values[0], Hours: values[1], Minutes: values[2], Seconds: values[3]}
	if err := in.Validate(); err != nil {
		return DurationInput{}, fmt.Errorf("%w: %w", ErrBadDurationInput, err)
	}
	return in, nil
}
