package keeper

import (
	"chronos/internal/clock"
	"chronos/internal/models"
)

// Timer counts down from a configured duration. While running targetTime
// is authoritative; while paused remainingTime is. Reaching zero leaves the
// timer Completed until Reset.
type Timer struct {
	base
	input            DurationInput
	originalDuration int64
	targetTime       int64
	remainingTime    int64
}

func NewTimer(c clock.Clock) *Timer {
	return &Timer{base: newBase(models.KindTimer, c)}
}

func (t *Timer) Kind() models.Kind { return models.KindTimer }

// Configured reports whether the countdown length has been fixed by a start.
func (t *Timer) Configured() bool {
	return t.originalDuration > 0
}

func (t *Timer) State() State {
	switch {
	case t.running:
		return Running
	case t.Configured() && t.remainingTime == 0:
		return Completed
	default:
		return Paused
	}
}

func (t *Timer) Input() DurationInput { return t.input }

// SetInput stores the days/hours/minutes/seconds used at the first start.
func (t *Timer) SetInput(in DurationInput) error {
	if t.running {
		return ErrInputLocked
	}
	if t.Configured() {
		return ErrAlreadyConfigured
	}
	if err := in.Validate(); err != nil {
		return err
	}
	t.input = in
	return nil
}

// Start begins or resumes the countdown. An unconfigured timer takes its
// length from the input; a non-positive or oversized length is declined
// without any state change. A Completed timer stays completed until Reset.
func (t *Timer) Start() bool {
	if t.running || t.State() == Completed {
		return false
	}
	now := t.now()
	if !t.Configured() {
		if t.input.Validate() != nil {
			return false
		}
		total := t.input.Milliseconds()
		if total <= 0 || !fitsAfter(now, total) {
			return false
		}
		t.originalDuration = total
		t.remainingTime = total
	}
	if !fitsAfter(now, t.remainingTime) {
		return false
	}
	t.targetTime = now + t.remainingTime
	t.running = true
	return true
}

func (t *Timer) Pause() bool {
	if !t.running {
		return false
	}
	t.remainingTime = max(t.targetTime-t.now(), 0)
	t.running = false
	return true
}

func (t *Timer) Reset() {
	t.Pause()
	t.remainingTime = 0
	t.targetTime = 0
	t.originalDuration = 0
	t.input = DurationInput{}
}

func (t *Timer) Tick() TickResult {
	if !t.running {
		return TickStop
	}
	if t.targetTime-t.now() <= 0 {
		t.complete()
		return TickCompleted
	}
	return TickContinue
}

func (t *Timer) complete() {
	t.running = false
	t.remainingTime = 0
}

// Remaining is the time left in milliseconds, never negative.
func (t *Timer) Remaining() int64 {
	if t.running {
		return max(t.targetTime-t.now(), 0)
	}
	return t.remainingTime
}

func (t *Timer) OriginalDuration() int64 { return t.originalDuration }

func (t *Timer) View() View {
	return View{
		ID:          t.id,
		Kind:        models.KindTimer,
		Title:       t.title,
		State:       t.State(),
		Display:     TimerDisplay(t.Remaining()),
		Input:       t.input,
		InputLocked: t.running,
		Configured:  t.Configured(),
	}
}

func (t *Timer) Snapshot() models.Snapshot {
	return models.Snapshot{
		ID:               t.id,
		Kind:             models.KindTimer,
		IsRunning:        t.running,
		Title:            t.title,
		TargetTime:       t.targetTime,
		RemainingTime:    t.Remaining(),
		OriginalDuration: t.originalDuration,
	}
}
