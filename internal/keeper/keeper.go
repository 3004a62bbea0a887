// Package keeper implements the widget state machines: a count-up
// Stopwatch and a count-down Timer.
//
// Durations are never accumulated tick by tick. While running, a widget
// holds a fixed reference instant (startTime for a Stopwatch, targetTime
// for a Timer) and every read recomputes the duration from that instant
// and the clock, so slow frames, suspended processes and restarts cannot
// introduce drift.
//
// Keepers are not safe for concurrent use; the caller serializes access.
package keeper

import (
	"chronos/internal/clock"
	"chronos/internal/models"
	"errors"
	"fmt"
	"github.com/google/uuid"
)

var (
	ErrUnknownKind       = errors.New("unknown widget kind")
	ErrInputLocked       = errors.New("duration input is locked while running")
	ErrAlreadyConfigured = errors.New("timer duration is set until reset")
	ErrEmptyID           = errors.New("widget id is empty")
)

type State int

const (
	Paused State = iota
	Running
	Completed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "paused"
	}
}

// TickResult tells the tick loop what to do after a frame.
type TickResult int

const (
	TickContinue TickResult = iota
	TickStop
	TickCompleted
)

type TimeKeeper interface {
	ID() string
	Kind() models.Kind
	Title() string
	SetTitle(title string)
	IsRunning() bool
	State() State

	// Start moves Paused to Running and reports whether anything changed.
	Start() bool
	// Pause moves Running to Paused and reports whether anything changed.
	Pause() bool
	// Reset pauses and zeroes every duration field.
	Reset()
	Tick() TickResult

	View() View
	Snapshot() models.Snapshot
}

// View is everything a renderer needs to draw one widget.
type View struct {
	ID          string
	Kind        models.Kind
	Title       string
	State       State
	Display     Display
	Input       DurationInput
	InputLocked bool
	// Configured is false for a Timer still waiting for its duration.
	Configured bool
}

type base struct {
	id      string
	title   string
	running bool
	clock   clock.Clock
}

func newBase(kind models.Kind, c clock.Clock) base {
	return base{
		id:    uuid.NewString(),
		title: DefaultTitle(kind),
		clock: c,
	}
}

func (b *base) ID() string            { return b.id }
func (b *base) Title() string         { return b.title }
func (b *base) SetTitle(title string) { b.title = title }
func (b *base) IsRunning() bool       { return b.running }

func (b *base) now() int64 {
	return b.clock.Now().UnixMilli()
}

func DefaultTitle(kind models.Kind) string {
	if kind == models.KindTimer {
		return "Timer"
	}
	return "Stopwatch"
}

// New creates a widget of the given kind in its initial paused state.
func New(kind models.Kind, c clock.Clock) (TimeKeeper, error) {
	switch kind {
	case models.KindStopwatch:
		return NewStopwatch(c), nil
	case models.KindTimer:
		return NewTimer(c), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// FromSnapshot rehydrates a widget. A running Stopwatch keeps its startTime
// so the time spent while no process was ticking is counted. A running
// Timer whose targetTime has already passed comes back Completed.
func FromSnapshot(snap models.Snapshot, c clock.Clock) (TimeKeeper, error) {
	if snap.ID == "" {
		return nil, ErrEmptyID
	}
	b := base{id: snap.ID, title: snap.Title, running: snap.IsRunning, clock: c}
	if b.title == "" {
		b.title = DefaultTitle(snap.Kind)
	}
	switch snap.Kind {
	case models.KindStopwatch:
		return &Stopwatch{
			base:        b,
			startTime:   snap.StartTime,
			elapsedTime: max(snap.ElapsedTime, 0),
		}, nil
	case models.KindTimer:
		t := &Timer{
			base:             b,
			originalDuration: max(snap.OriginalDuration, 0),
			targetTime:       snap.TargetTime,
			remainingTime:    max(snap.RemainingTime, 0),
		}
		if t.remainingTime > t.originalDuration {
			t.remainingTime = t.originalDuration
		}
		if t.running && t.targetTime-t.now() <= 0 {
			t.complete()
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, snap.Kind)
	}
}
