package keeper

import (
	"chronos/internal/clock"
	"chronos/internal/models"
)

// Stopwatch counts up without bound. While running startTime is
// authoritative; while paused elapsedTime is.
type Stopwatch struct {
	base
	startTime   int64
	elapsedTime int64
}

func NewStopwatch(c clock.Clock) *Stopwatch {
	return &Stopwatch{base: newBase(models.KindStopwatch, c)}
}

func (s *Stopwatch) Kind() models.Kind { return models.KindStopwatch }

func (s *Stopwatch) State() State {
	if s.running {
		return Running
	}
	return Paused
}

func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}
	// now - startTime must equal what has already elapsed.
	s.startTime = s.now() - s.elapsedTime
	s.running = true
	return true
}

func (s *Stopwatch) Pause() bool {
	if !s.running {
		return false
	}
	s.elapsedTime = max(s.now()-s.startTime, 0)
	s.running = false
	return true
}

func (s *Stopwatch) Reset() {
	s.Pause()
	s.elapsedTime = 0
	s.startTime = 0
}

func (s *Stopwatch) Tick() TickResult {
	if !s.running {
		return TickStop
	}
	return TickContinue
}

// Elapsed is the current duration in milliseconds.
func (s *Stopwatch) Elapsed() int64 {
	if s.running {
		return max(s.now()-s.startTime, 0)
	}
	return s.elapsedTime
}

func (s *Stopwatch) View() View {
	return View{
		ID:         s.id,
		Kind:       models.KindStopwatch,
		Title:      s.title,
		State:      s.State(),
		Display:    StopwatchDisplay(s.Elapsed()),
		Configured: true,
	}
}

func (s *Stopwatch) Snapshot() models.Snapshot {
	return models.Snapshot{
		ID:          s.id,
		Kind:        models.KindStopwatch,
		IsRunning:   s.running,
		StartTime:   s.startTime,
		ElapsedTime: s.Elapsed(),
		Title:       s.title,
	}
}
