package persistence

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending action. Triggering again before the
// delay has passed replaces the action and restarts the delay.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	gen     uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.pending = fn
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.gen++
	d.mu.Unlock()
	fn()
}

// Flush runs the pending action now, on the caller's goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.stopLocked()
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Cancel drops the pending action.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.gen++
}
