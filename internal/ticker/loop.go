// Package ticker runs frame-paced callbacks for running widgets.
package ticker

import (
	"chronos/internal/providers"
	"context"
	"go.uber.org/atomic"
	"sync"
	"time"
)

// Frame is called once per interval. Returning false ends the loop.
type Frame func() bool

// Loop is one cancellable repeating task.
type Loop struct {
	cancel  context.CancelFunc
	done    chan struct{}
	stopped atomic.Bool
}

func Start(parent context.Context, interval time.Duration, frame Frame, logger providers.Logger) *Loop {
	ctx, cancel := context.WithCancel(parent)
	l := &Loop{cancel: cancel, done: make(chan struct{})}
	go l.run(ctx, interval, frame, logger)
	return l
}

func (l *Loop) run(ctx context.Context, interval time.Duration, frame Frame, logger providers.Logger) {
	defer close(l.done)
	defer l.stopped.Store(true)
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Errorf(providers.TypeKeeper, "Tick loop panicked: %v", r)
		}
	}()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// A Stop issued while this frame was waiting wins.
			if ctx.Err() != nil || !frame() {
				return
			}
		}
	}
}

// Stop cancels the loop. It does not wait for a frame in progress.
func (l *Loop) Stop() {
	l.stopped.Store(true)
	l.cancel()
}

func (l *Loop) Stopped() bool {
	return l.stopped.Load()
}

func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Group keeps at most one loop per widget id.
type Group struct {
	mu       sync.Mutex
	ctx      context.Context
	interval time.Duration
	logger   providers.Logger
	loops    map[string]*Loop
}

func NewGroup(ctx context.Context, interval time.Duration, logger providers.Logger) *Group {
	return &Group{
		ctx:      ctx,
		interval: interval,
		logger:   logger,
		loops:    make(map[string]*Loop),
	}
}

// Start replaces any loop already running for id.
func (g *Group) Start(id string, frame Frame) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if old, ok := g.loops[id]; ok {
		old.Stop()
	}
	l := Start(g.ctx, g.interval, frame, g.logger)
	g.loops[id] = l
	go func() {
		<-l.Done()
		g.forget(id, l)
	}()
}

func (g *Group) forget(id string, l *Loop) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loops[id] == l {
		delete(g.loops, id)
	}
}

func (g *Group) Stop(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if l, ok := g.loops[id]; ok {
		l.Stop()
		delete(g.loops, id)
	}
}

func (g *Group) StopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, l := range g.loops {
		l.Stop()
		delete(g.loops, id)
	}
}

func (g *Group) Active(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.loops[id]
	return ok && !l.Stopped()
}

func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.loops)
}
