// Package session coordinates the widget set: it applies user intents to
// the keepers, runs their tick loops, persists after every change and
// reacts to sign-in and sign-out.
//
// All transitions run under one mutex. The renderer and the confirmer are
// only ever called with that mutex released.
package session

import (
	"chronos/internal/auth"
	"chronos/internal/clock"
	"chronos/internal/keeper"
	"chronos/internal/models"
	"chronos/internal/persistence"
	"chronos/internal/providers"
	"chronos/internal/reconcile"
	"chronos/internal/registry"
	"chronos/internal/structures"
	"chronos/internal/ticker"
	"context"
	"errors"
	"fmt"
	"go.uber.org/atomic"
	"strings"
	"sync"
)

const DeletePrompt = "Are you sure you want to delete this?"

var (
	ErrNotFound = errors.New("widget not found")
	ErrNotTimer = errors.New("widget is not a timer")
)

type Renderer interface {
	Render(view keeper.View)
	Layout(views []keeper.View)
	// Completed fires once when a timer reaches zero.
	Completed(id string)
}

type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type Session struct {
	mu         sync.Mutex
	clock      clock.Clock
	registry   *registry.Registry
	manager    *persistence.Manager
	loops      *ticker.Group
	renderer   Renderer
	confirmer  Confirmer
	reconciler *reconcile.Reconciler
	logger     providers.Logger
	user       *atomic.String
	target     *atomic.String
	cancel     context.CancelFunc
}

func New(c clock.Clock, manager *persistence.Manager, renderer Renderer, confirmer Confirmer, conf *structures.Config, logger providers.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		clock:     c,
		registry:  registry.New(c),
		manager:   manager,
		loops:     ticker.NewGroup(ctx, conf.Display.FrameInterval, logger),
		renderer:  renderer,
		confirmer: confirmer,
		logger:    logger,
		user:      atomic.NewString(""),
		target:    atomic.NewString(""),
		cancel:    cancel,
	}
	s.reconciler = reconcile.New(manager, confirmer, s, logger)
	return s
}

// Init restores the widget set from the local store. When nothing usable is
// stored a single Stopwatch is created.
func (s *Session) Init() {
	snapshots, err := s.manager.LoadLocal()
	if err != nil {
		s.logger.Warnf(providers.TypeKeeper, "Local record unreadable, starting fresh: %s", err)
		snapshots = nil
	}

	s.mu.Lock()
	completed := s.hydrateLocked(snapshots)
	if s.registry.Len() == 0 {
		if _, err := s.registry.Create(models.KindStopwatch); err != nil {
			s.logger.Errorf(providers.TypeKeeper, "Unable to create default stopwatch: %s", err)
		}
		s.persistLocked()
	} else if len(completed) > 0 {
		s.persistLocked()
	}
	s.startLoopsLocked()
	views := s.registry.Views()
	s.mu.Unlock()

	s.renderer.Layout(views)
	for _, id := range completed {
		s.renderer.Completed(id)
	}
	s.logger.Infof(providers.TypeKeeper, "Restored %d widgets", len(views))
}

// hydrateLocked replaces the registry with keepers built from snapshots and
// returns the ids of timers that ran out while nothing was ticking.
func (s *Session) hydrateLocked(snapshots []models.Snapshot) []string {
	keepers := make([]keeper.TimeKeeper, 0, len(snapshots))
	var completed []string
	for _, snap := range snapshots {
		k, err := keeper.FromSnapshot(snap, s.clock)
		if err != nil {
			s.logger.Warnf(providers.TypeKeeper, "Skipping stored widget %q: %s", snap.ID, err)
			continue
		}
		if snap.IsRunning && k.State() == keeper.Completed {
			completed = append(completed, k.ID())
		}
		keepers = append(keepers, k)
	}
	s.registry.ReplaceAll(keepers)
	return completed
}

func (s *Session) startLoopsLocked() {
	for _, k := range s.registry.All() {
		if k.IsRunning() {
			s.loops.Start(k.ID(), s.frame(k.ID()))
		}
	}
}

// frame is the per-tick body of a running widget's loop.
func (s *Session) frame(id string) ticker.Frame {
	return func() bool {
		view, result, ok := s.tick(id)
		if !ok {
			return false
		}

		s.renderer.Render(view)
		if result == keeper.TickCompleted {
			s.logger.Infof(providers.TypeKeeper, "Timer %s completed", id)
			s.renderer.Completed(id)
		}
		return result == keeper.TickContinue
	}
}

// tick advances one running widget under the lock. A panic inside the keeper
// or the stores still releases the lock.
func (s *Session) tick(id string) (keeper.View, keeper.TickResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.registry.Get(id)
	if !ok || !k.IsRunning() {
		return keeper.View{}, keeper.TickContinue, false
	}
	result := k.Tick()
	view := k.View()
	if result == keeper.TickCompleted {
		s.persistLocked()
	}
	return view, result, true
}

// persistLocked writes the local record now and schedules the remote one.
func (s *Session) persistLocked() {
	_ = s.manager.SaveLocal(s.registry.Snapshots())
	if uid := s.user.Load(); uid != "" {
		s.manager.SaveRemote(uid, s.Snapshots)
	}
}

func (s *Session) Create(kind models.Kind) (keeper.View, error) {
	s.mu.Lock()
	k, err := s.registry.Create(kind)
	if err != nil {
		s.mu.Unlock()
		return keeper.View{}, err
	}
	s.persistLocked()
	views := s.registry.Views()
	view := k.View()
	s.mu.Unlock()

	s.renderer.Layout(views)
	return view, nil
}

// apply runs fn on the widget under the lock, persists when fn reports a
// change and renders the resulting view.
func (s *Session) apply(id string, fn func(k keeper.TimeKeeper) (bool, error)) error {
	s.mu.Lock()
	k, ok := s.registry.Get(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	changed, err := fn(k)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if changed {
		s.persistLocked()
	}
	view := k.View()
	s.mu.Unlock()

	s.renderer.Render(view)
	return nil
}

// Start is a no-op for a running widget, a completed timer and a timer
// without a positive duration.
func (s *Session) Start(id string) error {
	return s.apply(id, func(k keeper.TimeKeeper) (bool, error) {
		if !k.Start() {
			return false, nil
		}
		s.loops.Start(id, s.frame(id))
		return true, nil
	})
}

func (s *Session) Pause(id string) error {
	return s.apply(id, func(k keeper.TimeKeeper) (bool, error) {
		s.loops.Stop(id)
		return k.Pause(), nil
	})
}

func (s *Session) Reset(id string) error {
	return s.apply(id, func(k keeper.TimeKeeper) (bool, error) {
		s.loops.Stop(id)
		k.Reset()
		return true, nil
	})
}

// Rename sets the title; a blank title restores the default for the kind.
func (s *Session) Rename(id, title string) error {
	return s.apply(id, func(k keeper.TimeKeeper) (bool, error) {
		title = strings.TrimSpace(title)
		if title == "" {
			title = keeper.DefaultTitle(k.Kind())
		}
		if title == k.Title() {
			return false, nil
		}
		k.SetTitle(title)
		return true, nil
	})
}

// SetTimerInput stores the countdown length entered for an unconfigured
// timer. The input is not part of the stored record.
func (s *Session) SetTimerInput(id string, in keeper.DurationInput) error {
	return s.apply(id, func(k keeper.TimeKeeper) (bool, error) {
		t, ok := k.(*keeper.Timer)
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrNotTimer, id)
		}
		return false, t.SetInput(in)
	})
}

// Delete asks for confirmation and removes the widget. It reports whether
// the widget was removed.
func (s *Session) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	_, ok := s.registry.Get(id)
	s.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	accepted, err := s.confirmer.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, err
	}
	if !accepted {
		return false, nil
	}

	s.mu.Lock()
	k, ok := s.registry.Get(id)
	if !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.loops.Stop(id)
	k.Pause()
	s.registry.Remove(id)
	s.persistLocked()
	views := s.registry.Views()
	s.mu.Unlock()

	s.renderer.Layout(views)
	return true, nil
}

// ReplaceAll discards every widget and installs the given set. Malformed
// records are skipped.
func (s *Session) ReplaceAll(snapshots []models.Snapshot) {
	s.mu.Lock()
	s.loops.StopAll()
	completed := s.hydrateLocked(snapshots)
	s.persistLocked()
	s.startLoopsLocked()
	views := s.registry.Views()
	s.mu.Unlock()

	s.renderer.Layout(views)
	for _, id := range completed {
		s.renderer.Completed(id)
	}
}

// OnAuthChange follows the current identity. A new user triggers one
// reconcile against that user's cloud copy; nil stops remote writes.
// Remote writes for a user begin only once the reconcile has decided, so
// the cloud copy is never overwritten while the prompt is open.
func (s *Session) OnAuthChange(ctx context.Context, user *auth.User) reconcile.Outcome {
	if user == nil {
		s.target.Store("")
		if prev := s.user.Swap(""); prev != "" {
			s.manager.CancelRemote()
			s.logger.Infof(providers.TypeSync, "Cloud sync off for %s", prev)
		}
		return reconcile.NoRemote
	}
	if s.target.Swap(user.UID) == user.UID {
		return reconcile.NoRemote
	}
	if prev := s.user.Swap(""); prev != "" {
		s.manager.CancelRemote()
	}

	outcome := s.reconciler.Reconcile(ctx, user.UID)
	if s.target.Load() != user.UID {
		return outcome
	}
	s.user.Store(user.UID)
	if outcome == reconcile.Replaced {
		s.manager.SaveRemote(user.UID, s.Snapshots)
	}
	s.logger.Infof(providers.TypeSync, "Cloud sync on for %s", user.UID)
	return outcome
}

func (s *Session) User() string {
	return s.user.Load()
}

func (s *Session) Views() []keeper.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Views()
}

func (s *Session) Snapshots() []models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshots()
}

// Close stops every loop, flushes a pending remote write and closes the
// local store.
func (s *Session) Close() error {
	s.loops.StopAll()
	s.cancel()
	return s.manager.Close()
}
