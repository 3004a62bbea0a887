// Package persistence saves the widget set locally on every change and to
// the signed-in user's remote document after a quiet period.
package persistence

import (
	"chronos/internal/clock"
	"chronos/internal/models"
	"chronos/internal/providers"
	"chronos/internal/structures"
	"context"
	"time"
)

type Manager struct {
	local     LocalStore
	remote    RemoteStore
	debouncer *Debouncer
	clock     clock.Clock
	logger    providers.Logger
	timeout   time.Duration
}

func NewManager(local LocalStore, remote RemoteStore, c clock.Clock, conf *structures.Config, logger providers.Logger) *Manager {
	return &Manager{
		local:     local,
		remote:    remote,
		debouncer: NewDebouncer(conf.Sync.Debounce),
		clock:     c,
		logger:    logger,
		timeout:   conf.Sync.Timeout,
	}
}

// RemoteEnabled reports whether a remote store is configured at all.
func (m *Manager) RemoteEnabled() bool {
	return m.remote != nil
}

// SaveLocal overwrites the local record synchronously.
func (m *Manager) SaveLocal(snapshots []models.Snapshot) error {
	if err := m.local.Save(snapshots); err != nil {
		m.logger.Errorf(providers.TypeSync, "Error while saving local record: %s", err)
		return err
	}
	return nil
}

func (m *Manager) LoadLocal() ([]models.Snapshot, error) {
	return m.local.Load()
}

// SaveRemote schedules a write of uid's document. snapshot is called when
// the delay fires so a burst of changes is written once, with the latest
// state. Failures are logged and not retried.
func (m *Manager) SaveRemote(uid string, snapshot func() []models.Snapshot) {
	if m.remote == nil || uid == "" {
		return
	}
	m.debouncer.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		doc := &models.RemoteDocument{
			Timers:      snapshot(),
			LastUpdated: m.clock.Now().UnixMilli(),
		}
		if err := m.remote.Save(ctx, uid, doc); err != nil {
			m.logger.Errorf(providers.TypeSync, "Error saving to cloud: %s", err)
			return
		}
		m.logger.Debugf(providers.TypeSync, "Saved %d widgets to cloud for %s", len(doc.Timers), uid)
	})
}

// LoadRemote returns nil when the user has no document.
func (m *Manager) LoadRemote(ctx context.Context, uid string) (*models.RemoteDocument, error) {
	if m.remote == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.remote.Load(ctx, uid)
}

// Flush performs a pending remote write immediately.
func (m *Manager) Flush() {
	m.debouncer.Flush()
}

// CancelRemote drops a pending remote write.
func (m *Manager) CancelRemote() {
	m.debouncer.Cancel()
}

func (m *Manager) Close() error {
	m.Flush()
	return m.local.Close()
}
