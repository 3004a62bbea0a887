// Package registry holds the live widgets in insertion order.
package registry

import (
	"chronos/internal/clock"
	"chronos/internal/keeper"
	"chronos/internal/models"
)

type Registry struct {
	clock   clock.Clock
	keepers []keeper.TimeKeeper
	index   map[string]int
}

func New(c clock.Clock) *Registry {
	return &Registry{clock: c, index: make(map[string]int)}
}

// Create appends a fresh widget of the given kind.
func (r *Registry) Create(kind models.Kind) (keeper.TimeKeeper, error) {
	k, err := keeper.New(kind, r.clock)
	if err != nil {
		return nil, err
	}
	r.add(k)
	return k, nil
}

func (r *Registry) add(k keeper.TimeKeeper) {
	if i, ok := r.index[k.ID()]; ok {
		r.keepers[i] = k
		return
	}
	r.index[k.ID()] = len(r.keepers)
	r.keepers = append(r.keepers, k)
}

func (r *Registry) Get(id string) (keeper.TimeKeeper, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.keepers[i], true
}

// Remove detaches the widget and reports whether it was present.
func (r *Registry) Remove(id string) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.keepers = append(r.keepers[:i], r.keepers[i+1:]...)
	r.reindex()
	return true
}

// ReplaceAll drops every current widget and installs the given ones.
// A later duplicate id replaces the earlier one in place.
func (r *Registry) ReplaceAll(keepers []keeper.TimeKeeper) {
	r.keepers = make([]keeper.TimeKeeper, 0, len(keepers))
	r.index = make(map[string]int, len(keepers))
	for _, k := range keepers {
		r.add(k)
	}
}

func (r *Registry) reindex() {
	r.index = make(map[string]int, len(r.keepers))
	for i, k := range r.keepers {
		r.index[k.ID()] = i
	}
}

func (r *Registry) All() []keeper.TimeKeeper {
	out := make([]keeper.TimeKeeper, len(r.keepers))
	copy(out, r.keepers)
	return out
}

func (r *Registry) Len() int {
	return len(r.keepers)
}

func (r *Registry) Snapshots() []models.Snapshot {
	out := make([]models.Snapshot, 0, len(r.keepers))
	for _, k := range r.keepers {
		out = append(out, k.Snapshot())
	}
	return out
}

func (r *Registry) Views() []keeper.View {
	out := make([]keeper.View, 0, len(r.keepers))
	for _, k := range r.keepers {
		out = append(out, k.View())
	}
	return out
}
