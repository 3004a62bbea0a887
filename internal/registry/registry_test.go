package registry

import (
	"chronos/internal/clock"
	"chronos/internal/keeper"
	"chronos/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *Registry {
	return New(clock.NewManual(time.UnixMilli(0)))
}

func ids(r *Registry) []string {
	var out []string
	for _, k := range r.All() {
		out = append(out, k.ID())
	}
	return out
}

func TestRegistry_CreateKeepsOrder(t *testing.T) {
	r := newRegistry()
	a, err := r.Create(models.KindStopwatch)
	require.NoError(t, err)
	b, err := r.Create(models.KindTimer)
	require.NoError(t, err)
	c, err := r.Create(models.KindStopwatch)
	require.NoError(t, err)

	assert.Equal(t, []string{a.ID(), b.ID(), c.ID()}, ids(r))
	assert.Equal(t, 3, r.Len())

	got, ok := r.Get(b.ID())
	require.True(t, ok)
	assert.Equal(t, models.KindTimer, got.Kind())
}

func TestRegistry_CreateUnknownKind(t *testing.T) {
	r := newRegistry()
	_, err := r.Create("sundial")
	assert.ErrorIs(t, err, keeper.ErrUnknownKind)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Remove(t *testing.T) {
	r := newRegistry()
	a, _ := r.Create(models.KindStopwatch)
	b, _ := r.Create(models.KindStopwatch)
	c, _ := r.Create(models.KindStopwatch)

	assert.True(t, r.Remove(b.ID()))
	assert.False(t, r.Remove(b.ID()))
	assert.Equal(t, []string{a.ID(), c.ID()}, ids(r))

	_, ok := r.Get(c.ID())
	assert.True(t, ok)
	_, ok = r.Get(b.ID())
	assert.False(t, ok)
}

func TestRegistry_ReplaceAll(t *testing.T) {
	r := newRegistry()
	old, _ := r.Create(models.KindStopwatch)

	c := clock.NewManual(time.UnixMilli(0))
	k1, _ := keeper.FromSnapshot(models.Snapshot{ID: "a", Kind: models.KindTimer}, c)
	k2, _ := keeper.FromSnapshot(models.Snapshot{ID: "b", Kind: models.KindStopwatch}, c)
	dup, _ := keeper.FromSnapshot(models.Snapshot{ID: "a", Kind: models.KindTimer, Title: "again"}, c)

	r.ReplaceAll([]keeper.TimeKeeper{k1, k2, dup})

	assert.Equal(t, []string{"a", "b"}, ids(r))
	_, ok := r.Get(old.ID())
	assert.False(t, ok)
	got, _ := r.Get("a")
	assert.Equal(t, "again", got.Title())
}

func TestRegistry_Snapshots(t *testing.T) {
	r := newRegistry()
	a, _ := r.Create(models.KindStopwatch)
	b, _ := r.Create(models.KindTimer)

	snaps := r.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, a.ID(), snaps[0].ID)
	assert.Equal(t, models.KindTimer, snaps[1].Kind)
	assert.Equal(t, b.ID(), r.Views()[1].ID)
}
