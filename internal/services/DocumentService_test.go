package services

import (
	"chronos/internal/models"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() *models.RemoteDocument {
	return &models.RemoteDocument{
		Timers: []models.Snapshot{
			{ID: "a", Kind: models.KindStopwatch, Title: "Stopwatch", ElapsedTime: 1500},
			{ID: "b", Kind: models.KindTimer, Title: "Timer", RemainingTime: 5000, OriginalDuration: 5000},
		},
		LastUpdated: 1_700_000_000_000,
	}
}

func TestDocumentService_PutGet(t *testing.T) {
	ds := NewDocumentService()

	_, ok := ds.Get("alice")
	assert.False(t, ok)

	require.NoError(t, ds.Put("alice", validDoc()))
	got, ok := ds.Get("alice")
	require.True(t, ok)
	assert.Equal(t, validDoc(), got)
	assert.Equal(t, 1, ds.Users())
	assert.Equal(t, 2, ds.Widgets())
}

func TestDocumentService_PutReplacesWholeDocument(t *testing.T) {
	ds := NewDocumentService()
	require.NoError(t, ds.Put("alice", validDoc()))

	replacement := &models.RemoteDocument{Timers: []models.Snapshot{{ID: "z", Kind: models.KindTimer}}}
	require.NoError(t, ds.Put("alice", replacement))

	got, _ := ds.Get("alice")
	require.Len(t, got.Timers, 1)
	assert.Equal(t, "z", got.Timers[0].ID)
}

func TestDocumentService_GetReturnsCopy(t *testing.T) {
	ds := NewDocumentService()
	require.NoError(t, ds.Put("alice", validDoc()))

	got, _ := ds.Get("alice")
	got.Timers[0].Title = "changed"

	again, _ := ds.Get("alice")
	assert.Equal(t, "Stopwatch", again.Timers[0].Title)
}

func TestDocumentService_PutRejects(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		doc  func() *models.RemoteDocument
		err  error
	}{
		{"empty user", "", validDoc, ErrEmptyUser},
		{"nil document", "u", func() *models.RemoteDocument { return nil }, ErrInvalidDocument},
		{"unknown kind", "u", func() *models.RemoteDocument {
			d := validDoc()
			d.Timers[0].Kind = "alarm"
			return d
		}, ErrInvalidDocument},
		{"missing id", "u", func() *models.RemoteDocument {
			d := validDoc()
			d.Timers[1].ID = ""
			return d
		}, ErrInvalidDocument},
		{"negative remaining", "u", func() *models.RemoteDocument {
			d := validDoc()
			d.Timers[1].RemainingTime = -1
			return d
		}, ErrInvalidDocument},
		{"negative lastUpdated", "u", func() *models.RemoteDocument {
			d := validDoc()
			d.LastUpdated = -5
			return d
		}, ErrInvalidDocument},
		{"too many widgets", "u", func() *models.RemoteDocument {
			d := &models.RemoteDocument{}
			for i := 0; i <= MaxWidgetsPerDocument; i++ {
				d.Timers = append(d.Timers, models.Snapshot{ID: fmt.Sprint(i), Kind: models.KindStopwatch})
			}
			return d
		}, ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := NewDocumentService()
			err := ds.Put(tt.uid, tt.doc())
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 0, ds.Users())
		})
	}
}

func TestDocumentService_EmptyDocumentIsValid(t *testing.T) {
	ds := NewDocumentService()
	require.NoError(t, ds.Put("alice", &models.RemoteDocument{}))

	got, ok := ds.Get("alice")
	require.True(t, ok)
	assert.Empty(t, got.Timers)
}

func TestDocumentService_SnapshotRoundTrip(t *testing.T) {
	ds := NewDocumentService()
	require.NoError(t, ds.Put("alice", validDoc()))
	require.NoError(t, ds.Put("bob", &models.RemoteDocument{}))

	snapshot := ds.GetSnapshot()
	assert.Equal(t, models.StorageVersion, snapshot.Version)
	assert.Len(t, snapshot.Documents, 2)

	restored := NewDocumentService()
	restored.PutSnapshot(snapshot)
	assert.Equal(t, 2, restored.Users())
	got, _ := restored.Get("alice")
	assert.Equal(t, validDoc(), got)

	restored.PutSnapshot(nil)
	assert.Equal(t, 2, restored.Users())
}

func TestDocumentService_ConcurrentPuts(t *testing.T) {
	ds := NewDocumentService()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = ds.Put(fmt.Sprintf("user-%d", i%10), validDoc())
			ds.Get("user-0")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, ds.Users())
	assert.Equal(t, 20, ds.Widgets())
}
