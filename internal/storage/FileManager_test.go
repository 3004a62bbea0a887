package storage

import (
	"chronos/internal/models"
	"chronos/internal/services"
	"chronos/internal/testutil"
	"errors"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *models.RemoteDocument {
	return &models.RemoteDocument{
		Timers: []models.Snapshot{
			{ID: "sw-1", Kind: models.KindStopwatch, Title: "Run", ElapsedTime: 61_000},
			{ID: "tm-1", Kind: models.KindTimer, Title: "Tea", IsRunning: true, TargetTime: 1_700_000_300_000, RemainingTime: 300_000, OriginalDuration: 300_000},
		},
		LastUpdated: 1_700_000_000_000,
	}
}

func TestFileManager_SaveToFile_AtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chronos.dat")
	svc := services.NewDocumentService()
	require.NoError(t, svc.Put("alice", sampleDoc()))
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var storage models.Storage
	require.NoError(t, json.Unmarshal(raw, &storage))
	assert.Equal(t, models.StorageVersion, storage.Version)
	assert.Equal(t, sampleDoc(), storage.Documents["alice"])
}

func TestFileManager_RoundTripWithZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chronos.dat")
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	src := services.NewDocumentService()
	require.NoError(t, src.Put("alice", sampleDoc()))
	require.NoError(t, src.Put("bob", &models.RemoteDocument{}))
	require.NoError(t, NewFileManager(comp, src, &testutil.MockLogger{}).SaveToFile(path))

	dst := services.NewDocumentService()
	require.NoError(t, NewFileManager(comp, dst, &testutil.MockLogger{}).LoadFromFile(path))

	assert.Equal(t, 2, dst.Users())
	got, ok := dst.Get("alice")
	require.True(t, ok)
	assert.Equal(t, sampleDoc(), got)
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	svc := &testutil.MockDocumentService{}
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	assert.NoError(t, fm.LoadFromFile("/nonexistent/path/file.dat"))
	assert.Nil(t, svc.Snapshot)
}

func TestFileManager_LoadFromFile_LegacyTypeField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.dat")
	raw := `{"version":1,"documents":{"alice":{"timers":[{"id":"a","type":"timer","remainingTime":1000,"originalDuration":1000}],"lastUpdated":5}}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	svc := services.NewDocumentService()
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	require.NoError(t, fm.LoadFromFile(path))

	got, ok := svc.Get("alice")
	require.True(t, ok)
	assert.Equal(t, models.KindTimer, got.Timers[0].Kind)
}

func TestFileManager_LoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("decompress error", func(t *testing.T) {
		path := filepath.Join(dir, "bad.dat")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		comp := &testutil.MockCompressor{DecompressFn: func([]byte) ([]byte, error) {
			return nil, errors.New("corrupt")
		}}
		fm := NewFileManager(comp, &testutil.MockDocumentService{}, &testutil.MockLogger{})
		assert.Error(t, fm.LoadFromFile(path))
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.dat")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		fm := NewFileManager(&testutil.MockCompressor{}, &testutil.MockDocumentService{}, &testutil.MockLogger{})
		assert.Error(t, fm.LoadFromFile(path))
	})

	t.Run("newer version", func(t *testing.T) {
		path := filepath.Join(dir, "future.dat")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":99,"documents":{}}`), 0644))
		svc := &testutil.MockDocumentService{}
		fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
		assert.Error(t, fm.LoadFromFile(path))
		assert.Nil(t, svc.Snapshot)
	})
}

func TestFileManager_SaveToFile_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chronos.dat")
	comp := &testutil.MockCompressor{CompressFn: func([]byte) ([]byte, error) {
		return nil, errors.New("no space")
	}}
	fm := NewFileManager(comp, services.NewDocumentService(), &testutil.MockLogger{})

	assert.Error(t, fm.SaveToFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_SaveToFile_BadDirectory(t *testing.T) {
	fm := NewFileManager(&testutil.MockCompressor{}, services.NewDocumentService(), &testutil.MockLogger{})
	assert.Error(t, fm.SaveToFile("/nonexistent/dir/chronos.dat"))
}
