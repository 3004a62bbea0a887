package testutil

import (
	"chronos/internal/keeper"
	"chronos/internal/models"
	"chronos/internal/providers"
	"context"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level whose format contains substr.
func (m *MockLogger) Count(level, substr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Format, substr) {
			n++
		}
	}
	return n
}

// MockDocumentService implements services.DocumentServiceInterface.
type MockDocumentService struct {
	mu       sync.Mutex
	Docs     map[string]*models.RemoteDocument
	PutErr   error
	PutCalls []string
	Snapshot *models.Storage
}

func (m *MockDocumentService) Get(uid string) (*models.RemoteDocument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.Docs[uid]
	return doc, ok
}

func (m *MockDocumentService) Put(uid string, doc *models.RemoteDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls = append(m.PutCalls, uid)
	if m.PutErr != nil {
		return m.PutErr
	}
	if m.Docs == nil {
		m.Docs = make(map[string]*models.RemoteDocument)
	}
	m.Docs[uid] = doc
	return nil
}

func (m *MockDocumentService) Users() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Docs)
}

func (m *MockDocumentService) Widgets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, d := range m.Docs {
		n += len(d.Timers)
	}
	return n
}

func (m *MockDocumentService) GetSnapshot() *models.Storage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &models.Storage{Version: models.StorageVersion, Documents: m.Docs}
}

func (m *MockDocumentService) PutSnapshot(storage *models.Storage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = storage
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                  sync.Mutex
	PersistenceObserved int
	Writes              map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceObserved++
}
func (m *MockMetrics) IncDocumentWrites(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Writes == nil {
		m.Writes = make(map[string]int)
	}
	m.Writes[status]++
}

// MockLocalStore implements persistence.LocalStore in memory.
type MockLocalStore struct {
	mu        sync.Mutex
	Saved     [][]models.Snapshot
	Records   []models.Snapshot
	LoadErr   error
	SaveErr   error
	CloseCall int
}

func (m *MockLocalStore) Save(snapshots []models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := append([]models.Snapshot(nil), snapshots...)
	m.Saved = append(m.Saved, cp)
	m.Records = cp
	return nil
}

func (m *MockLocalStore) Load() ([]models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]models.Snapshot(nil), m.Records...), nil
}

func (m *MockLocalStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCall++
	return nil
}

func (m *MockLocalStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}

func (m *MockLocalStore) Last() []models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Records
}

// MockRemoteStore implements persistence.RemoteStore in memory.
type MockRemoteStore struct {
	mu      sync.Mutex
	Docs    map[string]*models.RemoteDocument
	Saves   []string
	LoadErr error
	SaveErr error
}

func (m *MockRemoteStore) Load(_ context.Context, uid string) (*models.RemoteDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Docs[uid].Clone(), nil
}

func (m *MockRemoteStore) Save(_ context.Context, uid string, doc *models.RemoteDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves = append(m.Saves, uid)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.Docs == nil {
		m.Docs = make(map[string]*models.RemoteDocument)
	}
	m.Docs[uid] = doc.Clone()
	return nil
}

func (m *MockRemoteStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saves)
}

func (m *MockRemoteStore) Doc(uid string) *models.RemoteDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Docs[uid].Clone()
}

// MockRenderer records what the core asked to draw.
type MockRenderer struct {
	mu        sync.Mutex
	Rendered  []keeper.View
	Layouts   [][]keeper.View
	Completes []string
}

func (m *MockRenderer) Render(view keeper.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rendered = append(m.Rendered, view)
}

func (m *MockRenderer) Layout(views []keeper.View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Layouts = append(m.Layouts, views)
}

func (m *MockRenderer) Completed(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completes = append(m.Completes, id)
}

func (m *MockRenderer) RenderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Rendered)
}

func (m *MockRenderer) CompletedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Completes...)
}

func (m *MockRenderer) LastLayout() []keeper.View {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Layouts) == 0 {
		return nil
	}
	return m.Layouts[len(m.Layouts)-1]
}

// MockConfirmer answers every prompt with Answer.
type MockConfirmer struct {
	mu      sync.Mutex
	Answer  bool
	Err     error
	Prompts []string
}

func (m *MockConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	return m.Answer, m.Err
}

func (m *MockConfirmer) Asked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
