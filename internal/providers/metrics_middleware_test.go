package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    {}
func (m *mockMetrics) IncCacheMisses()                                  {}
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *mockMetrics) IncDocumentWrites(_ string)                       {}

type middlewareTestLogger struct {
	lines    int
	lastType TypeEnum
}

func (m *middlewareTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *middlewareTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *middlewareTestLogger) Debugf(t TypeEnum, _ string, _ ...interface{}) {
	m.lines++
	m.lastType = t
}
func (m *middlewareTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *middlewareTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *middlewareTestLogger) Close()                                        {}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	logger := &middlewareTestLogger{}
	mw := MetricsMiddleware(metrics, logger, handler)

	req := httptest.NewRequest(http.MethodGet, "/timers", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, 1, logger.lines)
	assert.Equal(t, "GET /timers", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, &middlewareTestLogger{}, handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestMetricsMiddleware_WritesLabelledByMethod(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &middlewareTestLogger{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPut, "/timers", nil)
	MetricsMiddleware(metrics, logger, handler).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "PUT /timers", metrics.requestEndpoint)
	assert.Equal(t, http.StatusNoContent, metrics.requestStatus)
	assert.Equal(t, TypePost, logger.lastType)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
