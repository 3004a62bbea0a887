package controllers

import (
	"chronos/internal/models"
	"chronos/internal/providers"
	"chronos/internal/services"
	"errors"
	json "github.com/goccy/go-json"
	"io"
	"net/http"
	"strings"
	"sync"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type DocumentController struct {
	logger  providers.Logger
	service services.DocumentServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	// fillMu keeps a GET's read-then-cache from straddling a PUT's
	// store-then-invalidate.
	fillMu sync.RWMutex
}

func NewDocumentController(logger providers.Logger, service services.DocumentServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *DocumentController {
	return &DocumentController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

func cacheKey(uid string) string {
	return "doc:" + uid
}

func getUser(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(models.UserHeader))
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GetTimers returns the caller's document, 404 when it was never written.
func (dc *DocumentController) GetTimers(w http.ResponseWriter, r *http.Request) {
	uid := getUser(r)
	if uid == "" {
		http.Error(w, "Missing "+models.UserHeader, http.StatusBadRequest)
		return
	}

	if data, ok := dc.cache.Get(cacheKey(uid)); ok {
		writeJSON(w, data)
		return
	}

	gson, found, err := dc.fill(uid)
	if err != nil {
		dc.logger.Errorf(providers.TypeGet, "Unable to encode document for %s: %s", uid, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, gson)
}

// fill loads uid's document, encodes it and caches the bytes.
func (dc *DocumentController) fill(uid string) ([]byte, bool, error) {
	dc.fillMu.RLock()
	defer dc.fillMu.RUnlock()

	doc, ok := dc.service.Get(uid)
	if !ok {
		return nil, false, nil
	}
	gson, err := json.Marshal(doc)
	if err != nil {
		return nil, true, err
	}
	dc.cache.Set(cacheKey(uid), gson)
	return gson, true, nil
}

// store saves the document and drops the cached copy in one step.
func (dc *DocumentController) store(uid string, doc *models.RemoteDocument) error {
	dc.fillMu.Lock()
	defer dc.fillMu.Unlock()

	if err := dc.service.Put(uid, doc); err != nil {
		return err
	}
	dc.cache.Del(cacheKey(uid))
	return nil
}

// PutTimers replaces the caller's whole document.
func (dc *DocumentController) PutTimers(w http.ResponseWriter, r *http.Request) {
	uid := getUser(r)
	if uid == "" {
		http.Error(w, "Missing "+models.UserHeader, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		dc.metrics.IncDocumentWrites("rejected")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var doc models.RemoteDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		dc.metrics.IncDocumentWrites("rejected")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := dc.store(uid, &doc); err != nil {
		dc.metrics.IncDocumentWrites("rejected")
		dc.logger.Warnf(providers.TypePost, "Rejected document for %s: %s", uid, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dc.metrics.IncDocumentWrites("ok")
	dc.logger.Debugf(providers.TypePost, "Stored %d widgets for %s", len(doc.Timers), uid)
	w.WriteHeader(http.StatusNoContent)
}
