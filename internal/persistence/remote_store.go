package persistence

import (
	"bytes"
	"chronos/internal/models"
	"chronos/internal/structures"
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const timersPath = "/timers"

type RemoteStore interface {
	// Load returns nil without error when the user never saved anything.
	Load(ctx context.Context, uid string) (*models.RemoteDocument, error)
	Save(ctx context.Context, uid string, doc *models.RemoteDocument) error
}

// HTTPRemoteStore talks to a chronos-cloud instance.
type HTTPRemoteStore struct {
	endpoint string
	client   *http.Client
}

// NewHTTPRemoteStore returns nil when no remote URL is configured, which
// leaves the client local-only.
func NewHTTPRemoteStore(conf *structures.Config) (RemoteStore, error) {
	if conf.Sync.RemoteURL == "" {
		return nil, nil
	}
	base, err := url.Parse(strings.TrimRight(conf.Sync.RemoteURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid remote url: %w", err)
	}
	return &HTTPRemoteStore{
		endpoint: base.String() + timersPath,
		client:   &http.Client{Timeout: conf.Sync.Timeout},
	}, nil
}

func (h *HTTPRemoteStore) Load(ctx context.Context, uid string) (*models.RemoteDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(models.UserHeader, uid)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	default:
		return nil, fmt.Errorf("load remote document: unexpected status %d", resp.StatusCode)
	}

	var doc models.RemoteDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode remote document: %w", err)
	}
	return &doc, nil
}

func (h *HTTPRemoteStore) Save(ctx context.Context, uid string, doc *models.RemoteDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set(models.UserHeader, uid)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save remote document: unexpected status %d", resp.StatusCode)
	}
	return nil
}
