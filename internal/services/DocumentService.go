package services

import (
	"chronos/internal/models"
	"errors"
	"fmt"
	"github.com/gookit/validate"
)

const MaxWidgetsPerDocument = 500

var (
	ErrEmptyUser       = errors.New("user identity is required")
	ErrInvalidDocument = errors.New("invalid document")
)

type DocumentServiceInterface interface {
	Get(uid string) (*models.RemoteDocument, bool)
	Put(uid string, doc *models.RemoteDocument) error
	Users() int
	Widgets() int
	GetSnapshot() *models.Storage
	PutSnapshot(storage *models.Storage)
}

type DocumentService struct {
	store *models.DocumentStore
}

func (ds *DocumentService) Get(uid string) (*models.RemoteDocument, bool) {
	return ds.store.Get(uid)
}

// Put replaces uid's document after checking every widget record.
func (ds *DocumentService) Put(uid string, doc *models.RemoteDocument) error {
	if uid == "" {
		return ErrEmptyUser
	}
	if err := ValidateDocument(doc); err != nil {
		return err
	}
	ds.store.Set(uid, doc)
	return nil
}

func ValidateDocument(doc *models.RemoteDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidDocument)
	}
	if doc.LastUpdated < 0 {
		return fmt.Errorf("%w: negative lastUpdated", ErrInvalidDocument)
	}
	if len(doc.Timers) > MaxWidgetsPerDocument {
		return fmt.Errorf("%w: more than %d widgets", ErrInvalidDocument, MaxWidgetsPerDocument)
	}
	for i := range doc.Timers {
		snap := &doc.Timers[i]
		if !snap.Kind.Valid() {
			return fmt.Errorf("%w: timers[%d]: unknown kind %q", ErrInvalidDocument, i, snap.Kind)
		}
		v := validate.Struct(snap)
		v.StopOnError = false
		if !v.Validate() {
			return fmt.Errorf("%w: timers[%d]: %s", ErrInvalidDocument, i, v.Errors.String())
		}
	}
	return nil
}

func (ds *DocumentService) Users() int {
	return ds.store.Len()
}

func (ds *DocumentService) Widgets() int {
	return ds.store.WidgetCount()
}

func (ds *DocumentService) GetSnapshot() *models.Storage {
	return &models.Storage{
		Version:   models.StorageVersion,
		Documents: ds.store.GetData(),
	}
}

func (ds *DocumentService) PutSnapshot(storage *models.Storage) {
	if storage == nil {
		return
	}
	ds.store.PutData(storage.Documents)
}

func NewDocumentService() DocumentServiceInterface {
	return &DocumentService{store: models.NewDocumentStore()}
}
