package persistence

import (
	"chronos/internal/models"
	"chronos/internal/structures"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"go.etcd.io/bbolt"
	"time"
)

const (
	boltBucket = "chronos"
	// LocalKey is the fixed namespace the widget set is stored under.
	LocalKey = "chronos_data"
)

var ErrCorruptRecord = errors.New("local record is corrupt")

type LocalStore interface {
	Save(snapshots []models.Snapshot) error
	Load() ([]models.Snapshot, error)
	Close() error
}

// BoltStore keeps the whole widget set as one JSON value in a bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(conf *structures.Config) (LocalStore, error) {
	db, err := bbolt.Open(conf.Local.FilePath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local store %s: %w", conf.Local.FilePath, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Save overwrites the entire record.
func (b *BoltStore) Save(snapshots []models.Snapshot) error {
	if snapshots == nil {
		snapshots = []models.Snapshot{}
	}
	data, err := json.Marshal(snapshots)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(LocalKey), data)
	})
}

// Load returns an empty slice when nothing was ever saved.
func (b *BoltStore) Load() ([]models.Snapshot, error) {
	var snapshots []models.Snapshot
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(boltBucket)).Get([]byte(LocalKey))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &snapshots); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if snapshots == nil {
		snapshots = []models.Snapshot{}
	}
	return snapshots, nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}
