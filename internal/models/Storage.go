package models

// StorageVersion is the current version of the cloud storage file format.
const StorageVersion = 1

// Storage is the on-disk envelope of the cloud service.
type Storage struct {
	Version   int                        `json:"version"`
	Documents map[string]*RemoteDocument `json:"documents"`
}
