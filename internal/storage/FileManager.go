package storage

import (
	"chronos/internal/models"
	"chronos/internal/providers"
	"chronos/internal/services"
	"chronos/internal/storage/interfaces"
	"fmt"
	json "github.com/goccy/go-json"
	"os"
)

type FileManager struct {
	service    services.DocumentServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.DocumentServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	storage := f.service.GetSnapshot()

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile restores the documents saved by SaveToFile. A missing file
// is not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var storage models.Storage
	if err := json.Unmarshal(decompressedData, &storage); err != nil {
		return err
	}
	if storage.Version > models.StorageVersion {
		return fmt.Errorf("storage version %d is newer than supported %d", storage.Version, models.StorageVersion)
	}
	if storage.Documents == nil {
		f.logger.Warnf(providers.TypeApp, "Storage file %s has no documents", fileName)
		storage.Documents = make(map[string]*models.RemoteDocument)
	}

	f.service.PutSnapshot(&storage)
	f.logger.Infof(providers.TypeApp, "Restored %d documents from %s", len(storage.Documents), fileName)
	return nil
}
