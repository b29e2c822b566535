package storage

import (
	"fmt"
	"os"

	"informant/internal/models"
	"informant/internal/providers"
	"informant/internal/services"
	"informant/internal/storage/interfaces"

	json "github.com/goccy/go-json"
)

// FileManager writes and restores zstd-compressed JSON snapshots of the published history.
type FileManager struct {
	service    services.HistoryServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.HistoryServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

// SaveToFile writes the snapshot to a temporary file and renames it over fileName.
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

// LoadFromFile publishes the snapshot at fileName. A missing file leaves the service untouched.
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
		return fmt.Errorf("decoding snapshot %s: %w", fileName, err)
	}
	if err := f.service.PutSnapshot(&storage); err != nil {
		return fmt.Errorf("restoring snapshot %s: %w", fileName, err)
	}
	f.logger.Infof(providers.TypeApp, "Restored %d days from %s", len(storage.Days), fileName)
	return nil
}
