// Package storage persists catalog snapshots on disk so the service
// can come back up without its upstream source.
package storage

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path"

	"github.com/matst80/slask-browse/pkg/catalog"
)

const catalogFile = "catalog.jz"

type DiskStorage struct {
	BasePath string
}

func NewDiskStorage(basePath string) *DiskStorage {
	return &DiskStorage{BasePath: basePath}
}

func (d *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(d.BasePath, name)
	return fileName, fileName + ".tmp"
}

// SaveCatalog writes the raw records as gzipped JSON, one record per
// document, to a tmp file renamed into place on success.
func (d *DiskStorage) SaveCatalog(records []catalog.RawRecord) error {
	fileName, tmpFileName := d.GetFileName(catalogFile)
	if err := os.MkdirAll(d.BasePath, 0755); err != nil {
		return err
	}

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	enc := json.NewEncoder(zipWriter)
	for _, record := range records {
		if err = enc.Encode(record); err != nil {
			break
		}
	}
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}

	err = os.Rename(tmpFileName, fileName)
	if err != nil {
		log.Printf("Error renaming snapshot file: %v", err)
	}
	return err
}

// LoadCatalog reads a snapshot written by SaveCatalog.
func (d *DiskStorage) LoadCatalog() ([]catalog.RawRecord, error) {
	fileName, _ := d.GetFileName(catalogFile)
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer zipReader.Close()

	decoder := json.NewDecoder(zipReader)
	records := make([]catalog.RawRecord, 0)
	for {
		record := catalog.RawRecord{}
		if err = decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}
	if errors.Is(err, io.EOF) {
		return records, nil
	}
	return records, err
}
