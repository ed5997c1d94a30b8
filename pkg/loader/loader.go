// Package loader supplies raw product records to the browse core. The
// source format is an external contract: a JSON array of product-shaped
// objects with optional productTitle/productPrice/productType/
// productDescription fields.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/storage"
)

type Loader interface {
	Load(ctx context.Context) ([]catalog.RawRecord, error)
}

// HTTPLoader fetches the record array from a URL.
type HTTPLoader struct {
	Url    string
	Client *http.Client
}

func (l *HTTPLoader) Load(ctx context.Context) ([]catalog.RawRecord, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, l.Url)
	}

	var records []catalog.RawRecord
	if err = json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// SnapshotLoader reads the last catalog snapshot from disk storage.
type SnapshotLoader struct {
	Storage *storage.DiskStorage
}

func (l *SnapshotLoader) Load(ctx context.Context) ([]catalog.RawRecord, error) {
	return l.Storage.LoadCatalog()
}

// StaticLoader serves a fixed record set, mainly for tests and demos.
type StaticLoader struct {
	Records []catalog.RawRecord
	Err     error
}

func (l *StaticLoader) Load(ctx context.Context) ([]catalog.RawRecord, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Records, nil
}
