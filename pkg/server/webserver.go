// Package server exposes the browse pipeline as a stateless HTTP API:
// every request carries the full filter selection and is computed from
// scratch against the current catalog.
package server

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/loader"
	"github.com/matst80/slask-browse/pkg/sorting"
	"github.com/matst80/slask-browse/pkg/storage"
	"github.com/matst80/slask-browse/pkg/types"
)

var (
	noBrowses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskbrowse_browses_total",
		Help: "The total number of processed browse requests",
	})
	noCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskbrowse_cache_hits_total",
		Help: "The total number of browse responses served from cache",
	})
	noReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskbrowse_reloads_total",
		Help: "The total number of catalog reloads",
	})
	totalItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskbrowse_catalog_items",
		Help: "The number of products in the current catalog",
	})
)

type WebServer struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog

	Sorter   *sorting.Sorter
	Loader   loader.Loader
	Storage  *storage.DiskStorage
	Cache    *Cache
	Tracking types.Tracking

	// OnCatalogChange runs after a successful reload, e.g. to publish
	// a catalog_updated message.
	OnCatalogChange func(itemCount int)
}

func NewWebServer(l loader.Loader) *WebServer {
	return &WebServer{
		catalog: catalog.New(nil),
		Sorter:  sorting.Default(),
		Loader:  l,
	}
}

func (ws *WebServer) Catalog() *catalog.Catalog {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.catalog
}

func (ws *WebServer) SetCatalog(c *catalog.Catalog) {
	ws.mu.Lock()
	ws.catalog = c
	ws.mu.Unlock()
	totalItems.Set(float64(c.Len()))
	if ws.Cache != nil {
		ws.Cache.Flush()
	}
}

// Reload pulls a fresh record set through the Loader, swaps the
// catalog and snapshots the raw records to disk when storage is
// configured. On failure the previous catalog stays in place.
func (ws *WebServer) Reload(ctx context.Context) (int, error) {
	records, err := ws.Loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	ws.SetCatalog(catalog.FromRaw(records))
	noReloads.Inc()
	if ws.Storage != nil {
		if err := ws.Storage.SaveCatalog(records); err != nil {
			return len(records), err
		}
	}
	if ws.OnCatalogChange != nil {
		ws.OnCatalogChange(len(records))
	}
	return len(records), nil
}
