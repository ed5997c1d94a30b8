package storage

import (
	"testing"

	"github.com/matst80/slask-browse/pkg/catalog"
)

func TestSaveAndLoadCatalog(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	records := []catalog.RawRecord{
		{"productTitle": "Blue Shirt", "productPrice": 10.0, "productType": "Shirts"},
		{"productTitle": "Black Cap", "productPrice": 5.0, "productType": "Caps"},
	}

	if err := d.SaveCatalog(records); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	loaded, err := d.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(loaded))
	}
	if loaded[0]["productTitle"] != "Blue Shirt" || loaded[1]["productType"] != "Caps" {
		t.Errorf("Round trip changed data: %+v", loaded)
	}

	item := catalog.Normalize(loaded[0])
	if item.Title != "Blue Shirt" || item.Price != 10 {
		t.Errorf("Snapshot record does not normalize cleanly: %+v", item)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	if _, err := d.LoadCatalog(); err == nil {
		t.Error("Expected error for missing snapshot")
	}
}
