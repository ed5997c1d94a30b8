package catalog

import (
	"slices"

	"github.com/matst80/slask-browse/pkg/types"
)

// Catalog is the ordered, immutable product list built once per load.
// Its order is the "recommended" order and the tie-break for all sorts.
type Catalog struct {
	items []types.Product
}

func New(items []types.Product) *Catalog {
	return &Catalog{items: items}
}

// FromRaw normalizes every record in load order. A nil sequence yields
// an empty catalog.
func FromRaw(records []RawRecord) *Catalog {
	items := make([]types.Product, 0, len(records))
	for _, raw := range records {
		items = append(items, Normalize(raw))
	}
	return &Catalog{items: items}
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the backing slice. Callers must treat it as read-only.
func (c *Catalog) Items() []types.Product {
	return c.items
}

func (c *Catalog) At(i int) (types.Product, bool) {
	if i < 0 || i >= len(c.items) {
		return types.Product{}, false
	}
	return c.items[i], true
}

// Types returns the sorted distinct type values present in the catalog,
// used to build the type-selection control.
func (c *Catalog) Types() []string {
	seen := map[string]struct{}{}
	result := make([]string, 0)
	for _, item := range c.items {
		if _, ok := seen[item.Type]; !ok {
			seen[item.Type] = struct{}{}
			result = append(result, item.Type)
		}
	}
	slices.Sort(result)
	return result
}

// Bounds returns the observed min/max price, the default price range
// for a fresh FilterState. An empty catalog has zero bounds.
func (c *Catalog) Bounds() types.PriceBounds {
	if len(c.items) == 0 {
		return types.PriceBounds{}
	}
	bounds := types.PriceBounds{Min: c.items[0].Price, Max: c.items[0].Price}
	for _, item := range c.items[1:] {
		bounds.Min = min(bounds.Min, item.Price)
		bounds.Max = max(bounds.Max, item.Price)
	}
	return bounds
}
