package types

import (
	"math"
	"strings"
)

type TypeSet map[string]struct{}

func (s TypeSet) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// FilterState holds the current narrowing selections. An empty
// SelectedTypes set means "no restriction", not "match nothing".
type FilterState struct {
	Search        string
	SelectedTypes TypeSet
	PriceMin      float64
	PriceMax      float64
	Sort          SortMode
}

func NewFilterState(bounds PriceBounds) *FilterState {
	return &FilterState{
		SelectedTypes: TypeSet{},
		PriceMin:      bounds.Min,
		PriceMax:      bounds.Max,
		Sort:          SortRecommended,
	}
}

func (f *FilterState) SetSearch(query string) {
	f.Search = strings.ToLower(strings.TrimSpace(query))
}

func (f *FilterState) SetTypeSelected(t string, selected bool) {
	if selected {
		f.SelectedTypes[t] = struct{}{}
	} else {
		delete(f.SelectedTypes, t)
	}
}

// SetPriceRange applies new bounds. Non-finite input falls back to the
// catalog-derived defaults and a reversed range is swapped, never rejected.
func (f *FilterState) SetPriceRange(minPrice, maxPrice float64, defaults PriceBounds) {
	if !isFinite(minPrice) {
		minPrice = defaults.Min
	}
	if !isFinite(maxPrice) {
		maxPrice = defaults.Max
	}
	if minPrice > maxPrice {
		minPrice, maxPrice = maxPrice, minPrice
	}
	f.PriceMin = minPrice
	f.PriceMax = maxPrice
}

// Reset restores the load-time defaults: no search, no type
// restriction, catalog price bounds and recommended order.
func (f *FilterState) Reset(defaults PriceBounds) {
	f.Search = ""
	f.SelectedTypes = TypeSet{}
	f.PriceMin = defaults.Min
	f.PriceMax = defaults.Max
	f.Sort = SortRecommended
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PaginationState tracks the one-based current page.
type PaginationState struct {
	CurrentPage int
}
