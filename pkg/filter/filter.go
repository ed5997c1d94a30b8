// Package filter narrows a catalog to the items matching the current
// FilterState. All clauses are AND-ed and the catalog order is
// preserved, which the sort step relies on for stable tie-breaking.
package filter

import (
	"strings"

	"github.com/matst80/slask-browse/pkg/types"
)

// Apply returns the order-preserving subsequence of items matching the
// state. FilterState.Search is already trimmed and lower-cased.
func Apply(items []types.Product, state *types.FilterState) []types.Product {
	result := make([]types.Product, 0, len(items))
	for _, item := range items {
		if Matches(item, state) {
			result = append(result, item)
		}
	}
	return result
}

func Matches(item types.Product, state *types.FilterState) bool {
	return matchesSearch(item, state.Search) &&
		matchesType(item, state.SelectedTypes) &&
		matchesPrice(item, state.PriceMin, state.PriceMax)
}

func matchesSearch(item types.Product, search string) bool {
	if search == "" {
		return true
	}
	haystack := strings.ToLower(item.Title + item.Type)
	return strings.Contains(haystack, search)
}

func matchesType(item types.Product, selected types.TypeSet) bool {
	if len(selected) == 0 {
		return true
	}
	return selected.Has(item.Type)
}

func matchesPrice(item types.Product, minPrice, maxPrice float64) bool {
	return item.Price >= minPrice && item.Price <= maxPrice
}
