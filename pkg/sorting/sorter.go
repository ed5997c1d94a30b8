// Package sorting reorders filtered product lists. Stability is a
// correctness requirement here: items comparing equal must keep their
// catalog-relative order, so every comparator tie-breaks on the
// original index instead of relying on the host sort.
package sorting

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matst80/slask-browse/pkg/types"
)

type Sorter struct {
	collator *collate.Collator
}

func New(tag language.Tag) *Sorter {
	return &Sorter{collator: collate.New(tag)}
}

// Default uses undetermined-language collation rules.
func Default() *Sorter {
	return New(language.Und)
}

type entry struct {
	item types.Product
	idx  int
}

// Apply returns a new list ordered by the given mode. The input is
// never mutated; SortRecommended keeps the incoming order untouched.
func (s *Sorter) Apply(items []types.Product, mode types.SortMode) []types.Product {
	if mode == types.SortRecommended {
		return slices.Clone(items)
	}

	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i] = entry{item: item, idx: i}
	}

	key := s.keyCompare(mode)
	slices.SortFunc(entries, func(a, b entry) int {
		if c := key(a.item, b.item); c != 0 {
			return c
		}
		return a.idx - b.idx
	})

	result := make([]types.Product, len(entries))
	for i, e := range entries {
		result[i] = e.item
	}
	return result
}

func (s *Sorter) keyCompare(mode types.SortMode) func(a, b types.Product) int {
	switch mode {
	case types.SortAlphaAsc:
		return func(a, b types.Product) int {
			return s.collator.CompareString(a.Title, b.Title)
		}
	case types.SortAlphaDesc:
		return func(a, b types.Product) int {
			return s.collator.CompareString(b.Title, a.Title)
		}
	case types.SortPriceAsc:
		return func(a, b types.Product) int {
			return comparePrice(a.Price, b.Price)
		}
	case types.SortPriceDesc:
		return func(a, b types.Product) int {
			return comparePrice(b.Price, a.Price)
		}
	default:
		return func(a, b types.Product) int { return 0 }
	}
}

func comparePrice(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
