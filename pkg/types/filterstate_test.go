package types

import (
	"math"
	"testing"
)

func TestSetSearchNormalizes(t *testing.T) {
	f := NewFilterState(PriceBounds{Min: 0, Max: 100})
	f.SetSearch("  Blue Shirt ")
	if f.Search != "blue shirt" {
		t.Errorf("Expected normalized search, got %q", f.Search)
	}
}

func TestSetPriceRangeSwapsReversedBounds(t *testing.T) {
	f := NewFilterState(PriceBounds{Min: 0, Max: 100})
	f.SetPriceRange(5, 2, PriceBounds{Min: 0, Max: 100})
	if f.PriceMin != 2 || f.PriceMax != 5 {
		t.Errorf("Expected swapped range [2,5], got [%v,%v]", f.PriceMin, f.PriceMax)
	}
}

func TestSetPriceRangeRecoversNonFinite(t *testing.T) {
	defaults := PriceBounds{Min: 10, Max: 90}
	f := NewFilterState(defaults)
	f.SetPriceRange(math.NaN(), math.Inf(1), defaults)
	if f.PriceMin != 10 || f.PriceMax != 90 {
		t.Errorf("Expected default bounds [10,90], got [%v,%v]", f.PriceMin, f.PriceMax)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	defaults := PriceBounds{Min: 1, Max: 9}
	f := NewFilterState(defaults)
	f.SetSearch("shoes")
	f.SetTypeSelected("Boots", true)
	f.SetPriceRange(3, 4, defaults)
	f.Sort = SortPriceDesc

	f.Reset(defaults)

	if f.Search != "" {
		t.Errorf("Expected empty search, got %q", f.Search)
	}
	if len(f.SelectedTypes) != 0 {
		t.Errorf("Expected no selected types, got %v", f.SelectedTypes)
	}
	if f.PriceMin != 1 || f.PriceMax != 9 {
		t.Errorf("Expected bounds [1,9], got [%v,%v]", f.PriceMin, f.PriceMax)
	}
	if f.Sort != SortRecommended {
		t.Errorf("Expected recommended sort, got %v", f.Sort)
	}
}

func TestParseSortMode(t *testing.T) {
	cases := map[string]SortMode{
		"recommended": SortRecommended,
		"alpha-asc":   SortAlphaAsc,
		"alpha-desc":  SortAlphaDesc,
		"price-asc":   SortPriceAsc,
		"price-desc":  SortPriceDesc,
		"bogus":       SortRecommended,
		"":            SortRecommended,
	}
	for name, expected := range cases {
		if got := ParseSortMode(name); got != expected {
			t.Errorf("ParseSortMode(%q): expected %v, got %v", name, expected, got)
		}
	}
}
