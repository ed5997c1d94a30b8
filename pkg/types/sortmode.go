package types

type SortMode int

const (
	SortRecommended SortMode = iota
	SortAlphaAsc
	SortAlphaDesc
	SortPriceAsc
	SortPriceDesc
)

var sortModeNames = map[SortMode]string{
	SortRecommended: "recommended",
	SortAlphaAsc:    "alpha-asc",
	SortAlphaDesc:   "alpha-desc",
	SortPriceAsc:    "price-asc",
	SortPriceDesc:   "price-desc",
}

func (m SortMode) String() string {
	if name, ok := sortModeNames[m]; ok {
		return name
	}
	return "recommended"
}

// ParseSortMode maps a wire name to a SortMode, falling back to
// SortRecommended for anything unknown.
func ParseSortMode(name string) SortMode {
	for mode, n := range sortModeNames {
		if n == name {
			return mode
		}
	}
	return SortRecommended
}
