package types

// PageSize is the fixed number of products shown per page.
const PageSize = 12

type Product struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}
