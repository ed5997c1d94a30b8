// Package paging slices an ordered list into a page window.
package paging

import "github.com/matst80/slask-browse/pkg/types"

// TotalPages is max(1, ceil(n/size)); an empty list still has one
// (empty) page.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = types.PageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamp forces a requested page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Apply returns the page window and the total page count. The input is
// not mutated and no external state is touched.
func Apply(items []types.Product, page, size int) ([]types.Product, int) {
	if size <= 0 {
		size = types.PageSize
	}
	totalPages := TotalPages(len(items), size)
	effective := Clamp(page, totalPages)

	start := (effective - 1) * size
	end := min(start+size, len(items))
	if start >= len(items) {
		return []types.Product{}, totalPages
	}
	return items[start:end], totalPages
}
