// Package browse owns the stateful filter/sort/paginate pipeline. A
// Session holds the catalog plus the current FilterState and
// PaginationState, and recomputes the whole view on every mutation —
// no incremental patching.
package browse

import (
	"context"
	"sync"
	"time"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/common"
	"github.com/matst80/slask-browse/pkg/filter"
	"github.com/matst80/slask-browse/pkg/loader"
	"github.com/matst80/slask-browse/pkg/paging"
	"github.com/matst80/slask-browse/pkg/sorting"
	"github.com/matst80/slask-browse/pkg/types"
)

const (
	SearchDebounceDelay = 140 * time.Millisecond
	PriceDebounceDelay  = 120 * time.Millisecond
)

// Renderer consumes computed output; it never mutates session state.
type Renderer interface {
	// RenderCatalog fires once per load with the sorted distinct type
	// values and the observed price bounds, for building controls.
	RenderCatalog(typeValues []string, bounds types.PriceBounds)
	RenderPage(view View)
	// RenderDetail receives the selected product's normalized fields
	// unchanged.
	RenderDetail(item types.Product)
	RenderLoadError(err error)
}

// View is what one recompute hands to the renderer.
type View struct {
	Items      []types.Product
	Pagination types.Pagination
	TotalItems int
}

type Session struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	filters  *types.FilterState
	page     types.PaginationState
	sorter   *sorting.Sorter
	renderer Renderer
	view     View
	loadErr  error

	searchDebounce *common.Debouncer
	priceDebounce  *common.Debouncer
}

func NewSession(renderer Renderer) *Session {
	return NewSessionWithClock(renderer, common.RealClock())
}

func NewSessionWithClock(renderer Renderer, clock common.Clock) *Session {
	return &Session{
		catalog:        catalog.New(nil),
		filters:        types.NewFilterState(types.PriceBounds{}),
		page:           types.PaginationState{CurrentPage: 1},
		sorter:         sorting.Default(),
		renderer:       renderer,
		searchDebounce: common.NewDebouncerWithClock(SearchDebounceDelay, clock),
		priceDebounce:  common.NewDebouncerWithClock(PriceDebounceDelay, clock),
	}
}

// Load builds the catalog from the loader's records. A load failure is
// terminal for this attempt: the session keeps an empty catalog and
// signals the error state to the renderer, with no retry.
func (s *Session) Load(ctx context.Context, l loader.Loader) error {
	records, err := l.Load(ctx)

	s.mu.Lock()
	if err != nil {
		s.catalog = catalog.New(nil)
		s.loadErr = err
	} else {
		s.catalog = catalog.FromRaw(records)
		s.loadErr = nil
	}
	s.filters = types.NewFilterState(s.catalog.Bounds())
	s.page.CurrentPage = 1
	s.mu.Unlock()

	if err != nil {
		s.renderer.RenderLoadError(err)
		return err
	}
	s.renderer.RenderCatalog(s.catalog.Types(), s.catalog.Bounds())
	s.ApplyAll()
	return nil
}

// ApplyAll runs filter → sort → page clamp → paginate synchronously and
// hands the result to the renderer.
func (s *Session) ApplyAll() {
	s.mu.Lock()
	filtered := filter.Apply(s.catalog.Items(), s.filters)
	ordered := s.sorter.Apply(filtered, s.filters.Sort)
	totalPages := paging.TotalPages(len(ordered), types.PageSize)
	s.page.CurrentPage = paging.Clamp(s.page.CurrentPage, totalPages)
	slice, _ := paging.Apply(ordered, s.page.CurrentPage, types.PageSize)
	s.view = View{
		Items: slice,
		Pagination: types.Pagination{
			CurrentPage: s.page.CurrentPage,
			TotalPages:  totalPages,
		},
		TotalItems: len(ordered),
	}
	view := s.view
	s.mu.Unlock()

	s.renderer.RenderPage(view)
}

// SetSearch coalesces keystroke bursts; only the last value within the
// debounce window is applied.
func (s *Session) SetSearch(query string) {
	s.searchDebounce.Trigger(func() {
		s.mu.Lock()
		s.filters.SetSearch(query)
		s.page.CurrentPage = 1
		s.mu.Unlock()
		s.ApplyAll()
	})
}

// SetPriceRange is debounced like SetSearch; non-finite bounds fall
// back to the catalog defaults inside FilterState.
func (s *Session) SetPriceRange(minPrice, maxPrice float64) {
	s.priceDebounce.Trigger(func() {
		s.mu.Lock()
		s.filters.SetPriceRange(minPrice, maxPrice, s.catalog.Bounds())
		s.page.CurrentPage = 1
		s.mu.Unlock()
		s.ApplyAll()
	})
}

func (s *Session) SetTypeSelected(t string, selected bool) {
	s.mu.Lock()
	s.filters.SetTypeSelected(t, selected)
	s.page.CurrentPage = 1
	s.mu.Unlock()
	s.ApplyAll()
}

func (s *Session) SetSortMode(mode types.SortMode) {
	s.mu.Lock()
	s.filters.Sort = mode
	s.page.CurrentPage = 1
	s.mu.Unlock()
	s.ApplyAll()
}

// ClearFilters restores the load-time defaults and reproduces the
// initial unfiltered view.
func (s *Session) ClearFilters() {
	s.searchDebounce.Cancel()
	s.priceDebounce.Cancel()
	s.mu.Lock()
	s.filters.Reset(s.catalog.Bounds())
	s.page.CurrentPage = 1
	s.mu.Unlock()
	s.ApplyAll()
}

func (s *Session) SelectAllTypes() {
	s.mu.Lock()
	for _, t := range s.catalog.Types() {
		s.filters.SetTypeSelected(t, true)
	}
	s.page.CurrentPage = 1
	s.mu.Unlock()
	s.ApplyAll()
}

// GoToPage navigates without touching filter or sort state; the
// requested page is clamped during the recompute.
func (s *Session) GoToPage(page int) {
	s.mu.Lock()
	s.page.CurrentPage = page
	s.mu.Unlock()
	s.ApplyAll()
}

// SelectItem forwards the product at the given position of the current
// page to the detail view. Out-of-range positions are ignored.
func (s *Session) SelectItem(position int) {
	s.mu.Lock()
	if position < 0 || position >= len(s.view.Items) {
		s.mu.Unlock()
		return
	}
	item := s.view.Items[position]
	s.mu.Unlock()
	s.renderer.RenderDetail(item)
}

// View returns the last computed output.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Session) FilterState() types.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.filters
}
