package types

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"
)

// BrowseRequest is the wire form of one browse computation: free-text
// query, type selection, price range, sort mode and page window.
type BrowseRequest struct {
	Query    string   `json:"query" schema:"q"`
	Types    []string `json:"types" schema:"type"`
	MinPrice *float64 `json:"min" schema:"min"`
	MaxPrice *float64 `json:"max" schema:"max"`
	Sort     string   `json:"sort" schema:"sort,default:recommended"`
	Page     int      `json:"page" schema:"page,default:1"`
	PageSize int      `json:"pageSize" schema:"size,default:12"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (b *BrowseRequest) Sanitize() {
	b.Page = clamp(b.Page, 1, 100000)
	b.PageSize = clamp(b.PageSize, 1, 1000)
	if b.Sort == "" {
		b.Sort = "recommended"
	}
}

// FilterState builds the state the pipeline consumes. Absent price
// bounds fall back to the catalog-derived defaults.
func (b *BrowseRequest) FilterState(defaults PriceBounds) *FilterState {
	state := NewFilterState(defaults)
	state.SetSearch(b.Query)
	for _, t := range b.Types {
		if t != "" {
			state.SetTypeSelected(t, true)
		}
	}
	minPrice, maxPrice := defaults.Min, defaults.Max
	if b.MinPrice != nil {
		minPrice = *b.MinPrice
	}
	if b.MaxPrice != nil {
		maxPrice = *b.MaxPrice
	}
	state.SetPriceRange(minPrice, maxPrice, defaults)
	state.Sort = ParseSortMode(b.Sort)
	return state
}

func makeBaseBrowseRequest() *BrowseRequest {
	return &BrowseRequest{
		Types:    []string{},
		Sort:     "recommended",
		Page:     1,
		PageSize: PageSize,
	}
}

func BrowseRequestFromRequest(r *http.Request) (*BrowseRequest, error) {
	br := makeBaseBrowseRequest()
	var err error
	if r.Method == http.MethodGet {
		err = browseRequestFromQuery(r.URL.Query(), br)
	} else {
		err = json.NewDecoder(r.Body).Decode(br)
	}
	br.Sanitize()
	return br, err
}

func browseRequestFromQuery(query url.Values, result *BrowseRequest) error {
	return decoder.Decode(result, query)
}
