package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/matst80/slask-browse/pkg/common"
	"github.com/matst80/slask-browse/pkg/filter"
	"github.com/matst80/slask-browse/pkg/paging"
	"github.com/matst80/slask-browse/pkg/types"
)

const browseCacheTTL = time.Minute * 5

type BrowseResult struct {
	Items       []types.Product `json:"items"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	TotalItems  int             `json:"totalItems"`
}

func (ws *WebServer) compute(req *types.BrowseRequest) BrowseResult {
	cat := ws.Catalog()
	state := req.FilterState(cat.Bounds())
	filtered := filter.Apply(cat.Items(), state)
	ordered := ws.Sorter.Apply(filtered, state.Sort)
	slice, totalPages := paging.Apply(ordered, req.Page, req.PageSize)
	return BrowseResult{
		Items:       slice,
		CurrentPage: paging.Clamp(req.Page, totalPages),
		TotalPages:  totalPages,
		TotalItems:  len(ordered),
	}
}

// Browse is the hot path; responses are sonic-encoded and, for GET
// requests, cached by raw query string.
func (ws *WebServer) Browse(w http.ResponseWriter, r *http.Request) {
	if r.Method == "OPTIONS" {
		common.RespondToOptions(w, r)
		return
	}
	sessionId := common.HandleSessionCookie(ws.Tracking, w, r)
	noBrowses.Inc()
	w.Header().Set("Content-Type", "application/json")

	cacheKey := ""
	if ws.Cache != nil && r.Method == http.MethodGet {
		cacheKey = "browse:" + r.URL.RawQuery
		if data, ok := ws.Cache.GetRaw(cacheKey); ok {
			noCacheHits.Inc()
			w.Write(data)
			return
		}
	}

	req, err := types.BrowseRequestFromRequest(r)
	if err != nil {
		// Undecodable fields fall back to request defaults.
		log.Printf("Failed to decode browse request: %v", err)
	}
	result := ws.compute(req)

	if ws.Tracking != nil {
		// The event goroutine outlives the handler; it must not hold r.
		go ws.Tracking.TrackBrowse(sessionId, req, result.TotalItems)
	}

	body, err := sonic.Marshal(result)
	if err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}
	if cacheKey != "" {
		if err := ws.Cache.SetRaw(cacheKey, body, browseCacheTTL); err != nil {
			log.Printf("Failed to cache browse response: %v", err)
		}
	}
	w.Write(body)
}

// GetTypes serves the sorted distinct type values for building the
// type-selection control.
func (ws *WebServer) GetTypes(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	return enc.Encode(ws.Catalog().Types())
}

// GetBounds serves the catalog-wide price range for default
// range-control values.
func (ws *WebServer) GetBounds(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	return enc.Encode(ws.Catalog().Bounds())
}

// GetProduct serves one normalized product by catalog position,
// unchanged, for the detail view.
func (ws *WebServer) GetProduct(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return enc.Encode(map[string]string{"error": "invalid index"})
	}
	item, ok := ws.Catalog().At(index)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return enc.Encode(map[string]string{"error": "not found"})
	}
	return enc.Encode(item)
}

// AdminReload re-runs the Loader; guard it with AdminAuth.Middleware.
func (ws *WebServer) AdminReload(w http.ResponseWriter, r *http.Request) {
	count, err := ws.Reload(r.Context())
	if err != nil {
		log.Printf("Reload failed: %v", err)
		http.Error(w, "reload failed", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"items": count})
}
