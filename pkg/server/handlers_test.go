package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matst80/slask-browse/pkg/catalog"
	"github.com/matst80/slask-browse/pkg/common"
	"github.com/matst80/slask-browse/pkg/loader"
	"github.com/matst80/slask-browse/pkg/types"
)

func testServer() *WebServer {
	ws := NewWebServer(&loader.StaticLoader{})
	ws.SetCatalog(catalog.New([]types.Product{
		{Title: "Blue Shirt", Price: 10, Type: "Shirts"},
		{Title: "Red Hoodie", Price: 30, Type: "Hoodies"},
		{Title: "Green Shirt", Price: 20, Type: "Shirts"},
		{Title: "Black Cap", Price: 5, Type: "Caps"},
	}))
	return ws
}

func decodeBrowse(t *testing.T, rec *httptest.ResponseRecorder) BrowseResult {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("Unexpected status %d", rec.Code)
	}
	var result BrowseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

func TestBrowseHandler(t *testing.T) {
	ws := testServer()
	rec := httptest.NewRecorder()
	ws.Browse(rec, httptest.NewRequest("GET", "/api/browse?q=shirt", nil))

	result := decodeBrowse(t, rec)
	if result.TotalItems != 2 || len(result.Items) != 2 {
		t.Fatalf("Expected 2 shirt matches, got %+v", result)
	}
	if result.CurrentPage != 1 || result.TotalPages != 1 {
		t.Errorf("Unexpected pagination: %+v", result)
	}
}

func TestBrowseHandlerSortAndRange(t *testing.T) {
	ws := testServer()
	rec := httptest.NewRecorder()
	ws.Browse(rec, httptest.NewRequest("GET", "/api/browse?min=10&max=30&sort=price-desc", nil))

	result := decodeBrowse(t, rec)
	if result.TotalItems != 3 {
		t.Fatalf("Expected 3 items in range, got %d", result.TotalItems)
	}
	expected := []string{"Red Hoodie", "Green Shirt", "Blue Shirt"}
	for i, title := range expected {
		if result.Items[i].Title != title {
			t.Errorf("Position %d: expected %s, got %s", i, title, result.Items[i].Title)
		}
	}
}

func TestBrowseHandlerEmptyResultIsNotAnError(t *testing.T) {
	ws := testServer()
	rec := httptest.NewRecorder()
	ws.Browse(rec, httptest.NewRequest("GET", "/api/browse?q=nothing-matches-this", nil))

	result := decodeBrowse(t, rec)
	if result.TotalItems != 0 || len(result.Items) != 0 {
		t.Errorf("Expected empty result set, got %+v", result)
	}
	if result.TotalPages != 1 {
		t.Errorf("Expected 1 page for empty result, got %d", result.TotalPages)
	}
}

func TestGetTypesHandler(t *testing.T) {
	ws := testServer()
	rec := httptest.NewRecorder()
	handler := common.JsonHandler(nil, ws.GetTypes)
	handler(rec, httptest.NewRequest("GET", "/api/types", nil))

	var typeValues []string
	if err := json.Unmarshal(rec.Body.Bytes(), &typeValues); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	expected := []string{"Caps", "Hoodies", "Shirts"}
	if len(typeValues) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, typeValues)
	}
	for i := range expected {
		if typeValues[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, typeValues)
			break
		}
	}
}

func TestGetBoundsHandler(t *testing.T) {
	ws := testServer()
	rec := httptest.NewRecorder()
	handler := common.JsonHandler(nil, ws.GetBounds)
	handler(rec, httptest.NewRequest("GET", "/api/bounds", nil))

	var bounds types.PriceBounds
	if err := json.Unmarshal(rec.Body.Bytes(), &bounds); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if bounds.Min != 5 || bounds.Max != 30 {
		t.Errorf("Expected bounds [5,30], got %+v", bounds)
	}
}

func TestGetProductHandler(t *testing.T) {
	ws := testServer()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/product/{index}", common.JsonHandler(nil, ws.GetProduct))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/product/1", nil))
	var item types.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if item.Title != "Red Hoodie" {
		t.Errorf("Expected Red Hoodie, got %+v", item)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/product/42", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 past the end, got %d", rec.Code)
	}
}

func TestReloadSwapsCatalog(t *testing.T) {
	ws := NewWebServer(&loader.StaticLoader{Records: []catalog.RawRecord{
		{"productTitle": "New Item", "productPrice": 1.0, "productType": "Tees"},
	}})
	count, err := ws.Reload(t.Context())
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if count != 1 || ws.Catalog().Len() != 1 {
		t.Errorf("Expected 1 item after reload, got %d", ws.Catalog().Len())
	}
}

type browseEvent struct {
	sessionId string
	query     string
	results   int
}

type recordingTracker struct {
	browses chan browseEvent
}

func (rt *recordingTracker) TrackSession(sessionId string, r *http.Request) {}

func (rt *recordingTracker) TrackBrowse(sessionId string, req *types.BrowseRequest, resultLen int) {
	rt.browses <- browseEvent{sessionId: sessionId, query: req.Query, results: resultLen}
}

func (rt *recordingTracker) Close() error { return nil }

func TestBrowseTracksWithoutHoldingRequest(t *testing.T) {
	ws := testServer()
	tracker := &recordingTracker{browses: make(chan browseEvent, 1)}
	ws.Tracking = tracker

	rec := httptest.NewRecorder()
	ws.Browse(rec, httptest.NewRequest("GET", "/api/browse?q=shirt", nil))
	decodeBrowse(t, rec)

	select {
	case event := <-tracker.browses:
		if event.query != "shirt" || event.results != 2 {
			t.Errorf("Unexpected browse event: %+v", event)
		}
		if event.sessionId == "" {
			t.Error("Expected a session id on the browse event")
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a browse event to be tracked")
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	auth := NewAdminAuth("test-secret", "api-key")
	called := false
	handler := auth.Middleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/admin/reload", nil))
	if rec.Code != http.StatusUnauthorized || called {
		t.Errorf("Expected rejection without credentials, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/admin/reload", nil)
	r.Header.Set("Authorization", "api-key")
	handler(rec, r)
	if !called {
		t.Error("Expected API key to pass")
	}

	token, err := auth.CreateToken("ops", "admin")
	if err != nil {
		t.Fatalf("Token creation failed: %v", err)
	}
	called = false
	rec = httptest.NewRecorder()
	r = httptest.NewRequest("POST", "/admin/reload", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: token})
	handler(rec, r)
	if !called {
		t.Error("Expected admin token to pass")
	}

	viewer, _ := auth.CreateToken("viewer", "viewer")
	called = false
	rec = httptest.NewRecorder()
	r = httptest.NewRequest("POST", "/admin/reload", nil)
	r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: viewer})
	handler(rec, r)
	if called || rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected non-admin role rejection, got %d", rec.Code)
	}
}
