// Package integration exercises the full facade stack end to end: router,
// middleware, handlers, stores, dispatcher and API client, against a stub
// storefront backend.
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"shopfront/internal/api"
	"shopfront/internal/catalog"
	"shopfront/internal/handler"
	"shopfront/internal/metrics"
	"shopfront/internal/model"
	"shopfront/internal/router"
	"shopfront/internal/store"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// stubBackend is an in-memory storefront backend. It records every query
// string it receives so tests can assert what was (and was not) forwarded.
type stubBackend struct {
	mu       sync.Mutex
	products []model.Product
	orders   []model.Order
	queries  []url.Values

	// failNext forces the next listing request to return a 500.
	failNext bool
}

func newStubBackend() *stubBackend {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	return &stubBackend{
		products: []model.Product{
			{
				ID: "P001", Name: "Walnut Desk", Description: "Solid walnut standing desk",
				Price: 49.99, Category: "furniture", CategoryID: "C1", Brand: "Oakline",
				Tags: []string{"wood", "office"}, Stock: 3, Rating: 4.5, RatingCount: 120,
				CreatedAt: base,
			},
			{
				ID: "P002", Name: "Aluminium Lamp", Description: "Adjustable desk lamp",
				Price: 99.99, Category: "lighting", CategoryID: "C2", Brand: "Lumo",
				Tags: []string{"metal", "office"}, Stock: 0, Rating: 3.8, RatingCount: 45,
				CreatedAt: base.Add(24 * time.Hour),
			},
			{
				ID: "P003", Name: "Ergonomic Chair", Description: "Mesh-backed office chair",
				Price: 149.99, Category: "furniture", CategoryID: "C1", Brand: "Oakline",
				Tags: []string{"office"}, Stock: 10, Rating: 4.9, RatingCount: 310,
				OnSale: true, Featured: true, CreatedAt: base.Add(48 * time.Hour),
			},
		},
		orders: []model.Order{
			{ID: uuid.MustParse("e7a1f8a0-9a6b-4a5c-8a3d-1f2e3d4c5b6a"), Status: model.OrderShipped, Total: 199.98},
			{ID: uuid.MustParse("0b2c3d4e-5f6a-7b8c-9dae-afbfcfdfefff"), Status: model.OrderPending, Total: 49.99},
		},
	}
}

// lastQuery returns the query string of the most recent listing request.
func (b *stubBackend) lastQuery() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queries) == 0 {
		return url.Values{}
	}
	return b.queries[len(b.queries)-1]
}

func (b *stubBackend) setFailNext() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = true
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.Query())
		fail := b.failNext
		b.failNext = false
		b.mu.Unlock()

		if fail {
			http.Error(w, `{"message": "backend unavailable"}`, http.StatusInternalServerError)
			return
		}

		matched := b.filterProducts(r.URL.Query())
		writePage(w, matched, r.URL.Query())
	})

	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/products/")
		for _, p := range b.products {
			if p.ID == id {
				writeBody(w, p)
				return
			}
		}
		http.Error(w, `{"message": "product not found"}`, http.StatusNotFound)
	})

	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, []model.Category{
			{ID: "C1", Name: "Furniture"},
			{ID: "C2", Name: "Lighting"},
		})
	})

	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		writePage(w, b.orders, r.URL.Query())
	})

	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/orders/")
		for _, o := range b.orders {
			if o.ID.String() == id {
				writeBody(w, o)
				return
			}
		}
		http.Error(w, `{"message": "order not found"}`, http.StatusNotFound)
	})

	return mux
}

// filterProducts applies the server-side subset of the filter the way the
// real backend would.
func (b *stubBackend) filterProducts(params url.Values) []model.Product {
	matched := make([]model.Product, 0, len(b.products))

	for _, p := range b.products {
		if v := params.Get("category"); v != "" && p.Category != v {
			continue
		}
		if v := params.Get("brand"); v != "" && p.Brand != v {
			continue
		}
		if v := params.Get("search"); v != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(v)) {
			continue
		}
		if params.Get("featured") == "true" && !p.Featured {
			continue
		}
		matched = append(matched, p)
	}

	return matched
}

func writePage[T any](w http.ResponseWriter, items []T, params url.Values) {
	limit := 12
	if v, err := strconv.Atoi(params.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	page := 1
	if v, err := strconv.Atoi(params.Get("page")); err == nil && v > 0 {
		page = v
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	writeBody(w, map[string]interface{}{
		"data": items[start:end],
		"meta": model.NewPageMeta(len(items), page, limit),
	})
}

func writeBody(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// env is a fully wired facade running against a stub backend.
type env struct {
	facade  *httptest.Server
	backend *stubBackend
}

func newEnv(t *testing.T) *env {
	t.Helper()

	backend := newStubBackend()
	backendServer := httptest.NewServer(backend.handler())
	t.Cleanup(backendServer.Close)

	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	client := api.NewClient(backendServer.URL, 5*time.Second, nil, m, logger)
	dispatcher := catalog.NewDispatcher(client, logger)

	catalogStore := store.NewCatalogStore(dispatcher, 12, logger)
	orderStore := store.NewOrderStore(dispatcher, 10, logger)

	catalogHandler := handler.NewCatalogHandler(catalogStore, logger)
	orderHandler := handler.NewOrderHandler(orderStore, logger)

	facade := httptest.NewServer(router.New(catalogHandler, orderHandler, registry, m, logger))
	t.Cleanup(facade.Close)

	return &env{facade: facade, backend: backend}
}

func (e *env) get(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := http.Get(e.facade.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (e *env) post(t *testing.T, path, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(e.facade.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}
