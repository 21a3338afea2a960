package router

import (
	"net/http"
	"strings"

	"shopfront/internal/handler"
	"shopfront/internal/metrics"
	"shopfront/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	registry *prometheus.Registry,
	m *metrics.Metrics,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Catalogue view and intents
	mux.HandleFunc("/api/catalog", catalogHandler.View)
	mux.HandleFunc("/api/catalog/categories", catalogHandler.Categories)
	mux.HandleFunc("/api/catalog/featured", catalogHandler.Featured)
	mux.HandleFunc("/api/catalog/products/", catalogHandler.ProductByID)
	mux.HandleFunc("/api/catalog/sort", postOnly(catalogHandler.SetSort))
	mux.HandleFunc("/api/catalog/page", postOnly(catalogHandler.SetPage))
	mux.HandleFunc("/api/catalog/page-size", postOnly(catalogHandler.SetPageSize))
	mux.HandleFunc("/api/catalog/view-mode", postOnly(catalogHandler.SetViewMode))
	mux.HandleFunc("/api/catalog/search", postOnly(catalogHandler.Search))

	// Filter intents: POST merges, DELETE clears
	mux.HandleFunc("/api/catalog/filters", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			catalogHandler.SetFilters(w, r)
		case http.MethodDelete:
			catalogHandler.ClearFilters(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Order history
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/orders/") && r.URL.Path != "/api/orders/" {
			orderHandler.GetByID(w, r)
			return
		}
		orderHandler.List(w, r)
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> CorrelationID -> Logging -> Metrics -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Metrics(m)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CorrelationID(h)
	h = middleware.Recovery(logger)(h)

	return h
}

// postOnly rejects everything but POST before delegating.
func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
