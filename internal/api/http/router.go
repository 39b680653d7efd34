package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-analytics/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultRateLimitRequests = 100
	defaultRateLimitWindow   = time.Minute
)

// Router builds the http routes of the analytics API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(countRequests)
		r.Use(httprate.LimitByIP(s.rateLimit()))
		if s.c.JWTSecret != "" {
			r.Use(s.requireToken)
		}

		r.Get("/dashboard", s.dashboard)
		r.Get("/sales", s.sales)
		r.Get("/revenue", s.revenue)
		r.Get("/products", s.productPerformance)
		r.Get("/product-performance", s.productPerformance)
		r.Get("/top-selling-products", s.topSellingProducts)
		r.Get("/categories", s.salesByCategory)
		r.Get("/top-categories", s.topCategories)
		r.Get("/customers", s.customers)
		r.Get("/customer-segments", s.customerSegments)
		r.Get("/customer-lifetime-value", s.customerLifetimeValue)
		r.Get("/inventory", s.inventory)
		r.Get("/inventory-turnover", s.inventoryTurnover)
		r.Get("/orders", s.orderTrends)
		r.Get("/order-trends", s.orderTrends)
		r.Get("/seasonal-trends", s.seasonalTrends)
		r.Get("/profitability", s.profitability)
		r.Get("/forecast", s.forecast)
		r.Get("/cohort-analysis", s.cohorts)
		r.Get("/rfm-analysis", s.rfm)
		r.Get("/comparison", s.comparison)
		r.Get("/export", s.export)
		r.Post("/custom-report", s.customReport)
	})

	return r
}

func (s *Server) rateLimit() (int, time.Duration) {
	n, w := s.c.RateLimitRequests, s.c.RateLimitWindow
	if n <= 0 {
		n = defaultRateLimitRequests
	}
	if w <= 0 {
		w = defaultRateLimitWindow
	}
	return n, w
}

// countRequests records the status of every analytics response by route pattern.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(route, status)
	})
}
