package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/naijavoice/naijavoice-api/internal/api/handlers"
	"github.com/naijavoice/naijavoice-api/internal/api/middleware"
	"github.com/naijavoice/naijavoice-api/internal/config"
	"github.com/naijavoice/naijavoice-api/internal/metrics"
	"github.com/naijavoice/naijavoice-api/internal/synthesis"
)

type Router struct {
	mux     *chi.Mux
	cfg     *config.Config
	svc     *synthesis.Service
	metrics *metrics.Metrics
	redis   *redis.Client
}

// NewRouter wires the HTTP surface. m may be nil when metrics are disabled and
// rdb may be nil when the fulfillment queue is disabled.
func NewRouter(cfg *config.Config, svc *synthesis.Service, m *metrics.Metrics, rdb *redis.Client) *Router {
	return &Router{
		mux:     chi.NewRouter(),
		cfg:     cfg,
		svc:     svc,
		metrics: m,
		redis:   rdb,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	if rt.metrics != nil {
		r.Use(middleware.Metrics(rt.metrics))
	}
	r.Use(middleware.Recover)
	r.Use(middleware.CORS([]string{"*"}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}` + "\n"))
	})
	// chi answers methods it does not know (e.g. PROPFIND) itself.
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}` + "\n"))
	})

	// Health endpoints
	health := handlers.NewHealthHandler(rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	if rt.metrics != nil {
		r.Method(http.MethodGet, rt.cfg.Metrics.Path, rt.metrics.Handler())
	}

	// Method gate lives in the service, so every method reaches the handler.
	synthH := handlers.NewSynthesizeHandler(rt.svc)
	r.HandleFunc(rt.cfg.Synthesis.Path, synthH.Synthesize)

	return r
}
