package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/infra"
	"github.com/xela07ax/gcfin-panel/internal/infra/auth"
	"github.com/xela07ax/gcfin-panel/internal/panel/handler"
)

type PanelServer struct {
	router  *chi.Mux
	logger  *zap.Logger
	metrics *infra.Metrics

	// Token validation (RS256, issued by the external identity provider)
	authValidator auth.TokenValidator

	// Metrics registry exposed on /metrics
	registry *prometheus.Registry

	// Business handlers
	opsHandler  *handler.OpsHandler  // /api/v1/ops-data, /api/v1/audit-summary
	metaHandler *handler.MetaHandler // /api/v1/meta
	botHandler  *handler.BotHandler  // /api/v1/bot
}

// NewPanelServer wires the panel API with all dependencies.
func NewPanelServer(
	logger *zap.Logger,
	metrics *infra.Metrics,
	registry *prometheus.Registry,
	validator auth.TokenValidator,
	opsH *handler.OpsHandler,
	metaH *handler.MetaHandler,
	botH *handler.BotHandler,
) *PanelServer {
	s := &PanelServer{
		router:        chi.NewRouter(),
		logger:        logger.Named("panel-api"),
		metrics:       metrics,
		registry:      registry,
		authValidator: validator,
		opsHandler:    opsH,
		metaHandler:   metaH,
		botHandler:    botH,
	}

	s.routes()
	return s
}

func (s *PanelServer) routes() {
	r := s.router

	// --- 1. Global infrastructure middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.HTTPMiddleware)

	// --- 2. PUBLIC routes ---
	r.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	})

	// --- 3. PROTECTED perimeter (valid RS256 token required) ---
	r.Group(func(r chi.Router) {
		r.Use(auth.NewMiddleware(s.authValidator, s.logger))

		r.Route("/api/v1", func(r chi.Router) {
			// Reconciliation views (RBAC applied inside the services)
			r.Get("/ops-data", s.opsHandler.GetOpsData)
			r.Get("/audit-summary", s.opsHandler.GetAuditSummary)

			// Workbook discovery
			r.Get("/meta", s.metaHandler.GetMeta)

			// Closing-window bot control surface (GC only)
			r.Post("/bot", s.botHandler.Trigger)
		})
	})
}

// ServeHTTP lets PanelServer be used as a standard http.Handler.
func (s *PanelServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
