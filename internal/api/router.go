package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sitecard/notify-relay/internal/logger"
	"github.com/sitecard/notify-relay/internal/service"
)

// NewRouter creates a chi.Mux with all routes, middleware, and handlers
// configured. The db parameter is nil when the in-memory store is in use;
// readiness then only reflects process liveness.
func NewRouter(svc *service.Service, db Pinger, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CorrelationIDMiddleware)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logger.WithLogger(req.Context(), log)))
		})
	})
	r.Use(LoggingMiddleware(log))
	r.Use(RecoverMiddleware(log))

	// Operational endpoints
	r.Get("/healthz", HealthzHandler())
	r.Get("/readyz", ReadyzHandler(db))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/rpc/v1", func(r chi.Router) {
		r.Post("/authorize", AuthorizeHandler(svc))
		r.Post("/unauthorize", UnauthorizeHandler(svc))
		r.Get("/status", StatusHandler(svc))
		r.Post("/contact-messages", ContactMessageHandler(svc))
		r.Post("/authorization-links", AuthorizationLinkHandler(svc))
	})

	return r
}
