package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	monitorhandler "trackwatch/internal/monitor/handler"
	"trackwatch/internal/platform/middleware"
	"trackwatch/pkg/platform/httputil"
)

// NewRouter wires all endpoints. The admin dashboard surface sits behind JWT
// auth; health and metrics stay open for probes and scrapers.
func NewRouter(h *monitorhandler.Handler, validator middleware.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		h.Register(r)
	})

	return r
}
