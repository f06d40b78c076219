package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"trackwatch/internal/alert"
	id "trackwatch/pkg/domain"
	dErrors "trackwatch/pkg/domain-errors"
	"trackwatch/pkg/platform/httputil"
	"trackwatch/pkg/platform/sentinel"
	"trackwatch/pkg/requestcontext"
)

// Store is the subset of alert.Store the admin API needs.
type Store interface {
	ListUnresolvedAlerts(ctx context.Context) ([]alert.Alert, error)
	ResolveAlert(ctx context.Context, alertID id.AlertID) error
	ListEventsByUser(ctx context.Context, userID id.UserID) ([]alert.Event, error)
}

// Handler wires the admin dashboard endpoints to the alert store.
type Handler struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/alerts", h.HandleListAlerts)
	r.Post("/alerts/{alertID}/resolve", h.HandleResolveAlert)
	r.Get("/users/{userID}/events", h.HandleListEvents)
}

// HandleListAlerts handles GET /alerts requests.
func (h *Handler) HandleListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	alerts, err := h.store.ListUnresolvedAlerts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list unresolved alerts failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list alerts"))
		return
	}

	h.logger.InfoContext(ctx, "listed unresolved alerts",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(alerts),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, toAlertListResponse(alerts))
}

// HandleResolveAlert handles POST /alerts/{alertID}/resolve requests.
func (h *Handler) HandleResolveAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	alertID, err := id.ParseAlertID(chi.URLParam(r, "alertID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.store.ResolveAlert(ctx, alertID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "alert not found"))
			return
		}
		h.logger.ErrorContext(ctx, "resolve alert failed",
			"request_id", requestcontext.RequestID(ctx),
			"alert_id", alertID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "resolve alert"))
		return
	}

	h.logger.InfoContext(ctx, "alert resolved",
		"request_id", requestcontext.RequestID(ctx),
		"alert_id", alertID,
	)
	httputil.WriteJSON(w, http.StatusOK, resolveResponse{Resolved: true})
}

// HandleListEvents handles GET /users/{userID}/events requests.
func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.store.ListEventsByUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list location events failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list events"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEventListResponse(events))
}
