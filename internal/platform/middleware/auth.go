package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "trackwatch/pkg/domain-errors"
	"trackwatch/pkg/platform/httputil"
	"trackwatch/pkg/requestcontext"
)

// TokenValidator validates admin API bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*AdminClaims, error)
}

// AdminClaims represents the claims we expect from the token validator.
type AdminClaims struct {
	AdminID  string
	TravelID string
}

type contextKeyAdminID struct{}
type contextKeyTravelID struct{}

var (
	ContextKeyAdminID  = contextKeyAdminID{}
	ContextKeyTravelID = contextKeyTravelID{}
)

// GetAdminID retrieves the authenticated admin ID from the context.
func GetAdminID(ctx context.Context) string {
	adminID, ok := ctx.Value(ContextKeyAdminID).(string)
	if !ok {
		return ""
	}
	return adminID
}

// GetTravelID retrieves the authenticated admin's travel group from the context.
func GetTravelID(ctx context.Context) string {
	travelID, ok := ctx.Value(ContextKeyTravelID).(string)
	if !ok {
		return ""
	}
	return travelID
}

// RequireAuth rejects requests without a valid bearer token and stores the
// admin identity on the context for handlers.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("rejected admin API token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid bearer token"))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminID, claims.AdminID)
			ctx = context.WithValue(ctx, ContextKeyTravelID, claims.TravelID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
