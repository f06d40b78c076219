package test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trackwatch/internal/alert"
	httpapi "trackwatch/internal/http"
	jwttoken "trackwatch/internal/jwt_token"
	monitorhandler "trackwatch/internal/monitor/handler"
	"trackwatch/pkg/testutil"
)

func newRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := monitorhandler.New(alert.NewMemoryStore(), logger)
	validator := jwttoken.NewJWTService("test-signing-key", "trackwatch", "trackwatch-admin")
	return httpapi.NewRouter(handler, validator, logger)
}

func TestRouterAuthBoundary(t *testing.T) {
	router := newRouter()

	testutil.Given(t, "the HTTP router", func(t *testing.T) {
		testutil.When(t, "calling GET /healthz without credentials", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			testutil.Then(t, "the probe endpoint responds OK", func(t *testing.T) {
				if rec.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
				}
			})
		})

		testutil.When(t, "calling GET /metrics without credentials", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			testutil.Then(t, "the scrape endpoint responds OK", func(t *testing.T) {
				if rec.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
				}
			})
		})

		testutil.When(t, "calling GET /alerts without a token", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			testutil.Then(t, "the admin surface rejects the request", func(t *testing.T) {
				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
				}
			})
		})

		testutil.When(t, "calling GET /alerts with a valid token", func(t *testing.T) {
			service := jwttoken.NewJWTService("test-signing-key", "trackwatch", "trackwatch-admin")
			token, err := service.GenerateAccessToken("admin-1", "travel-1", time.Hour)
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			testutil.Then(t, "the alert list is served", func(t *testing.T) {
				if rec.Code != http.StatusOK {
					t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
				}
			})
		})
	})
}
