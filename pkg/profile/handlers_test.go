// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/pkg/authentication"
)

func TestMe(t *testing.T) {
	tests := []struct {
		name           string
		claims         authentication.Claims
		expectedStatus int
		expectedUID    string
	}{
		{
			name: "authenticated",
			claims: authentication.Claims{
				"sub":            "user-123",
				"uid":            "user-123",
				"email":          "visitor@tdms.example.com",
				"email_verified": true,
				"name":           "Visitor",
			},
			expectedStatus: http.StatusOK,
			expectedUID:    "user-123",
		},
		{
			name:           "no claims in context",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewNoopLogger()
			api := NewAPI(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger)

			// stands in for the authentication middleware
			inject := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if tt.claims != nil {
						r = r.WithContext(authentication.WithClaims(r.Context(), tt.claims))
					}
					next.ServeHTTP(w, r)
				})
			}

			mux := chi.NewMux()
			api.RegisterEndpoints(mux, inject)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}

			if tt.expectedStatus != http.StatusOK {
				if res.Header.Get("WWW-Authenticate") != "Bearer" {
					t.Error("expected WWW-Authenticate header")
				}
				return
			}

			var p Profile
			if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
				t.Fatalf("failed to decode profile: %v", err)
			}

			if p.UID != tt.expectedUID {
				t.Errorf("expected uid %q, got %q", tt.expectedUID, p.UID)
			}
			if !p.EmailVerified {
				t.Error("expected email_verified to be true")
			}
			if p.Name != "Visitor" {
				t.Errorf("expected name Visitor, got %q", p.Name)
			}
			if p.Claims["email"] != "visitor@tdms.example.com" {
				t.Errorf("expected raw claims to be returned, got %v", p.Claims)
			}
		})
	}
}
