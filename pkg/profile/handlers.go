// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profile

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/pkg/authentication"
)

// Profile is the view of the caller built from the verified claims
type Profile struct {
	UID           string         `json:"uid"`
	Email         string         `json:"email,omitempty"`
	EmailVerified bool           `json:"email_verified"`
	Name          string         `json:"name,omitempty"`
	Picture       string         `json:"picture,omitempty"`
	Claims        map[string]any `json:"claims"`
}

func newProfile(claims authentication.Claims) Profile {
	p := Profile{
		UID:    claims.UID(),
		Email:  claims.Email(),
		Claims: claims,
	}
	p.EmailVerified, _ = claims["email_verified"].(bool)
	p.Name, _ = claims["name"].(string)
	p.Picture, _ = claims["picture"].(string)

	return p
}

type API struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the profile routes behind the authentication middleware
func (a *API) RegisterEndpoints(mux chi.Router, authenticate func(http.Handler) http.Handler) {
	mux.With(authenticate).Get("/api/v0/me", a.me)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "profile.API.me")
	defer span.End()

	claims, ok := authentication.GetClaims(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	p := newProfile(claims)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		a.logger.Errorf("failed to encode profile: %v", err)
	}
}

func NewAPI(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
