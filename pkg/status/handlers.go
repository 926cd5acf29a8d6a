// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/internal/version"
)

const okValue = "ok"

type Status struct {
	Status            string `json:"status"`
	BuildInfo         string `json:"buildInfo"`
	VerifierAvailable bool   `json:"verifierAvailable"`
}

type Version struct {
	Version string `json:"version"`
}

type API struct {
	verifier VerifierStatusInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

// alive reports the process as up even when the verifier is disabled, requests
// needing authentication are the ones failing in that case
func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	rr := Status{
		Status:            okValue,
		BuildInfo:         version.Version,
		VerifierAvailable: a.verifier.Initialized(),
	}

	if err := json.NewEncoder(w).Encode(rr); err != nil {
		a.logger.Errorf("failed to encode status response: %v", err)
	}
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(Version{Version: version.Version}); err != nil {
		a.logger.Errorf("failed to encode version response: %v", err)
	}
}

func NewAPI(verifier VerifierStatusInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.verifier = verifier

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
