// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/internal/version"
)

type fakeVerifierStatus bool

func (f fakeVerifierStatus) Initialized() bool {
	return bool(f)
}

func TestAliveOK(t *testing.T) {
	for _, initialized := range []bool{true, false} {
		logger := logging.NewNoopLogger()
		mux := chi.NewMux()
		NewAPI(fakeVerifierStatus(initialized), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger).RegisterEndpoints(mux)

		req := httptest.NewRequest(http.MethodGet, "/api/v0/status", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		res := w.Result()
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected HTTP status code 200 got %v", res.StatusCode)
		}

		receivedStatus := new(Status)
		if err := json.NewDecoder(res.Body).Decode(receivedStatus); err != nil {
			t.Fatalf("expected error to be nil got %v", err)
		}

		if receivedStatus.Status != okValue {
			t.Errorf("expected status %q, got %q", okValue, receivedStatus.Status)
		}
		if receivedStatus.VerifierAvailable != initialized {
			t.Errorf("expected verifierAvailable %v, got %v", initialized, receivedStatus.VerifierAvailable)
		}
	}
}

func TestVersion(t *testing.T) {
	logger := logging.NewNoopLogger()
	mux := chi.NewMux()
	NewAPI(fakeVerifierStatus(true), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger).RegisterEndpoints(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/version", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	receivedVersion := new(Version)
	if err := json.NewDecoder(w.Result().Body).Decode(receivedVersion); err != nil {
		t.Fatalf("expected error to be nil got %v", err)
	}

	if receivedVersion.Version != version.Version {
		t.Errorf("expected version %q, got %q", version.Version, receivedVersion.Version)
	}
}
