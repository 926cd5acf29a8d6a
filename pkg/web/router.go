// Copyright 2026 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
	"github.com/canonical/tdms-auth/pkg/authentication"
	"github.com/canonical/tdms-auth/pkg/metrics"
	"github.com/canonical/tdms-auth/pkg/profile"
	"github.com/canonical/tdms-auth/pkg/status"
)

func NewRouter(
	authMiddleware *authentication.Middleware,
	verifierStatus status.VerifierStatusInterface,
	allowedOrigins []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(allowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(verifierStatus, tracer, monitor, logger).RegisterEndpoints(router)
	profile.NewAPI(tracer, monitor, logger).RegisterEndpoints(router, authMiddleware.Authenticate())

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
