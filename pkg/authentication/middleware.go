// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
)

const healthServicePrefix = "/grpc.health.v1.Health/"

type Middleware struct {
	authenticator AuthenticatorInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			claims, err := m.authenticator.Authenticate(r.WithContext(ctx))
			if err != nil {
				m.unauthorizedResponse(w, err)
				return
			}

			// Token is valid, inject claims into context
			ctx = WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GRPCInterceptor is a unary interceptor for gRPC authentication, health checks are not authenticated
func (m *Middleware) GRPCInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(ctx, req)
	}

	ctx, span := m.tracer.Start(ctx, "authentication.Middleware.GRPCInterceptor")
	defer span.End()

	claims, err := m.authenticator.AuthenticateContext(ctx)
	if err != nil {
		// only fails outside of a server transport, i.e. when called directly
		_ = grpc.SetHeader(ctx, metadata.Pairs("www-authenticate", "Bearer"))
		return nil, status.Error(codes.Unauthenticated, detail(err))
	}

	ctx = WithClaims(ctx, claims)
	return handler(ctx, req)
}

func (m *Middleware) unauthorizedResponse(w http.ResponseWriter, err error) {
	code := http.StatusUnauthorized
	headers := map[string]string{"WWW-Authenticate": "Bearer"}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		code = authErr.Status
		headers = authErr.Headers()
	}

	for k, v := range headers {
		w.Header().Set(k, v)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"detail": detail(err),
	}); err != nil {
		m.logger.Errorf("failed to encode unauthorized response: %v", err)
	}
}

func detail(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Detail
	}
	return invalidCredentialsMessage + ": " + err.Error()
}

func NewMiddleware(authenticator AuthenticatorInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		authenticator: authenticator,
		tracer:        tracer,
		monitor:       monitor,
		logger:        logger,
	}
}
