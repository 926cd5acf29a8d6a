// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
)

const (
	transportHTTP = "http"
	transportGRPC = "grpc"
)

var _ AuthenticatorInterface = (*Authenticator)(nil)

type Authenticator struct {
	verifier TokenVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authenticator) Authenticate(r *http.Request) (Claims, error) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.Authenticator.Authenticate")
	defer span.End()

	return a.authenticate(ctx, r.Header.Get("Authorization"), transportHTTP)
}

func (a *Authenticator) AuthenticateContext(ctx context.Context) (Claims, error) {
	ctx, span := a.tracer.Start(ctx, "authentication.Authenticator.AuthenticateContext")
	defer span.End()

	header := ""
	// Metadata keys are lowercased
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("authorization"); len(values) > 0 {
			header = values[0]
		}
	}

	return a.authenticate(ctx, header, transportGRPC)
}

func (a *Authenticator) authenticate(ctx context.Context, header, transport string) (Claims, error) {
	token, found := getBearerToken(header)
	if !found {
		a.record(transport, "missing")
		a.logger.Security().AuthnFailure(ErrMissingToken.Error(), transport)
		return nil, newMissingTokenError()
	}

	claims, err := a.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		a.logger.Debugf("ID token verification failed: %v", err)
		a.record(transport, "denied")
		a.logger.Security().AuthnFailure(err.Error(), transport)
		return nil, newInvalidTokenError(err)
	}

	a.record(transport, "verified")
	a.logger.Security().AuthnSuccess(claims.UID(), transport)

	return claims, nil
}

func (a *Authenticator) record(transport, result string) {
	tags := map[string]string{"transport": transport, "result": result}
	if err := a.monitor.IncAuthenticationResult(tags); err != nil {
		a.logger.Debugf("error incrementing authentication metric: %v", err)
	}
}

// getBearerToken only supports the "Bearer <token>" format (RFC 6750), scheme is case insensitive
func getBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}

func NewAuthenticator(
	verifier TokenVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
