// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/metadata"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
)

func TestAuthenticator_Authenticate(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*MockTokenVerifierInterface)
		expectedSub    string
		expectedDetail string
		expectedCause  error
	}{
		{
			name:           "Missing token",
			authHeader:     "",
			setupMocks:     func(*MockTokenVerifierInterface) {},
			expectedDetail: "Not authenticated",
			expectedCause:  ErrMissingToken,
		},
		{
			name:           "Basic scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(*MockTokenVerifierInterface) {},
			expectedDetail: "Not authenticated",
			expectedCause:  ErrMissingToken,
		},
		{
			name:       "Expired token",
			authHeader: "Bearer expired-token",
			setupMocks: func(v *MockTokenVerifierInterface) {
				v.EXPECT().VerifyIDToken(gomock.Any(), "expired-token").Return(nil, fmt.Errorf("oidc: token is expired"))
			},
			expectedDetail: "Invalid authentication credentials: oidc: token is expired",
		},
		{
			name:       "Verifier not initialized",
			authHeader: "Bearer some-token",
			setupMocks: func(v *MockTokenVerifierInterface) {
				v.EXPECT().VerifyIDToken(gomock.Any(), "some-token").Return(nil, ErrNotInitialized)
			},
			expectedDetail: "Invalid authentication credentials: firebase verifier is not initialized",
			expectedCause:  ErrNotInitialized,
		},
		{
			name:       "Valid token",
			authHeader: "Bearer valid-token",
			setupMocks: func(v *MockTokenVerifierInterface) {
				v.EXPECT().VerifyIDToken(gomock.Any(), "valid-token").Return(Claims{"sub": "user-123", "uid": "user-123"}, nil)
			},
			expectedSub: "user-123",
		},
		{
			name:       "Lowercase scheme",
			authHeader: "bearer valid-token",
			setupMocks: func(v *MockTokenVerifierInterface) {
				v.EXPECT().VerifyIDToken(gomock.Any(), "valid-token").Return(Claims{"sub": "user-123"}, nil)
			},
			expectedSub: "user-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			logger := logging.NewNoopLogger()
			mockVerifier := NewMockTokenVerifierInterface(ctrl)
			tt.setupMocks(mockVerifier)

			a := NewAuthenticator(mockVerifier, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			claims, err := a.Authenticate(req)

			if tt.expectedDetail == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if claims.Subject() != tt.expectedSub {
					t.Errorf("expected subject %q, got %q", tt.expectedSub, claims.Subject())
				}
				return
			}

			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected *AuthError, got %v", err)
			}
			if authErr.Status != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", authErr.Status)
			}
			if authErr.Detail != tt.expectedDetail {
				t.Errorf("expected detail %q, got %q", tt.expectedDetail, authErr.Detail)
			}
			if authErr.Headers()["WWW-Authenticate"] != "Bearer" {
				t.Errorf("expected WWW-Authenticate: Bearer, got %v", authErr.Headers())
			}
			if tt.expectedCause != nil && !errors.Is(err, tt.expectedCause) {
				t.Errorf("expected error to wrap %v", tt.expectedCause)
			}
			if claims != nil {
				t.Errorf("expected no claims, got %v", claims)
			}
		})
	}
}

func TestAuthenticator_DisabledVerifierNeverReturnsClaims(t *testing.T) {
	logger := logging.NewNoopLogger()
	a := NewAuthenticator(NewDisabledVerifier(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger)

	for _, header := range []string{"", "Bearer a", "Bearer eyJhbGciOiJSUzI1NiJ9.e30.c2ln"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v0/me", nil)
		req.Header.Set("Authorization", header)

		claims, err := a.Authenticate(req)
		if err == nil || claims != nil {
			t.Errorf("expected header %q to be rejected, got claims %v", header, claims)
		}
	}
}

func TestAuthenticator_AuthenticateContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)
	mockVerifier := NewMockTokenVerifierInterface(ctrl)

	// the span context must carry the incoming metadata through
	mockTracer.EXPECT().Start(gomock.Any(), "authentication.Authenticator.AuthenticateContext").DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	)
	mockVerifier.EXPECT().VerifyIDToken(gomock.Any(), "grpc-token").Return(Claims{"sub": "user-456"}, nil)
	mockMonitor.EXPECT().IncAuthenticationResult(map[string]string{"transport": "grpc", "result": "verified"}).Return(nil)
	mockLogger.EXPECT().Security().Return(mockSecurity)
	mockSecurity.EXPECT().AuthnSuccess("user-456", "grpc")

	a := NewAuthenticator(mockVerifier, mockTracer, mockMonitor, mockLogger)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer grpc-token"))
	claims, err := a.AuthenticateContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.UID() != "user-456" {
		t.Errorf("expected uid user-456, got %q", claims.UID())
	}
}

func TestGetBearerToken(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		expectedToken string
		expectedFound bool
	}{
		{
			name:          "No Authorization header",
			authHeader:    "",
			expectedToken: "",
			expectedFound: false,
		},
		{
			name:          "Bearer token",
			authHeader:    "Bearer my-token-123",
			expectedToken: "my-token-123",
			expectedFound: true,
		},
		{
			name:          "Bearer scheme without token",
			authHeader:    "Bearer ",
			expectedToken: "",
			expectedFound: false,
		},
		{
			name:          "Raw token without Bearer prefix",
			authHeader:    "my-token-123",
			expectedToken: "",
			expectedFound: false,
		},
		{
			name:          "Uppercase scheme",
			authHeader:    "BEARER my-token-123",
			expectedToken: "my-token-123",
			expectedFound: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, found := getBearerToken(test.authHeader)

			if token != test.expectedToken {
				t.Errorf("expected token %q, got %q", test.expectedToken, token)
			}
			if found != test.expectedFound {
				t.Errorf("expected found %v, got %v", test.expectedFound, found)
			}
		})
	}
}
