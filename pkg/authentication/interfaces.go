// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"
)

type TokenVerifierInterface interface {
	// VerifyIDToken verifies a raw Firebase ID token and returns its decoded claims
	VerifyIDToken(ctx context.Context, rawToken string) (Claims, error)
}

type AuthenticatorInterface interface {
	// Authenticate extracts the bearer token from the Authorization header and verifies it
	// Returns an *AuthError when the request must be rejected
	Authenticate(r *http.Request) (Claims, error)
	// AuthenticateContext does the same using the authorization entry of incoming gRPC metadata
	AuthenticateContext(ctx context.Context) (Claims, error)
}
