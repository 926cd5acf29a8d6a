// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

// DisabledVerifier stands in when no credentials were found at startup
type DisabledVerifier struct{}

// NewDisabledVerifier returns a verifier that rejects every token.
func NewDisabledVerifier() *DisabledVerifier {
	return &DisabledVerifier{}
}

func (d *DisabledVerifier) VerifyIDToken(ctx context.Context, rawToken string) (Claims, error) {
	return nil, ErrNotInitialized
}
