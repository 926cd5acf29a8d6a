// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
)

const maxSubjectLength = 128

type FirebaseVerifier struct {
	verifier  *oidc.IDTokenVerifier
	projectID string
	now       func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, rawToken string) (Claims, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.FirebaseVerifier.VerifyIDToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	claims := make(Claims)
	if err := token.Claims(&claims); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return nil, err
	}

	sub := claims.Subject()
	if sub == "" {
		return nil, fmt.Errorf("firebase ID token has no \"sub\" (subject) claim")
	}

	if len(sub) > maxSubjectLength {
		return nil, fmt.Errorf("firebase ID token has \"sub\" (subject) claim longer than %d characters", maxSubjectLength)
	}

	if authTime, ok := claims["auth_time"].(float64); ok {
		if time.Unix(int64(authTime), 0).After(v.now()) {
			return nil, fmt.Errorf("firebase ID token has \"auth_time\" claim in the future")
		}
	}

	// go-oidc only checks exp and nbf
	if iat, ok := claims["iat"].(float64); ok {
		if time.Unix(int64(iat), 0).After(v.now()) {
			return nil, fmt.Errorf("firebase ID token has \"iat\" (issued-at) claim in the future, token used too early")
		}
	}

	claims["uid"] = sub

	return claims, nil
}

// NewFirebaseVerifier checks signature against keySet, issuer and audience (the project ID)
func NewFirebaseVerifier(
	keySet oidc.KeySet,
	issuer string,
	projectID string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *FirebaseVerifier {
	v := &FirebaseVerifier{
		projectID: projectID,
		now:       time.Now,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}

	config := &oidc.Config{
		ClientID:             projectID,
		SupportedSigningAlgs: []string{oidc.RS256},
		Now:                  func() time.Time { return v.now() },
	}

	v.verifier = oidc.NewVerifier(issuer, keySet, config)

	return v
}
