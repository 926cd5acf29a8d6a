// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
)

// NewFirebaseKeySet creates a remote key set fetching the securetoken signing keys
// The context must outlive the process' request handling since key refreshes use it
func NewFirebaseKeySet(ctx context.Context, jwksURL string) oidc.KeySet {
	// Use otel-instrumented HTTP client
	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	return oidc.NewRemoteKeySet(ctx, jwksURL)
}

// FirebaseIssuer builds the issuer Firebase sets on ID tokens of a project
func FirebaseIssuer(issuerURL, projectID string) string {
	return strings.TrimSuffix(issuerURL, "/") + "/" + projectID
}
