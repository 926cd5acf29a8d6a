// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"false"`

	LogLevel string `envconfig:"log_level" default:"info"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port     int `envconfig:"port" default:"8000"`
	GRPCPort int `envconfig:"grpc_port" default:"50051"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"http://localhost:3000"`

	FirebaseCredentialsPath string `envconfig:"firebase_credentials_path" default:"serviceAccountKey.json"`
	// FirebaseProjectID overrides the project_id found in the credentials file
	FirebaseProjectID string `envconfig:"firebase_project_id"`
	FirebaseIssuerURL string `envconfig:"firebase_issuer_url" default:"https://securetoken.google.com/"`
	FirebaseJWKSURL   string `envconfig:"firebase_jwks_url" default:"https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"`
}
