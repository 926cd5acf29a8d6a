// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"os"
	"testing"

	"github.com/kelseyhightower/envconfig"
)

func TestEnvSpecDefaults(t *testing.T) {
	// t.Setenv registers the restore, Unsetenv makes the default apply
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "")
	os.Unsetenv("FIREBASE_CREDENTIALS_PATH")
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	os.Unsetenv("CORS_ALLOWED_ORIGINS")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.FirebaseCredentialsPath != "serviceAccountKey.json" {
		t.Errorf("expected default credentials path, got %q", specs.FirebaseCredentialsPath)
	}
	if specs.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", specs.LogLevel)
	}
	if specs.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", specs.Port)
	}
	if len(specs.CORSAllowedOrigins) != 1 || specs.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected CORS origins %v", specs.CORSAllowedOrigins)
	}
}

func TestEnvSpecCredentialsPathOverride(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/etc/tdms/firebase.json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://tdms.example.com,http://localhost:3000")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.FirebaseCredentialsPath != "/etc/tdms/firebase.json" {
		t.Errorf("expected overridden credentials path, got %q", specs.FirebaseCredentialsPath)
	}
	if len(specs.CORSAllowedOrigins) != 2 {
		t.Errorf("expected 2 CORS origins, got %v", specs.CORSAllowedOrigins)
	}
}
