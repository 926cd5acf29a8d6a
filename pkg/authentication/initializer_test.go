// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/canonical/tdms-auth/internal/config"
	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
)

func testConfig(path string) Config {
	return Config{
		CredentialsPath: path,
		IssuerURL:       testIssuerURL,
		JWKSURL:         "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com",
	}
}

func TestInitializer_MissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	path := filepath.Join(t.TempDir(), "serviceAccountKey.json")

	mockLogger.EXPECT().Warnf("%s not found. Firebase Admin not initialized.", path).Times(1)
	mockMonitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "firebase"}, float64(0)).Return(nil)

	i := NewInitializer(testConfig(path), tracing.NewNoopTracer(), mockMonitor, mockLogger)

	verifier, err := i.Initialize(context.Background())
	if err != nil {
		t.Fatalf("expected missing credentials to be non fatal, got %v", err)
	}

	if i.Initialized() {
		t.Error("expected initializer to report not initialized")
	}

	if _, ok := verifier.(*DisabledVerifier); !ok {
		t.Fatalf("expected a DisabledVerifier, got %T", verifier)
	}

	claims, err := verifier.VerifyIDToken(context.Background(), "any-token")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if claims != nil {
		t.Errorf("expected no claims, got %v", claims)
	}
}

func defaultLevelLogger(t *testing.T) (*logging.Logger, *observer.ObservedLogs) {
	t.Helper()

	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	core, logs := observer.New(logging.ParseLevel(specs.LogLevel))

	return logging.FromZap(zap.New(core)), logs
}

func TestInitializer_DefaultLogLevelReportsCredentialsState(t *testing.T) {
	key := newSigningKey(t)

	tests := []struct {
		name     string
		path     func() string
		expected string
	}{
		{
			name: "Missing credentials",
			path: func() string {
				return filepath.Join(t.TempDir(), "serviceAccountKey.json")
			},
			expected: " not found. Firebase Admin not initialized.",
		},
		{
			name: "Valid credentials",
			path: func() string {
				return writeServiceAccount(t, testServiceAccount(t, key))
			},
			expected: "Firebase Admin initialized successfully.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := defaultLevelLogger(t)

			i := NewInitializer(testConfig(tt.path()), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger)
			i.keySet = staticKeySet(key)

			if _, err := i.Initialize(context.Background()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			found := false
			for _, entry := range logs.All() {
				if strings.HasSuffix(entry.Message, tt.expected) {
					found = true
				}
			}

			if !found {
				t.Errorf("expected %q to be logged at the default level, got %v", tt.expected, logs.All())
			}
		})
	}
}

func TestInitializer_ValidCredentials(t *testing.T) {
	key := newSigningKey(t)
	path := writeServiceAccount(t, testServiceAccount(t, key))
	logger := logging.NewNoopLogger()

	i := NewInitializer(testConfig(path), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger)
	i.keySet = staticKeySet(key)

	verifier, err := i.Initialize(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !i.Initialized() {
		t.Error("expected initializer to report initialized")
	}

	claims, err := verifier.VerifyIDToken(context.Background(), signToken(t, key, validClaims(time.Now())))
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}
	if claims.Subject() != "user-123" {
		t.Errorf("expected subject user-123, got %q", claims.Subject())
	}
}

func TestInitializer_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	key := newSigningKey(t)
	path := writeServiceAccount(t, testServiceAccount(t, key))

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Info("Firebase Admin initialized successfully.").Times(1)
	mockLogger.EXPECT().Debugf("firebase verifier already initialized, ignoring").Times(1)

	i := NewInitializer(testConfig(path), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logging.NewNoopLogger()), mockLogger)
	i.keySet = staticKeySet(key)

	first, err := i.Initialize(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// a credentials file appearing or disappearing must not change anything
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove credentials: %v", err)
	}

	second, err := i.Initialize(context.Background())
	if err != nil {
		t.Fatalf("expected second initialization not to fail, got %v", err)
	}

	if first != second {
		t.Error("expected second initialization to return the established verifier")
	}
}

func TestInitializer_ProjectIDOverride(t *testing.T) {
	key := newSigningKey(t)
	path := writeServiceAccount(t, testServiceAccount(t, key))
	logger := logging.NewNoopLogger()

	config := testConfig(path)
	config.ProjectID = "tdms-prod"

	i := NewInitializer(config, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("tdms-auth", logger), logger)
	i.keySet = staticKeySet(key)

	verifier, err := i.Initialize(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// token audience is the project of the credentials file, not the override
	if _, err := verifier.VerifyIDToken(context.Background(), signToken(t, key, validClaims(time.Now()))); err == nil {
		t.Fatal("expected token for another project to be rejected")
	}
}

func TestInitializer_MalformedCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serviceAccountKey.json")
	if err := os.WriteFile(path, []byte(`{"type": "service_account"}`), 0o600); err != nil {
		t.Fatalf("failed to write credentials: %v", err)
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMonitor := NewMockMonitorInterface(ctrl)
	mockMonitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "firebase"}, float64(0)).Return(nil).Times(1)

	i := NewInitializer(testConfig(path), tracing.NewNoopTracer(), mockMonitor, logging.NewNoopLogger())

	verifier, err := i.Initialize(context.Background())
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if verifier != nil {
		t.Errorf("expected no verifier, got %T", verifier)
	}
	if i.Initialized() {
		t.Error("expected initializer to report not initialized")
	}
}
