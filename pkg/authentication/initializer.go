// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/tdms-auth/internal/logging"
	"github.com/canonical/tdms-auth/internal/monitoring"
	"github.com/canonical/tdms-auth/internal/tracing"
)

type Config struct {
	CredentialsPath string
	// ProjectID takes precedence over the project_id of the credentials file
	ProjectID string
	IssuerURL string
	JWKSURL   string
}

// Initializer builds the process wide token verifier exactly once
type Initializer struct {
	config Config

	once        sync.Once
	initialized atomic.Bool
	verifier    TokenVerifierInterface
	err         error

	// keySet is used in place of the remote JWKS when set
	keySet oidc.KeySet

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Initialize loads the credentials and returns the verifier, later calls return
// the result of the first call untouched
// A missing credentials file is not an error: the returned verifier rejects every token
func (i *Initializer) Initialize(ctx context.Context) (TokenVerifierInterface, error) {
	first := false

	i.once.Do(func() {
		first = true
		i.verifier, i.err = i.initialize(ctx)
	})

	if !first {
		i.logger.Debugf("firebase verifier already initialized, ignoring")
	}

	return i.verifier, i.err
}

// Initialized reports whether a working verifier was built
func (i *Initializer) Initialized() bool {
	return i.initialized.Load()
}

func (i *Initializer) initialize(ctx context.Context) (TokenVerifierInterface, error) {
	path := i.config.CredentialsPath

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		i.logger.Warnf("%s not found. Firebase Admin not initialized.", path)
		i.setAvailability(0)
		return NewDisabledVerifier(), nil
	}

	verifier, err := i.newVerifier(ctx, path)
	if err != nil {
		i.setAvailability(0)
		return nil, err
	}

	i.initialized.Store(true)
	i.setAvailability(1)
	i.logger.Info("Firebase Admin initialized successfully.")

	return verifier, nil
}

func (i *Initializer) newVerifier(ctx context.Context, path string) (*FirebaseVerifier, error) {
	creds, err := LoadCredentials(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load firebase credentials from %s: %w", path, err)
	}

	projectID := i.config.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}

	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is required", ErrInvalidCredentials)
	}

	keySet := i.keySet
	if keySet == nil {
		i.logger.Infof("Using JWKS URL: %s", i.config.JWKSURL)
		keySet = NewFirebaseKeySet(ctx, i.config.JWKSURL)
	}

	return NewFirebaseVerifier(
		keySet,
		FirebaseIssuer(i.config.IssuerURL, projectID),
		projectID,
		i.tracer,
		i.monitor,
		i.logger,
	), nil
}

func (i *Initializer) setAvailability(v float64) {
	if err := i.monitor.SetDependencyAvailability(map[string]string{"component": "firebase"}, v); err != nil {
		i.logger.Debugf("error setting dependency availability metric: %v", err)
	}
}

func NewInitializer(
	config Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Initializer {
	return &Initializer{
		config:  config,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
