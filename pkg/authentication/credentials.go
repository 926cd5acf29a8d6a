// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2/google"
)

var credentialScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/firebase",
	"https://www.googleapis.com/auth/userinfo.email",
}

// ServiceAccount mirrors the fields of a Firebase service account key file
type ServiceAccount struct {
	Type         string `json:"type" validate:"required,eq=service_account"`
	ProjectID    string `json:"project_id" validate:"required"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key" validate:"required,startswith=-----BEGIN"`
	ClientEmail  string `json:"client_email" validate:"required,email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri" validate:"omitempty,url"`
}

// ParseCredentials validates a service account key and turns it into google credentials
func ParseCredentials(ctx context.Context, data []byte) (*google.Credentials, error) {
	sa := new(ServiceAccount)
	if err := json.Unmarshal(data, sa); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(sa); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, credentialScopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	if creds.ProjectID == "" {
		creds.ProjectID = sa.ProjectID
	}

	return creds, nil
}

// LoadCredentials reads and parses the service account key file at path
func LoadCredentials(ctx context.Context, path string) (*google.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	return ParseCredentials(ctx, data)
}
