// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotInitialized     = errors.New("firebase verifier is not initialized")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrInvalidCredentials = errors.New("invalid service account credentials")
)

const (
	notAuthenticatedDetail    = "Not authenticated"
	invalidCredentialsMessage = "Invalid authentication credentials"
)

// AuthError is the only failure Authenticate returns, it always maps to a 401
type AuthError struct {
	Status int
	Detail string

	err error
}

func (e *AuthError) Error() string {
	return e.Detail
}

func (e *AuthError) Unwrap() error {
	return e.err
}

// Headers returns the headers to send along with the rejection
func (e *AuthError) Headers() map[string]string {
	return map[string]string{"WWW-Authenticate": "Bearer"}
}

func newMissingTokenError() *AuthError {
	return &AuthError{
		Status: http.StatusUnauthorized,
		Detail: notAuthenticatedDetail,
		err:    ErrMissingToken,
	}
}

func newInvalidTokenError(err error) *AuthError {
	return &AuthError{
		Status: http.StatusUnauthorized,
		Detail: fmt.Sprintf("%s: %s", invalidCredentialsMessage, err.Error()),
		err:    err,
	}
}
