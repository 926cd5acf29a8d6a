// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package authentication verifies Firebase ID tokens presented as bearer
// tokens and exposes the decoded claims to HTTP and gRPC handlers.
//
// The verifier is built once per process by an Initializer from a Firebase
// service account file. When the file is missing the process keeps running
// with a DisabledVerifier and every request is rejected with 401.
package authentication
