// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

type VerifierStatusInterface interface {
	Initialized() bool
}
