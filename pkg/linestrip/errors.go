// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package linestrip

import "errors"

var (
	ErrInvalidRange      = errors.New("invalid line range")
	ErrNoRanges          = errors.New("no line ranges given")
	ErrLineCountMismatch = errors.New("unexpected line count")
	ErrInvalidEncoding   = errors.New("input is not valid UTF-8")
	ErrSameOutput        = errors.New("output path is the input path, use in-place mode instead")
	ErrUnknownPreset     = errors.New("unknown preset")
)
