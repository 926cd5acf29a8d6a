// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package linestrip removes fixed line ranges from text files.
//
// Ranges are positional: they are not checked against the content they are
// meant to remove, so running a strip twice over its own output removes
// different lines. Options.ExpectLines guards against stripping a file that
// changed since the ranges were computed.
package linestrip
