// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-cipher.
//
// go-cipher is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package provider

import "errors"

var (
	// ErrUnavailable is returned when no engine exists for the requested
	// algorithm/mode combination. This is a permanent condition, never
	// retried.
	ErrUnavailable = errors.New("provider: algorithm unavailable")

	// ErrInvalidKey is returned when the key material is rejected by the
	// underlying cipher (wrong length for the algorithm).
	ErrInvalidKey = errors.New("provider: invalid key")

	// ErrInvalidParameter is returned for malformed engine parameters:
	// a wrong-sized IV, an IV supplied to a mode that takes none, or
	// non-aligned input with no padding selected.
	ErrInvalidParameter = errors.New("provider: invalid parameter")

	// ErrAuthFailed is returned when an authenticated mode fails tag
	// verification during Finalize.
	ErrAuthFailed = errors.New("provider: authentication failed")

	// ErrClosed is returned when an engine or secret is used after Close.
	ErrClosed = errors.New("provider: closed")
)
