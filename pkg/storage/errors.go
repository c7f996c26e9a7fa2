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

package storage

import "errors"

var (
	// ErrNotFound is returned when the requested key does not exist.
	ErrNotFound = errors.New("storage: key not found")

	// ErrClosed is returned when the backend is used after Close.
	ErrClosed = errors.New("storage: backend is closed")

	// ErrInvalidKey is returned for malformed storage keys, such as an
	// empty name or a name that would escape the storage root.
	ErrInvalidKey = errors.New("storage: invalid key")
)
