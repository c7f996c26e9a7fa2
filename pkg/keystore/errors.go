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

package keystore

import "errors"

var (
	// ErrStoreClosed is returned when the keystore is used after Close.
	ErrStoreClosed = errors.New("keystore: store is closed")

	// ErrKeyNotFound is returned when the named key does not exist.
	ErrKeyNotFound = errors.New("keystore: key not found")

	// ErrKeyExists is returned when generating or saving a key under a name
	// that is already taken.
	ErrKeyExists = errors.New("keystore: key already exists")

	// ErrInvalidName is returned for empty or malformed key names.
	ErrInvalidName = errors.New("keystore: invalid key name")

	// ErrInvalidPassword is returned when a password-protected entry cannot
	// be unsealed with the supplied password.
	ErrInvalidPassword = errors.New("keystore: invalid password")

	// ErrCorruptEntry is returned when a stored entry cannot be decoded.
	ErrCorruptEntry = errors.New("keystore: corrupt key entry")
)
