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

// Package provider is the boundary to the native cryptographic engines.
// The cipher core above it never performs a block transform itself; it asks
// a Provider for an Engine bound to a direction, a key handle and an IV, and
// feeds data through Update/Finalize. The software provider in this package
// delegates to the Go runtime's cipher implementations.
package provider

import "github.com/jeremyhahn/go-cipher/pkg/types"

// Direction selects the transform direction an engine is initialized for.
// Engines are never shared between directions.
type Direction int

const (
	// DirectionEncrypt initializes an engine for encryption.
	DirectionEncrypt Direction = iota

	// DirectionDecrypt initializes an engine for decryption.
	DirectionDecrypt
)

// String returns the string representation.
func (d Direction) String() string {
	if d == DirectionEncrypt {
		return "encrypt"
	}
	return "decrypt"
}

// Spec identifies the engine to construct. It is the compile-time-checked
// replacement for lookup-by-identifier-string: the cipher core validates the
// (algorithm, mode, padding) triple at key construction and hands the
// provider a closed descriptor. PKCS7 is the only padding a provider is ever
// asked to perform; zero padding is emulated above this boundary.
type Spec struct {
	// Algorithm is the symmetric cipher family.
	Algorithm types.Algorithm

	// Mode is the block-chaining discipline.
	Mode types.Mode

	// PKCS7 requests provider-side PKCS#7 padding. Only meaningful for
	// ECB and CBC.
	PKCS7 bool
}

// Engine is a direction-specific native cipher instance. Engines hold
// mutable chaining state and are not safe for concurrent use. An engine is
// consumed by Finalize unless its mode supports streaming continuation, in
// which case Finalize behaves like Update and the engine remains usable.
type Engine interface {
	// BlockSize returns the engine's unit of operation in bytes: the cipher
	// block size for block-aligned modes (ECB, CBC, GCM), 1 for keystream
	// and stream modes.
	BlockSize() int

	// OutputSize returns the maximum output length produced when n more
	// input bytes are fed and the transform is finalized. Accounts for
	// buffered input, padding expansion and authentication tags.
	OutputSize(n int) int

	// Update feeds a chunk of arbitrary length and returns any output that
	// can be produced without seeing further input.
	Update(in []byte) ([]byte, error)

	// Finalize feeds the last chunk, flushes buffered input, applies or
	// strips provider-side padding and verifies authentication tags.
	Finalize(in []byte) ([]byte, error)

	// Close releases the engine. Safe to call multiple times.
	Close() error
}

// Provider constructs engines for cipher descriptors.
type Provider interface {
	// NewEngine creates an engine for the given spec, direction, key and IV.
	// Returns ErrUnavailable when no engine exists for the spec,
	// ErrInvalidKey when the key material is rejected by the cipher, and
	// ErrInvalidParameter for a malformed IV.
	NewEngine(spec Spec, dir Direction, secret *Secret, iv []byte) (Engine, error)
}
