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

// Package symmetric provides a uniform symmetric-encryption abstraction: an
// addressable cipher identity (algorithm, chaining mode, padding scheme)
// resolved at key construction, per-direction cipher sessions with IV
// defaulting and re-initialization, an incremental block-oriented transform
// interface, and one-shot Encrypt/Decrypt helpers. The actual transforms
// are delegated to a provider engine; this layer manages identity, lifetime
// and the behavioral normalizations the engines do not give us.
package symmetric

import (
	"fmt"

	"github.com/jeremyhahn/go-cipher/pkg/types"
)

// Descriptor is a validated cipher identity. Descriptors are only produced
// by Resolve; holding one means the triple passed construction-time
// validation.
type Descriptor struct {
	Algorithm types.Algorithm
	Mode      types.Mode
	Padding   types.Padding
}

// Resolve validates an (algorithm, mode, padding) triple and returns its
// descriptor. All rejections here are permanent configuration errors that
// surface at key construction, not at first use:
//
//   - unknown algorithm, mode or padding
//   - a stream-only algorithm outside stream mode, or stream mode on a
//     block algorithm
//   - GCM/CCM with an algorithm other than AES; the authenticated modes
//     are defined over a 128-bit block cipher
//   - PKCS7/Zeros padding with a mode that has no padding semantics
//     (keystream, authenticated and stream modes take NoPadding only)
//   - AES/CCM/NoPadding, which corrupts authenticated ciphertext in the
//     native engine and is rejected unconditionally
func Resolve(alg types.Algorithm, mode types.Mode, padding types.Padding) (Descriptor, error) {
	if types.ParseAlgorithm(string(alg)) != alg || alg == "" {
		return Descriptor{}, fmt.Errorf("%w: unknown algorithm %q", ErrUnsupportedConfiguration, alg)
	}
	if types.ParseMode(string(mode)) != mode || mode == "" {
		return Descriptor{}, fmt.Errorf("%w: unknown mode %q", ErrUnsupportedConfiguration, mode)
	}
	switch padding {
	case types.PaddingNone, types.PaddingPKCS7, types.PaddingZeros:
	default:
		return Descriptor{}, fmt.Errorf("%w: unknown padding %q", ErrUnsupportedConfiguration, padding)
	}

	if alg.IsStreamOnly() != (mode == types.ModeStream) {
		return Descriptor{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedConfiguration, alg, mode)
	}

	if mode.IsAuthenticated() && alg != types.AlgorithmAES {
		return Descriptor{}, fmt.Errorf("%w: %s requires a 128-bit block cipher, %s has a %d-byte block",
			ErrUnsupportedConfiguration, mode, alg, alg.BlockSize())
	}

	if padding != types.PaddingNone && !mode.RequiresAlignment() {
		return Descriptor{}, fmt.Errorf("%w: padding %s is not defined for mode %s",
			ErrUnsupportedConfiguration, padding, mode)
	}

	// AES/CCM with no padding corrupts the authenticated ciphertext in the
	// native engine. Permanent rejection; must never reach first use.
	if alg == types.AlgorithmAES && mode == types.ModeCCM && padding == types.PaddingNone {
		return Descriptor{}, fmt.Errorf("%w: AES/CCM/NoPadding produces corrupt ciphertext in the native engine",
			ErrUnsupportedConfiguration)
	}

	return Descriptor{Algorithm: alg, Mode: mode, Padding: padding}, nil
}

// Transformation returns the provider-addressable identifier string,
// <algorithm>/<mode>/<paddingLabel> for block-structured modes. Stream
// modes have no chaining or padding segment. Zeros padding carries the
// no-padding label: it is applied locally, never told to the engine.
func (d Descriptor) Transformation() string {
	if !d.Mode.IsBlockStructured() {
		return d.Algorithm.String()
	}
	return fmt.Sprintf("%s/%s/%s", d.Algorithm, d.Mode, d.Padding.Label())
}

// String returns the transformation identifier.
func (d Descriptor) String() string {
	return d.Transformation()
}
