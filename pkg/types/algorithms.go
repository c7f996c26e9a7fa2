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

// Package types defines the symmetric cipher identity enums shared by the
// cipher core, the native provider and the CLI. An addressable cipher is the
// triple (Algorithm, Mode, Padding); the enums here carry the derived
// properties (IV usage, authentication, block structure, streaming
// continuation) that the rest of the codebase keys off.
package types

import "strings"

// =============================================================================
// Symmetric Algorithm Constants
// =============================================================================

// Algorithm represents a symmetric cipher family.
type Algorithm string

const (
	// AlgorithmAES is the AES block cipher (128/192/256-bit keys).
	AlgorithmAES Algorithm = "AES"

	// AlgorithmDES is single DES (legacy, 64-bit keys).
	AlgorithmDES Algorithm = "DES"

	// AlgorithmTripleDES is triple DES (EDE, 192-bit keys).
	// The identifier uses the JCE-style "DESede" spelling.
	AlgorithmTripleDES Algorithm = "DESede"

	// AlgorithmRC2 is the RC2 block cipher (legacy). No software engine is
	// available for it; requesting RC2 surfaces an algorithm-unavailable
	// error from the provider.
	AlgorithmRC2 Algorithm = "RC2"

	// AlgorithmRC4 is the RC4 stream cipher (legacy). Stream-mode only.
	AlgorithmRC4 Algorithm = "RC4"
)

// String returns the string representation.
func (a Algorithm) String() string {
	return string(a)
}

// Lower returns the lowercase form of the algorithm name.
func (a Algorithm) Lower() string {
	return strings.ToLower(string(a))
}

// Equals performs case-insensitive comparison for protocol compatibility.
func (a Algorithm) Equals(s string) bool {
	return strings.EqualFold(string(a), s)
}

// BlockSize returns the cipher block size in bytes, or 1 for stream-only
// algorithms.
func (a Algorithm) BlockSize() int {
	switch a {
	case AlgorithmAES:
		return 16
	case AlgorithmDES, AlgorithmTripleDES, AlgorithmRC2:
		return 8
	default:
		return 1
	}
}

// IsStreamOnly returns true for algorithms that have no block structure and
// can only be used with ModeStream.
func (a Algorithm) IsStreamOnly() bool {
	return a == AlgorithmRC4
}

// =============================================================================
// Chaining Mode Constants
// =============================================================================

// Mode represents a block-chaining discipline.
type Mode string

const (
	// ModeECB is Electronic Codebook (no IV, no chaining).
	ModeECB Mode = "ECB"

	// ModeCBC is Cipher Block Chaining.
	ModeCBC Mode = "CBC"

	// ModeCFB is Cipher Feedback (full-block feedback).
	ModeCFB Mode = "CFB"

	// ModeOFB is Output Feedback.
	ModeOFB Mode = "OFB"

	// ModeCTR is Counter mode.
	ModeCTR Mode = "CTR"

	// ModeGCM is Galois/Counter Mode (authenticated).
	ModeGCM Mode = "GCM"

	// ModeCCM is Counter with CBC-MAC (authenticated).
	ModeCCM Mode = "CCM"

	// ModeStream is the "no chaining" discipline used by stream ciphers.
	// The mode segment is omitted from the cipher identifier.
	ModeStream Mode = "Stream"
)

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Lower returns the lowercase form of the mode name.
func (m Mode) Lower() string {
	return strings.ToLower(string(m))
}

// Equals performs case-insensitive comparison for protocol compatibility.
func (m Mode) Equals(s string) bool {
	return strings.EqualFold(string(m), s)
}

// UsesIV returns true when an initialization vector (or nonce) is meaningful
// for the mode. Supplying an IV to a mode that does not use one is a caller
// error.
func (m Mode) UsesIV() bool {
	switch m {
	case ModeCBC, ModeCFB, ModeOFB, ModeCTR, ModeGCM, ModeCCM:
		return true
	default:
		return false
	}
}

// IsAuthenticated returns true for modes that produce and verify an
// integrity tag.
func (m Mode) IsAuthenticated() bool {
	return m == ModeGCM || m == ModeCCM
}

// IsBlockStructured returns true for modes operating on cipher blocks.
// Stream mode has no block structure; its identifier omits the mode and
// padding segments and its transforms report a one-byte block size.
func (m Mode) IsBlockStructured() bool {
	return m != ModeStream
}

// RequiresAlignment returns true for modes whose input must be a multiple of
// the cipher block size unless a padding scheme extends it. Keystream modes
// (CFB, OFB, CTR) and authenticated modes accept arbitrary lengths.
func (m Mode) RequiresAlignment() bool {
	return m == ModeECB || m == ModeCBC
}

// SupportsContinuation reports whether engine state may be carried across
// independent top-level calls without re-initialization. Chained block
// engines hold mutable state (chaining blocks, counters) that would corrupt
// output if silently reused, so only the stream discipline qualifies.
func (m Mode) SupportsContinuation() bool {
	return m == ModeStream
}

// IVSize returns the IV or nonce length in bytes for the mode when applied
// to the given algorithm. Returns 0 for modes that take no IV.
func (m Mode) IVSize(a Algorithm) int {
	switch m {
	case ModeCBC, ModeCFB, ModeOFB, ModeCTR:
		return a.BlockSize()
	case ModeGCM, ModeCCM:
		return 12
	default:
		return 0
	}
}

// =============================================================================
// Padding Scheme Constants
// =============================================================================

// Padding represents a padding scheme for block-structured modes.
type Padding string

const (
	// PaddingNone performs no padding; ECB/CBC input must be block-aligned.
	PaddingNone Padding = "NoPadding"

	// PaddingPKCS7 is PKCS#7 padding, applied and stripped by the provider.
	PaddingPKCS7 Padding = "PKCS7"

	// PaddingZeros pads with zero bytes up to the next block boundary.
	// Zeros is emulated locally on the encrypt path and is never delegated
	// to the provider; it is not self-describing and is never stripped.
	PaddingZeros Padding = "Zeros"
)

// String returns the string representation.
func (p Padding) String() string {
	return string(p)
}

// Lower returns the lowercase form of the padding name.
func (p Padding) Lower() string {
	return strings.ToLower(string(p))
}

// Equals performs case-insensitive comparison for protocol compatibility.
func (p Padding) Equals(s string) bool {
	return strings.EqualFold(string(p), s)
}

// Label returns the padding label used in provider-facing cipher
// identifiers. Zeros maps to the no-padding label because the provider is
// never asked to pad with zeros.
func (p Padding) Label() string {
	if p == PaddingPKCS7 {
		return "PKCS7Padding"
	}
	return "NoPadding"
}

// =============================================================================
// Parsing Helpers
// =============================================================================

// ParseAlgorithm converts a string to an Algorithm. Returns "" for unknown
// input.
func ParseAlgorithm(s string) Algorithm {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aes":
		return AlgorithmAES
	case "des":
		return AlgorithmDES
	case "desede", "3des", "tripledes", "des3":
		return AlgorithmTripleDES
	case "rc2":
		return AlgorithmRC2
	case "rc4", "arcfour":
		return AlgorithmRC4
	default:
		return ""
	}
}

// ParseMode converts a string to a Mode. Returns "" for unknown input.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ecb":
		return ModeECB
	case "cbc":
		return ModeCBC
	case "cfb":
		return ModeCFB
	case "ofb":
		return ModeOFB
	case "ctr":
		return ModeCTR
	case "gcm":
		return ModeGCM
	case "ccm":
		return ModeCCM
	case "stream", "none":
		return ModeStream
	default:
		return ""
	}
}

// ParsePadding converts a string to a Padding. Returns "" for unknown input.
func ParsePadding(s string) Padding {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nopadding", "none", "no":
		return PaddingNone
	case "pkcs7", "pkcs5", "pkcs7padding":
		return PaddingPKCS7
	case "zeros", "zero", "zeropadding":
		return PaddingZeros
	default:
		return ""
	}
}
