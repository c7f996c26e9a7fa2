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

package symmetric

import (
	"fmt"

	"github.com/jeremyhahn/go-cipher/pkg/provider"
	"github.com/jeremyhahn/go-cipher/pkg/types"
)

// Key aggregates a cipher identity with raw key material and owns up to two
// direction-specific cipher sessions, created on first use and retained for
// the key's lifetime.
//
// A Key is not reentrant: overlapping calls in the same direction, whether
// through the one-shot helpers or through transforms derived from the same
// session, share mutable engine state and are undefined. Serialize per
// direction externally, or use one key per concurrent stream.
type Key struct {
	desc   Descriptor
	secret *provider.Secret
	prov   provider.Provider
	enc    *session
	dec    *session
	closed bool
}

// NewKey constructs a symmetric key from an algorithm identity and raw key
// bytes. The triple is validated here — unsupported configurations fail at
// construction, not at first use. Key material must be non-nil; its length
// is validated by the native engine when the first cipher operation runs.
// A nil provider selects the software provider.
func NewKey(prov provider.Provider, alg types.Algorithm, mode types.Mode, padding types.Padding, key []byte) (*Key, error) {
	desc, err := Resolve(alg, mode, padding)
	if err != nil {
		return nil, err
	}
	if prov == nil {
		prov = provider.NewSoftware()
	}
	secret, err := provider.NewSecret(key)
	if err != nil {
		return nil, fmt.Errorf("%w: key material is required", ErrInvalidArgument)
	}
	return &Key{desc: desc, secret: secret, prov: prov}, nil
}

// Descriptor returns the validated cipher identity.
func (k *Key) Descriptor() Descriptor {
	return k.desc
}

// Algorithm returns the symmetric cipher family.
func (k *Key) Algorithm() types.Algorithm {
	return k.desc.Algorithm
}

// Mode returns the block-chaining mode.
func (k *Key) Mode() types.Mode {
	return k.desc.Mode
}

// Padding returns the padding scheme.
func (k *Key) Padding() types.Padding {
	return k.desc.Padding
}

// KeySize returns the key size in bits.
func (k *Key) KeySize() int {
	return k.secret.Bits()
}

// NewEncrypter returns a fresh single-use transform for the encrypt
// direction. A nil IV selects the mode's default (a zero-filled IV for
// modes that use one); passing an IV to a mode that takes none is an error.
func (k *Key) NewEncrypter(iv []byte) (*Transform, error) {
	return k.transform(provider.DirectionEncrypt, iv)
}

// NewDecrypter returns a fresh single-use transform for the decrypt
// direction.
func (k *Key) NewDecrypter(iv []byte) (*Transform, error) {
	return k.transform(provider.DirectionDecrypt, iv)
}

func (k *Key) transform(dir provider.Direction, iv []byte) (*Transform, error) {
	if k.closed {
		return nil, ErrKeyClosed
	}
	s := k.session(dir)
	engine, err := s.acquire(iv)
	if err != nil {
		return nil, err
	}
	return newTransform(k.desc, dir, engine), nil
}

// session returns the direction's session, creating it on first use.
func (k *Key) session(dir provider.Direction) *session {
	if dir == provider.DirectionEncrypt {
		if k.enc == nil {
			k.enc = newSession(dir, k.desc, k.secret, k.prov)
		}
		return k.enc
	}
	if k.dec == nil {
		k.dec = newSession(dir, k.desc, k.secret, k.prov)
	}
	return k.dec
}

// Encrypt encrypts a whole buffer in one call. Authenticated modes are
// rejected: tag handling requires the explicit streaming interface. With no
// padding selected, ECB/CBC input must be block-aligned and is rejected up
// front rather than surfacing an opaque engine error.
func (k *Key) Encrypt(plaintext, iv []byte) ([]byte, error) {
	if k.closed {
		return nil, ErrKeyClosed
	}
	if k.desc.Mode.IsAuthenticated() {
		return nil, fmt.Errorf("%w: one-shot encrypt is not defined for authenticated mode %s; use NewEncrypter and manage the tag",
			ErrIllegalState, k.desc.Mode)
	}
	if k.desc.Mode.RequiresAlignment() && k.desc.Padding == types.PaddingNone {
		if bs := k.desc.Algorithm.BlockSize(); len(plaintext)%bs != 0 {
			return nil, fmt.Errorf("%w: plaintext length %d is not a multiple of the block size %d and no padding is selected",
				ErrInvalidArgument, len(plaintext), bs)
		}
	}
	t, err := k.NewEncrypter(iv)
	if err != nil {
		return nil, err
	}
	return t.Finalize(plaintext)
}

// Decrypt decrypts a whole buffer in one call. Authenticated modes are
// rejected like in Encrypt. Decrypting a zero-length buffer returns a
// zero-length buffer: some native engines produce an absent result for
// empty input, and this normalization is mandatory.
func (k *Key) Decrypt(ciphertext, iv []byte) ([]byte, error) {
	if k.closed {
		return nil, ErrKeyClosed
	}
	if k.desc.Mode.IsAuthenticated() {
		return nil, fmt.Errorf("%w: one-shot decrypt is not defined for authenticated mode %s; use NewDecrypter and manage the tag",
			ErrIllegalState, k.desc.Mode)
	}
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	t, err := k.NewDecrypter(iv)
	if err != nil {
		return nil, err
	}
	out, err := t.Finalize(ciphertext)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// Close releases both direction sessions and the native key handle. Safe on
// a key whose sessions were never created, and safe to call multiple times.
func (k *Key) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true
	var firstErr error
	if k.enc != nil {
		if err := k.enc.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if k.dec != nil {
		if err := k.dec.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := k.secret.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
