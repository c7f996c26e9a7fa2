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

// Secret owns raw symmetric key material and hands it to engines. The bytes
// are defensively copied at construction and never mutated afterwards. No
// length restriction is enforced here; the cipher rejects invalid key sizes
// at engine construction time.
type Secret struct {
	key    []byte
	closed bool
}

// NewSecret wraps raw key bytes into a key handle. The byte sequence must be
// non-nil; a zero-length key is passed through and rejected later by the
// cipher itself.
func NewSecret(key []byte) (*Secret, error) {
	if key == nil {
		return nil, ErrInvalidKey
	}
	data := make([]byte, len(key))
	copy(data, key)
	return &Secret{key: data}, nil
}

// Len returns the key length in bytes.
func (s *Secret) Len() int {
	return len(s.key)
}

// Bits returns the key size in bits.
func (s *Secret) Bits() int {
	return len(s.key) * 8
}

// Close zeroizes and releases the key material. Safe to call multiple
// times; calls after the first are a no-op.
func (s *Secret) Close() error {
	if s.closed {
		return nil
	}
	for i := range s.key {
		s.key[i] = 0
	}
	s.key = nil
	s.closed = true
	return nil
}

// material returns the raw key bytes for engine construction.
func (s *Secret) material() ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return s.key, nil
}
