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

// session is the per-direction cipher state of a key: a lazily created
// provider engine plus the descriptor it was built with. Sessions are owned
// by the key for its whole lifetime and are never shared between the
// encrypt and decrypt directions.
type session struct {
	dir    provider.Direction
	desc   Descriptor
	secret *provider.Secret
	prov   provider.Provider
	engine provider.Engine
}

func newSession(dir provider.Direction, desc Descriptor, secret *provider.Secret, prov provider.Provider) *session {
	return &session{dir: dir, desc: desc, secret: secret, prov: prov}
}

// acquire returns an engine ready for a new top-level operation. The engine
// is re-initialized when an explicit IV was supplied, when the mode does not
// support streaming continuation across independent calls, or on very first
// use. Engines hold mutable chaining state; reusing a stale one for modes
// without continuation support would corrupt output, while continuation-
// capable modes deliberately keep their state to stream across calls.
func (s *session) acquire(iv []byte) (provider.Engine, error) {
	if s.engine != nil && iv == nil && s.desc.Mode.SupportsContinuation() {
		return s.engine, nil
	}

	effective, err := s.resolveIV(iv)
	if err != nil {
		return nil, err
	}

	if s.engine != nil {
		_ = s.engine.Close()
		s.engine = nil
	}

	spec := provider.Spec{
		Algorithm: s.desc.Algorithm,
		Mode:      s.desc.Mode,
		PKCS7:     s.desc.Padding == types.PaddingPKCS7,
	}
	engine, err := s.prov.NewEngine(spec, s.dir, s.secret, effective)
	if err != nil {
		return nil, translate(err)
	}
	s.engine = engine
	return engine, nil
}

// resolveIV applies the IV defaulting and validation rules. Modes that use
// an IV default to a zero-filled buffer of the mode's IV size when the
// caller supplies none; supplying an IV to a mode that takes none is a
// caller error, and no IV buffer is constructed at all for those modes.
func (s *session) resolveIV(iv []byte) ([]byte, error) {
	if !s.desc.Mode.UsesIV() {
		if iv != nil {
			return nil, fmt.Errorf("%w: mode %s does not accept an IV", ErrInvalidArgument, s.desc.Mode)
		}
		return nil, nil
	}
	if iv == nil {
		return make([]byte, s.desc.Mode.IVSize(s.desc.Algorithm)), nil
	}
	// Length validation is the engine's job; it knows the exact nonce size.
	return iv, nil
}

// close releases the engine if one was ever created. Safe to call on a
// session whose engine was never initialized, and safe to call repeatedly.
func (s *session) close() error {
	if s.engine == nil {
		return nil
	}
	err := s.engine.Close()
	s.engine = nil
	return err
}
