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
	"github.com/jeremyhahn/go-cipher/pkg/provider"
	"github.com/jeremyhahn/go-cipher/pkg/types"
)

// Transform is a block-oriented streaming view over a cipher session. It
// borrows the session's engine but never owns it: closing a transform does
// not destroy the engine, which belongs to the parent key.
//
// A transform is single-use. Once Finalize has run, every further call
// returns ErrTransformFinalized and a fresh transform must be requested
// from the key. Transforms are not safe for concurrent use, and two
// transforms derived from the same direction of one key share mutable
// engine state.
type Transform struct {
	desc   Descriptor
	dir    provider.Direction
	engine provider.Engine
	fed    int
	done   bool
}

func newTransform(desc Descriptor, dir provider.Direction, engine provider.Engine) *Transform {
	return &Transform{desc: desc, dir: dir, engine: engine}
}

// InputBlockSize returns the chaining mode's block size in bytes, 1 for
// streaming modes.
func (t *Transform) InputBlockSize() int {
	return t.engine.BlockSize()
}

// OutputBlockSize returns the engine-reported output size for one input
// block, accounting for padding expansion and authentication tags.
func (t *Transform) OutputBlockSize() int {
	return t.engine.OutputSize(t.engine.BlockSize())
}

// Update feeds a chunk of arbitrary length and returns whatever output the
// engine can produce. It may be called any number of times; chunks need not
// be block-aligned.
func (t *Transform) Update(in []byte) ([]byte, error) {
	if t.done {
		return nil, ErrTransformFinalized
	}
	out, err := t.engine.Update(in)
	if err != nil {
		return nil, translate(err)
	}
	t.fed += len(in)
	return out, nil
}

// Finalize feeds the last chunk and completes the operation. For
// block-structured modes the engine's terminal transform processes the
// final bytes and validates or strips provider-applied padding; with Zeros
// padding on the encrypt path the input is first extended to a block
// boundary locally, since the engine is never asked to zero-pad. Streaming
// modes have no finalization semantics, so the chunk is fed through a plain
// update and the engine state is left intact for continuation.
func (t *Transform) Finalize(in []byte) ([]byte, error) {
	if t.done {
		return nil, ErrTransformFinalized
	}
	t.done = true

	if !t.desc.Mode.IsBlockStructured() {
		out, err := t.engine.Update(in)
		if err != nil {
			return nil, translate(err)
		}
		return out, nil
	}

	if t.dir == provider.DirectionEncrypt && t.desc.Padding == types.PaddingZeros {
		in = padZeros(in, zeroPadLength(t.fed+len(in), t.engine.BlockSize()))
	}

	out, err := t.engine.Finalize(in)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Close invalidates the transform handle. The shared engine is left
// untouched; it is owned by the key. Safe to call multiple times.
func (t *Transform) Close() error {
	t.done = true
	return nil
}
