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
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-cipher/pkg/provider"
)

var (
	// ErrUnsupportedConfiguration is returned when an algorithm, mode and
	// padding combination is rejected at key construction time. This is a
	// permanent condition, never retried.
	ErrUnsupportedConfiguration = errors.New("symmetric: unsupported algorithm configuration")

	// ErrInvalidArgument is returned for caller errors: an IV supplied to a
	// mode that takes none, non-aligned input with no padding selected, or
	// key material rejected by the native engine.
	ErrInvalidArgument = errors.New("symmetric: invalid argument")

	// ErrIllegalState is returned when an operation is invoked in a state
	// that does not permit it, such as a one-shot encrypt on an
	// authenticated mode.
	ErrIllegalState = errors.New("symmetric: illegal state")

	// ErrAlgorithmUnavailable is returned when the native provider has no
	// engine for the requested cipher. Surfaced as "not supported", never
	// retried.
	ErrAlgorithmUnavailable = errors.New("symmetric: algorithm not supported by the native provider")

	// ErrKeyClosed is returned when a key is used after Close.
	ErrKeyClosed = errors.New("symmetric: key has been closed")
)

// ErrTransformFinalized is returned when a finalized transform is reused.
// Transforms are single-use; request a fresh one from the key.
var ErrTransformFinalized = fmt.Errorf("%w: transform already finalized", ErrIllegalState)

// translate maps provider error conditions onto the uniform taxonomy
// surfaced by this package. Authentication failures pass through so callers
// can distinguish a bad tag from a bad argument.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, provider.ErrInvalidKey), errors.Is(err, provider.ErrInvalidParameter):
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	case errors.Is(err, provider.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrAlgorithmUnavailable, err)
	case errors.Is(err, provider.ErrClosed):
		return fmt.Errorf("%w: %v", ErrKeyClosed, err)
	default:
		return err
	}
}
