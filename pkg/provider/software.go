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

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rc4"
	"fmt"

	"github.com/jeremyhahn/go-cipher/pkg/types"
)

// Software is the software provider, backed by the Go runtime's cipher
// implementations. It supports:
//
//   - AES:  ECB, CBC, CFB, OFB, CTR, GCM
//   - DES / TripleDES: ECB, CBC, CFB, OFB, CTR
//   - RC4:  Stream
//
// RC2 and CCM have no software engine and surface ErrUnavailable.
type Software struct{}

// NewSoftware creates the software provider.
func NewSoftware() *Software {
	return &Software{}
}

// NewEngine creates a direction-specific engine for the given spec.
func (p *Software) NewEngine(spec Spec, dir Direction, secret *Secret, iv []byte) (Engine, error) {
	key, err := secret.material()
	if err != nil {
		return nil, err
	}

	if spec.PKCS7 && spec.Mode != types.ModeECB && spec.Mode != types.ModeCBC {
		return nil, fmt.Errorf("%w: PKCS7 padding is not defined for mode %s", ErrInvalidParameter, spec.Mode)
	}

	if !spec.Mode.UsesIV() {
		if len(iv) > 0 {
			return nil, fmt.Errorf("%w: mode %s does not take an IV", ErrInvalidParameter, spec.Mode)
		}
	} else if need := spec.Mode.IVSize(spec.Algorithm); len(iv) != need {
		return nil, fmt.Errorf("%w: mode %s requires a %d-byte IV, got %d", ErrInvalidParameter, spec.Mode, need, len(iv))
	}

	if spec.Algorithm == types.AlgorithmRC4 {
		if spec.Mode != types.ModeStream {
			return nil, fmt.Errorf("%w: %s supports stream mode only", ErrUnavailable, spec.Algorithm)
		}
		c, err := rc4.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return &streamEngine{stream: c}, nil
	}

	block, err := newBlockCipher(spec.Algorithm, key)
	if err != nil {
		return nil, err
	}

	switch spec.Mode {
	case types.ModeECB:
		return newECBEngine(block, dir, spec.PKCS7), nil
	case types.ModeCBC:
		var bm cipher.BlockMode
		if dir == DirectionEncrypt {
			bm = cipher.NewCBCEncrypter(block, iv)
		} else {
			bm = cipher.NewCBCDecrypter(block, iv)
		}
		return newBlockEngine(block.BlockSize(), dir, spec.PKCS7, bm.CryptBlocks), nil
	case types.ModeCFB:
		var stream cipher.Stream
		if dir == DirectionEncrypt {
			stream = cipher.NewCFBEncrypter(block, iv)
		} else {
			stream = cipher.NewCFBDecrypter(block, iv)
		}
		return &streamEngine{stream: stream}, nil
	case types.ModeOFB:
		return &streamEngine{stream: cipher.NewOFB(block, iv)}, nil
	case types.ModeCTR:
		return &streamEngine{stream: cipher.NewCTR(block, iv)}, nil
	case types.ModeGCM:
		if spec.Algorithm != types.AlgorithmAES {
			return nil, fmt.Errorf("%w: GCM requires a 128-bit block cipher", ErrUnavailable)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return newAEADEngine(aead, block.BlockSize(), dir, iv), nil
	case types.ModeCCM:
		return nil, fmt.Errorf("%w: no CCM engine", ErrUnavailable)
	case types.ModeStream:
		return nil, fmt.Errorf("%w: %s is not a stream cipher", ErrUnavailable, spec.Algorithm)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrUnavailable, spec.Mode)
	}
}

// newBlockCipher constructs the raw block cipher, translating key size
// rejections into ErrInvalidKey.
func newBlockCipher(alg types.Algorithm, key []byte) (cipher.Block, error) {
	var block cipher.Block
	var err error
	switch alg {
	case types.AlgorithmAES:
		block, err = aes.NewCipher(key)
	case types.AlgorithmDES:
		block, err = des.NewCipher(key)
	case types.AlgorithmTripleDES:
		block, err = des.NewTripleDESCipher(key)
	default:
		return nil, fmt.Errorf("%w: no engine for algorithm %q", ErrUnavailable, alg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return block, nil
}

// =============================================================================
// Block engine (ECB, CBC)
// =============================================================================

// blockEngine adapts a full-block transform into the incremental Engine
// interface. Input is buffered until complete blocks are available; with
// PKCS7 on the decrypt path the trailing block is always held back so the
// padding can be stripped in Finalize.
type blockEngine struct {
	bs     int
	dir    Direction
	pkcs7  bool
	crypt  func(dst, src []byte)
	buf    []byte
	closed bool
}

func newBlockEngine(bs int, dir Direction, pkcs7 bool, crypt func(dst, src []byte)) *blockEngine {
	return &blockEngine{bs: bs, dir: dir, pkcs7: pkcs7, crypt: crypt}
}

// newECBEngine iterates the raw block operation over the input. The standard
// library deliberately omits an ECB mode; block iteration is the codebook
// definition.
func newECBEngine(block cipher.Block, dir Direction, pkcs7 bool) *blockEngine {
	bs := block.BlockSize()
	crypt := func(dst, src []byte) {
		for i := 0; i < len(src); i += bs {
			if dir == DirectionEncrypt {
				block.Encrypt(dst[i:i+bs], src[i:i+bs])
			} else {
				block.Decrypt(dst[i:i+bs], src[i:i+bs])
			}
		}
	}
	return newBlockEngine(bs, dir, pkcs7, crypt)
}

func (e *blockEngine) BlockSize() int {
	return e.bs
}

func (e *blockEngine) OutputSize(n int) int {
	total := len(e.buf) + n
	if e.pkcs7 && e.dir == DirectionEncrypt {
		return total - total%e.bs + e.bs
	}
	if rem := total % e.bs; rem != 0 {
		total += e.bs - rem
	}
	return total
}

func (e *blockEngine) Update(in []byte) ([]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}
	e.buf = append(e.buf, in...)
	n := len(e.buf) - len(e.buf)%e.bs
	// Hold back the trailing complete block on PKCS7 decrypt; it may carry
	// the padding that Finalize must strip.
	if e.pkcs7 && e.dir == DirectionDecrypt && n == len(e.buf) && n > 0 {
		n -= e.bs
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	e.crypt(out, e.buf[:n])
	e.buf = append(e.buf[:0], e.buf[n:]...)
	return out, nil
}

func (e *blockEngine) Finalize(in []byte) ([]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}
	e.buf = append(e.buf, in...)
	if e.pkcs7 && e.dir == DirectionEncrypt {
		e.buf = pkcs7Pad(e.buf, e.bs)
	}
	if len(e.buf)%e.bs != 0 {
		return nil, fmt.Errorf("%w: input length %d is not a multiple of the block size %d",
			ErrInvalidParameter, len(e.buf), e.bs)
	}
	out := make([]byte, len(e.buf))
	e.crypt(out, e.buf)
	e.buf = e.buf[:0]
	if e.pkcs7 && e.dir == DirectionDecrypt {
		stripped, err := pkcs7Unpad(out, e.bs)
		if err != nil {
			return nil, err
		}
		out = stripped
	}
	return out, nil
}

func (e *blockEngine) Close() error {
	if e.closed {
		return nil
	}
	for i := range e.buf {
		e.buf[i] = 0
	}
	e.buf = nil
	e.closed = true
	return nil
}

// =============================================================================
// Stream engine (CFB, OFB, CTR, RC4)
// =============================================================================

// streamEngine wraps a keystream cipher. There is no block structure, no
// padding and no terminal semantics; Finalize is an Update and the engine
// remains usable, which is what allows streaming continuation across
// top-level calls.
type streamEngine struct {
	stream cipher.Stream
	closed bool
}

func (e *streamEngine) BlockSize() int {
	return 1
}

func (e *streamEngine) OutputSize(n int) int {
	return n
}

func (e *streamEngine) Update(in []byte) ([]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}
	out := make([]byte, len(in))
	e.stream.XORKeyStream(out, in)
	return out, nil
}

func (e *streamEngine) Finalize(in []byte) ([]byte, error) {
	return e.Update(in)
}

func (e *streamEngine) Close() error {
	e.closed = true
	return nil
}

// =============================================================================
// AEAD engine (GCM)
// =============================================================================

// aeadEngine buffers all input until Finalize; the underlying AEAD is a
// one-shot seal/open primitive, so incremental output is not possible and
// Update returns nothing.
type aeadEngine struct {
	aead   cipher.AEAD
	bs     int
	dir    Direction
	nonce  []byte
	buf    []byte
	closed bool
}

func newAEADEngine(aead cipher.AEAD, bs int, dir Direction, nonce []byte) *aeadEngine {
	n := make([]byte, len(nonce))
	copy(n, nonce)
	return &aeadEngine{aead: aead, bs: bs, dir: dir, nonce: n}
}

func (e *aeadEngine) BlockSize() int {
	return e.bs
}

func (e *aeadEngine) OutputSize(n int) int {
	total := len(e.buf) + n
	if e.dir == DirectionEncrypt {
		return total + e.aead.Overhead()
	}
	if total < e.aead.Overhead() {
		return 0
	}
	return total - e.aead.Overhead()
}

func (e *aeadEngine) Update(in []byte) ([]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}
	e.buf = append(e.buf, in...)
	return nil, nil
}

func (e *aeadEngine) Finalize(in []byte) ([]byte, error) {
	if e.closed {
		return nil, ErrClosed
	}
	e.buf = append(e.buf, in...)
	defer func() { e.buf = e.buf[:0] }()
	if e.dir == DirectionEncrypt {
		return e.aead.Seal(nil, e.nonce, e.buf, nil), nil
	}
	out, err := e.aead.Open(nil, e.nonce, e.buf, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	return out, nil
}

func (e *aeadEngine) Close() error {
	if e.closed {
		return nil
	}
	for i := range e.buf {
		e.buf[i] = 0
	}
	e.buf = nil
	e.closed = true
	return nil
}

// Verify interface compliance at compile time
var _ Provider = (*Software)(nil)
var _ Engine = (*blockEngine)(nil)
var _ Engine = (*streamEngine)(nil)
var _ Engine = (*aeadEngine)(nil)
