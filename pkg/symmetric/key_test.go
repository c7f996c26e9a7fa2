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
	"bytes"
	"errors"
	"testing"

	"github.com/jeremyhahn/go-cipher/pkg/types"
)

func mustKey(t *testing.T, alg types.Algorithm, mode types.Mode, padding types.Padding, keyData []byte) *Key {
	t.Helper()
	key, err := NewKey(nil, alg, mode, padding, keyData)
	if err != nil {
		t.Fatalf("NewKey(%s, %s, %s) failed: %v", alg, mode, padding, err)
	}
	t.Cleanup(func() { _ = key.Close() })
	return key
}

func TestNewKey(t *testing.T) {
	tests := []struct {
		name      string
		algorithm types.Algorithm
		mode      types.Mode
		padding   types.Padding
		keyData   []byte
		wantErr   error
	}{
		{"AES-256 GCM", types.AlgorithmAES, types.ModeGCM, types.PaddingNone, make([]byte, 32), nil},
		{"nil key material", types.AlgorithmAES, types.ModeGCM, types.PaddingNone, nil, ErrInvalidArgument},
		{"unsupported triple", types.AlgorithmAES, types.ModeCTR, types.PaddingPKCS7, make([]byte, 32), ErrUnsupportedConfiguration},
		{"defect triple", types.AlgorithmAES, types.ModeCCM, types.PaddingNone, make([]byte, 32), ErrUnsupportedConfiguration},
		// Authenticated modes over a 64-bit block cipher must fail at
		// construction, not at first use.
		{"GCM on DES", types.AlgorithmDES, types.ModeGCM, types.PaddingNone, make([]byte, 8), ErrUnsupportedConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewKey(nil, tt.algorithm, tt.mode, tt.padding, tt.keyData)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewKey() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewKey() failed: %v", err)
			}
			defer func() { _ = key.Close() }()
			if key.Algorithm() != tt.algorithm || key.Mode() != tt.mode || key.Padding() != tt.padding {
				t.Error("key accessors do not match the construction triple")
			}
			if key.KeySize() != len(tt.keyData)*8 {
				t.Errorf("KeySize() = %d, want %d", key.KeySize(), len(tt.keyData)*8)
			}
		})
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	aligned := make([]byte, 32)
	copy(aligned, "exactly thirty-two bytes long!!!")

	tests := []struct {
		name      string
		algorithm types.Algorithm
		mode      types.Mode
		padding   types.Padding
		keySize   int
		plaintext []byte
	}{
		{"AES-128 ECB PKCS7", types.AlgorithmAES, types.ModeECB, types.PaddingPKCS7, 16, plaintext},
		{"AES-256 CBC PKCS7", types.AlgorithmAES, types.ModeCBC, types.PaddingPKCS7, 32, plaintext},
		{"AES-256 CBC NoPadding aligned", types.AlgorithmAES, types.ModeCBC, types.PaddingNone, 32, aligned},
		{"AES-192 CFB", types.AlgorithmAES, types.ModeCFB, types.PaddingNone, 24, plaintext},
		{"AES-256 OFB", types.AlgorithmAES, types.ModeOFB, types.PaddingNone, 32, plaintext},
		{"AES-256 CTR", types.AlgorithmAES, types.ModeCTR, types.PaddingNone, 32, plaintext},
		{"DES CBC PKCS7", types.AlgorithmDES, types.ModeCBC, types.PaddingPKCS7, 8, plaintext},
		{"3DES CBC PKCS7", types.AlgorithmTripleDES, types.ModeCBC, types.PaddingPKCS7, 24, plaintext},
		{"3DES CTR", types.AlgorithmTripleDES, types.ModeCTR, types.PaddingNone, 24, plaintext},
		{"RC4", types.AlgorithmRC4, types.ModeStream, types.PaddingNone, 16, plaintext},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := mustKey(t, tt.algorithm, tt.mode, tt.padding, make([]byte, tt.keySize))
			ciphertext, err := key.Encrypt(tt.plaintext, nil)
			if err != nil {
				t.Fatalf("Encrypt() failed: %v", err)
			}
			if bytes.Equal(ciphertext, tt.plaintext) {
				t.Error("ciphertext equals plaintext")
			}
			back, err := key.Decrypt(ciphertext, nil)
			if err != nil {
				t.Fatalf("Decrypt() failed: %v", err)
			}
			if !bytes.Equal(back, tt.plaintext) {
				t.Errorf("round trip = %q, want %q", back, tt.plaintext)
			}
		})
	}
}

// Omitting the IV must select a zero-filled IV, not a random one.
func TestDefaultIVIsZero(t *testing.T) {
	key := mustKey(t, types.AlgorithmAES, types.ModeCBC, types.PaddingPKCS7, make([]byte, 32))
	plaintext := []byte("deterministic under the default IV")

	implicit, err := key.Encrypt(plaintext, nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	explicit, err := key.Encrypt(plaintext, make([]byte, 16))
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if !bytes.Equal(implicit, explicit) {
		t.Error("nil IV and explicit zero IV produced different ciphertext")
	}
}

// Block-chained modes must re-initialize between top-level calls: each
// Encrypt stands alone rather than continuing the previous chaining state.
func TestChainedModeReinitializes(t *testing.T) {
	key := mustKey(t, types.AlgorithmAES, types.ModeCBC, types.PaddingPKCS7, make([]byte, 32))
	plaintext := []byte("same input, same output")

	first, err := key.Encrypt(plaintext, nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	second, err := key.Encrypt(plaintext, nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated Encrypt() calls differ; chaining state leaked across calls")
	}
}

// Stream ciphers keep their keystream position across top-level calls, so
// encrypting in pieces equals encrypting the concatenation.
func TestStreamContinuation(t *testing.T) {
	keyData := []byte("sixteen byte key")
	plaintext := []byte("split across two independent calls")

	whole := mustKey(t, types.AlgorithmRC4, types.ModeStream, types.PaddingNone, keyData)
	want, err := whole.Encrypt(plaintext, nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}

	pieces := mustKey(t, types.AlgorithmRC4, types.ModeStream, types.PaddingNone, keyData)
	first, err := pieces.Encrypt(plaintext[:12], nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	second, err := pieces.Encrypt(plaintext[12:], nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if !bytes.Equal(append(first, second...), want) {
		t.Error("piecewise encryption differs from one-shot encryption")
	}
}

func TestEncryptErrors(t *testing.T) {
	t.Run("IV on mode without IV", func(t *testing.T) {
		key := mustKey(t, types.AlgorithmAES, types.ModeECB, types.PaddingPKCS7, make([]byte, 16))
		_, err := key.Encrypt([]byte("data"), make([]byte, 16))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Encrypt() error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("unaligned input without padding", func(t *testing.T) {
		key := mustKey(t, types.AlgorithmAES, types.ModeCBC, types.PaddingNone, make([]byte, 32))
		_, err := key.Encrypt([]byte("unaligned"), nil)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Encrypt() error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("one-shot on authenticated mode", func(t *testing.T) {
		key := mustKey(t, types.AlgorithmAES, types.ModeGCM, types.PaddingNone, make([]byte, 32))
		if _, err := key.Encrypt([]byte("data"), nil); !errors.Is(err, ErrIllegalState) {
			t.Errorf("Encrypt() error = %v, want ErrIllegalState", err)
		}
		if _, err := key.Decrypt([]byte("data"), nil); !errors.Is(err, ErrIllegalState) {
			t.Errorf("Decrypt() error = %v, want ErrIllegalState", err)
		}
	})

	t.Run("wrong key size surfaces at first use", func(t *testing.T) {
		key := mustKey(t, types.AlgorithmAES, types.ModeCBC, types.PaddingPKCS7, make([]byte, 13))
		_, err := key.Encrypt([]byte("data"), nil)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Encrypt() error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("engineless algorithm surfaces at first use", func(t *testing.T) {
		key := mustKey(t, types.AlgorithmRC2, types.ModeCBC, types.PaddingPKCS7, make([]byte, 16))
		_, err := key.Encrypt([]byte("data"), nil)
		if !errors.Is(err, ErrAlgorithmUnavailable) {
			t.Errorf("Encrypt() error = %v, want ErrAlgorithmUnavailable", err)
		}
	})
}

// Decrypting a zero-length buffer returns an empty, non-nil result.
func TestDecryptEmpty(t *testing.T) {
	key := mustKey(t, types.AlgorithmAES, types.ModeCBC, types.PaddingPKCS7, make([]byte, 32))
	out, err := key.Decrypt([]byte{}, nil)
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if out == nil {
		t.Fatal("Decrypt() of empty input returned nil, want empty slice")
	}
	if len(out) != 0 {
		t.Errorf("Decrypt() of empty input = %d bytes, want 0", len(out))
	}
}

// Zero padding extends to the block boundary on encrypt and is never
// stripped on decrypt.
func TestZeroPadding(t *testing.T) {
	key := mustKey(t, types.AlgorithmAES, types.ModeCBC, types.PaddingZeros, make([]byte, 32))
	plaintext := []byte("hello")

	ciphertext, err := key.Encrypt(plaintext, nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if len(ciphertext) != 16 {
		t.Errorf("ciphertext length = %d, want 16", len(ciphertext))
	}

	back, err := key.Decrypt(ciphertext, nil)
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	want := make([]byte, 16)
	copy(want, plaintext)
	if !bytes.Equal(back, want) {
		t.Errorf("Decrypt() = %v, want plaintext with trailing zeros intact", back)
	}
}

// Aligned input takes no zero padding at all; ciphertext length equals
// plaintext length.
func TestZeroPaddingAligned(t *testing.T) {
	key := mustKey(t, types.AlgorithmAES, types.ModeCBC, types.PaddingZeros, make([]byte, 32))
	plaintext := make([]byte, 48)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}

	ciphertext, err := key.Encrypt(plaintext, nil)
	if err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if len(ciphertext) != len(plaintext) {
		t.Errorf("ciphertext length = %d, want %d", len(ciphertext), len(plaintext))
	}
	back, err := key.Decrypt(ciphertext, nil)
	if err != nil {
		t.Fatalf("Decrypt() failed: %v", err)
	}
	if !bytes.Equal(back, plaintext) {
		t.Error("aligned zero-padding round trip did not restore the plaintext")
	}
}

func TestKeyClose(t *testing.T) {
	key, err := NewKey(nil, types.AlgorithmAES, types.ModeCBC, types.PaddingPKCS7, make([]byte, 32))
	if err != nil {
		t.Fatalf("NewKey() failed: %v", err)
	}
	if _, err := key.Encrypt([]byte("data"), nil); err != nil {
		t.Fatalf("Encrypt() failed: %v", err)
	}
	if err := key.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := key.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if _, err := key.Encrypt([]byte("data"), nil); !errors.Is(err, ErrKeyClosed) {
		t.Errorf("Encrypt() after Close error = %v, want ErrKeyClosed", err)
	}
	if _, err := key.Decrypt([]byte("data"), nil); !errors.Is(err, ErrKeyClosed) {
		t.Errorf("Decrypt() after Close error = %v, want ErrKeyClosed", err)
	}
	if _, err := key.NewEncrypter(nil); !errors.Is(err, ErrKeyClosed) {
		t.Errorf("NewEncrypter() after Close error = %v, want ErrKeyClosed", err)
	}
}

// Close on a key whose sessions were never created must succeed.
func TestKeyCloseUnused(t *testing.T) {
	key, err := NewKey(nil, types.AlgorithmAES, types.ModeGCM, types.PaddingNone, make([]byte, 32))
	if err != nil {
		t.Fatalf("NewKey() failed: %v", err)
	}
	if err := key.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}
