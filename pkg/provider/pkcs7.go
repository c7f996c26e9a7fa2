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
	"bytes"
	"fmt"
)

// pkcs7Pad extends data to the next block boundary per PKCS#7. A full
// padding block is appended when the input is already aligned.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad validates and strips PKCS#7 padding from block-aligned data.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid PKCS7 padded length %d", ErrInvalidParameter, len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: invalid PKCS7 padding", ErrInvalidParameter)
	}
	for _, b := range data[len(data)-n:] {
		if b != byte(n) {
			return nil, fmt.Errorf("%w: invalid PKCS7 padding", ErrInvalidParameter)
		}
	}
	return data[:len(data)-n], nil
}
