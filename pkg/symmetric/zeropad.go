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

// zeroPadLength returns the number of zero bytes needed to extend a message
// of total length n to a block boundary. Block-aligned input needs none —
// the native zero-padding mode gets exactly this case wrong by appending a
// spurious full block, which is why zero padding is emulated here instead
// of being delegated.
func zeroPadLength(n, blockSize int) int {
	return (blockSize - n%blockSize) % blockSize
}

// padZeros appends pad zero bytes to data without mutating the caller's
// slice. Zero padding is one-directional: it is not self-describing, so the
// decrypt path never strips it.
func padZeros(data []byte, pad int) []byte {
	if pad == 0 {
		return data
	}
	out := make([]byte, len(data)+pad)
	copy(out, data)
	return out
}
