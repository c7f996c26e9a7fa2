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

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// decryptCmd decrypts a file or stdin with a stored key
var decryptCmd = &cobra.Command{
	Use:   "decrypt <key-name>",
	Short: "Decrypt data with a stored key",
	Long: `Decrypt a file (or stdin) with a named key from the keystore.
For modes that use an IV, the IV is read from the start of the input
unless --iv supplies one explicitly.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()

		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")
		ivHex, _ := cmd.Flags().GetString("iv")
		password, _ := cmd.Flags().GetString("password")

		key, err := loadKey(cfg, args[0], password)
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = key.Close() }()

		in, out, err := openStreams(inPath, outPath)
		if err != nil {
			handleError(err)
			return
		}
		defer in.Close()
		defer out.Close()

		iv, err := decodeIV(ivHex)
		if err != nil {
			handleError(err)
			return
		}

		// With no explicit IV, the encrypt command wrote the IV ahead of
		// the ciphertext.
		if iv == nil && key.Mode().UsesIV() {
			iv = make([]byte, key.Mode().IVSize(key.Algorithm()))
			if _, err := io.ReadFull(in, iv); err != nil {
				handleError(fmt.Errorf("failed to read IV from input: %w", err))
				return
			}
		}

		dec, err := key.NewDecrypter(iv)
		if err != nil {
			handleError(err)
			return
		}

		printVerbose("Decrypting with %s", key.Descriptor())
		if err := pump(in, out, dec); err != nil {
			handleError(err)
		}
	},
}

func init() {
	decryptCmd.Flags().StringP("in", "i", "", "input file (default stdin)")
	decryptCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	decryptCmd.Flags().String("iv", "", "explicit IV as hex (default: read from input)")
	decryptCmd.Flags().String("password", "", "password for protected keys")
}
