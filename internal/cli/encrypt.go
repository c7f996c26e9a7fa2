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
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/jeremyhahn/go-cipher/pkg/symmetric"
	"github.com/spf13/cobra"
)

// streamChunkSize is the read granularity for streaming transforms.
const streamChunkSize = 32 * 1024

// encryptCmd encrypts a file or stdin with a stored key
var encryptCmd = &cobra.Command{
	Use:   "encrypt <key-name>",
	Short: "Encrypt data with a stored key",
	Long: `Encrypt a file (or stdin) with a named key from the keystore.
For modes that use an IV, a random IV is generated and written before
the ciphertext unless --iv supplies one explicitly.`,
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

		// With no explicit IV, mint a random one and prepend it so the
		// ciphertext is self-contained for decryption.
		prependIV := false
		if iv == nil && key.Mode().UsesIV() {
			iv = make([]byte, key.Mode().IVSize(key.Algorithm()))
			if _, err := rand.Read(iv); err != nil {
				handleError(fmt.Errorf("failed to generate IV: %w", err))
				return
			}
			prependIV = true
		}

		enc, err := key.NewEncrypter(iv)
		if err != nil {
			handleError(err)
			return
		}

		if prependIV {
			if _, err := out.Write(iv); err != nil {
				handleError(fmt.Errorf("failed to write IV: %w", err))
				return
			}
		}

		printVerbose("Encrypting with %s", key.Descriptor())
		if err := pump(in, out, enc); err != nil {
			handleError(err)
		}
	},
}

// loadKey opens the keystore and loads the named key.
func loadKey(cfg *Config, name, password string) (*symmetric.Key, error) {
	store, err := cfg.CreateStore()
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()
	return store.Load(name, []byte(password))
}

// openStreams resolves the input and output flags, defaulting to stdin and
// stdout.
func openStreams(inPath, outPath string) (io.ReadCloser, io.WriteCloser, error) {
	var in io.ReadCloser = os.Stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input: %w", err)
		}
		in = f
	}
	var out io.WriteCloser = os.Stdout
	if outPath != "" {
		f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			_ = in.Close()
			return nil, nil, fmt.Errorf("failed to open output: %w", err)
		}
		out = f
	}
	return in, out, nil
}

// decodeIV decodes the --iv flag. Empty means no explicit IV.
func decodeIV(ivHex string) ([]byte, error) {
	if ivHex == "" {
		return nil, nil
	}
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return nil, fmt.Errorf("invalid IV hex: %w", err)
	}
	return iv, nil
}

// pump streams all of in through the transform into out.
func pump(in io.Reader, out io.Writer, t *symmetric.Transform) error {
	buf := make([]byte, streamChunkSize)
	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			chunk, err := t.Update(buf[:n])
			if err != nil {
				return err
			}
			if _, err := out.Write(chunk); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
	}
	final, err := t.Finalize(nil)
	if err != nil {
		return err
	}
	if _, err := out.Write(final); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func init() {
	encryptCmd.Flags().StringP("in", "i", "", "input file (default stdin)")
	encryptCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	encryptCmd.Flags().String("iv", "", "explicit IV as hex (default: random, prepended to output)")
	encryptCmd.Flags().String("password", "", "password for protected keys")
}
