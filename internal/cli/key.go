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
	"os"
	"text/tabwriter"

	"github.com/jeremyhahn/go-cipher/pkg/symmetric"
	"github.com/jeremyhahn/go-cipher/pkg/types"
	"github.com/spf13/cobra"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage symmetric keys",
	Long:  `Generate, list, inspect and delete symmetric keys in the keystore`,
}

// keyGenerateCmd generates a new key
var keyGenerateCmd = &cobra.Command{
	Use:   "generate <key-name>",
	Short: "Generate a new symmetric key",
	Long:  `Generate a new symmetric key with the given cipher configuration`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := getConfig()

		algorithm, _ := cmd.Flags().GetString("algorithm")
		mode, _ := cmd.Flags().GetString("mode")
		padding, _ := cmd.Flags().GetString("padding")
		size, _ := cmd.Flags().GetInt("size")
		password, _ := cmd.Flags().GetString("password")

		alg, m, p, err := parseCipherFlags(cfg, algorithm, mode, padding)
		if err != nil {
			handleError(err)
			return
		}

		store, err := cfg.CreateStore()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = store.Close() }()

		printVerbose("Generating %s/%s/%s key: %s", alg, m, p, name)

		key, err := store.Generate(name, alg, m, p, size, []byte(password))
		if err != nil {
			handleError(fmt.Errorf("failed to generate key: %w", err))
			return
		}
		defer func() { _ = key.Close() }()

		fmt.Printf("Generated %d-bit key %q (%s)\n", key.KeySize(), name, key.Descriptor())
	},
}

// keyListCmd lists all keys
var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all keys",
	Long:  `List all symmetric keys in the keystore`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()

		store, err := cfg.CreateStore()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = store.Close() }()

		entries, err := store.List()
		if err != nil {
			handleError(fmt.Errorf("failed to list keys: %w", err))
			return
		}
		if len(entries) == 0 {
			fmt.Println("No keys found")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCIPHER\tPROTECTED")
		for _, entry := range entries {
			desc, err := symmetric.Resolve(entry.Algorithm, entry.Mode, entry.Padding)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%v\n", entry.Name, desc.Transformation(), entry.Protected)
		}
		if err := w.Flush(); err != nil {
			handleError(err)
		}
	},
}

// keyInfoCmd shows metadata for one key
var keyInfoCmd = &cobra.Command{
	Use:   "info <key-name>",
	Short: "Show key metadata",
	Long:  `Show the stored metadata for a symmetric key`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()

		store, err := cfg.CreateStore()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = store.Close() }()

		entry, err := store.Info(args[0])
		if err != nil {
			handleError(err)
			return
		}

		fmt.Printf("Name:      %s\n", entry.Name)
		fmt.Printf("ID:        %s\n", entry.ID)
		fmt.Printf("Algorithm: %s\n", entry.Algorithm)
		fmt.Printf("Mode:      %s\n", entry.Mode)
		fmt.Printf("Padding:   %s\n", entry.Padding)
		if !entry.Protected {
			fmt.Printf("Key size:  %d bits\n", entry.KeySize)
		}
		fmt.Printf("Protected: %v\n", entry.Protected)
	},
}

// keyDeleteCmd deletes a key
var keyDeleteCmd = &cobra.Command{
	Use:   "delete <key-name>",
	Short: "Delete a key",
	Long:  `Delete a symmetric key from the keystore`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()

		store, err := cfg.CreateStore()
		if err != nil {
			handleError(err)
			return
		}
		defer func() { _ = store.Close() }()

		if err := store.Delete(args[0]); err != nil {
			handleError(err)
			return
		}
		fmt.Printf("Deleted key %q\n", args[0])
	},
}

// parseCipherFlags resolves the algorithm/mode/padding flag strings, falling
// back to configured defaults for empty values.
func parseCipherFlags(cfg *Config, algorithm, mode, padding string) (types.Algorithm, types.Mode, types.Padding, error) {
	if algorithm == "" {
		algorithm = cfg.DefaultAlgorithm
	}
	modeDefaulted := mode == ""
	if mode == "" {
		mode = cfg.DefaultMode
	}
	if padding == "" {
		padding = cfg.DefaultPadding
	}
	alg := types.ParseAlgorithm(algorithm)
	if alg == "" {
		return "", "", "", fmt.Errorf("unknown algorithm: %s", algorithm)
	}
	m := types.ParseMode(mode)
	if m == "" {
		return "", "", "", fmt.Errorf("unknown mode: %s", mode)
	}
	p := types.ParsePadding(padding)
	if p == "" {
		return "", "", "", fmt.Errorf("unknown padding: %s", padding)
	}
	// Stream-only algorithms imply the stream discipline; accept the
	// algorithm alone without forcing --mode.
	if alg.IsStreamOnly() && modeDefaulted {
		m = types.ModeStream
		p = types.PaddingNone
	}
	return alg, m, p, nil
}

func init() {
	keyGenerateCmd.Flags().StringP("algorithm", "a", "", "cipher algorithm (aes, des, desede, rc4)")
	keyGenerateCmd.Flags().StringP("mode", "m", "", "chaining mode (ecb, cbc, cfb, ofb, ctr, gcm)")
	keyGenerateCmd.Flags().StringP("padding", "p", "", "padding scheme (none, pkcs7, zeros)")
	keyGenerateCmd.Flags().IntP("size", "s", 0, "key size in bits (0 = algorithm default)")
	keyGenerateCmd.Flags().String("password", "", "password-protect the stored key material")

	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keyInfoCmd)
	keyCmd.AddCommand(keyDeleteCmd)
}
