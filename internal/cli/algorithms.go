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

// algorithmsCmd lists every cipher configuration the library accepts
var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List supported cipher configurations",
	Long: `List every algorithm/mode/padding combination that passes
construction-time validation, with the derived properties of each.`,
	Run: func(cmd *cobra.Command, args []string) {
		algorithms := []types.Algorithm{
			types.AlgorithmAES,
			types.AlgorithmDES,
			types.AlgorithmTripleDES,
			types.AlgorithmRC2,
			types.AlgorithmRC4,
		}
		modes := []types.Mode{
			types.ModeECB,
			types.ModeCBC,
			types.ModeCFB,
			types.ModeOFB,
			types.ModeCTR,
			types.ModeGCM,
			types.ModeCCM,
			types.ModeStream,
		}
		paddings := []types.Padding{
			types.PaddingNone,
			types.PaddingPKCS7,
			types.PaddingZeros,
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CIPHER\tIV BYTES\tAUTHENTICATED\tSTREAMING")
		for _, alg := range algorithms {
			for _, mode := range modes {
				for _, padding := range paddings {
					desc, err := symmetric.Resolve(alg, mode, padding)
					if err != nil {
						continue
					}
					fmt.Fprintf(w, "%s\t%d\t%v\t%v\n",
						desc.Transformation(),
						mode.IVSize(alg),
						mode.IsAuthenticated(),
						mode.SupportsContinuation())
				}
			}
		}
		if err := w.Flush(); err != nil {
			handleError(err)
		}
	},
}
