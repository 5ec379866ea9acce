// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-metamath/pkg/prover"
	"github.com/consensys/go-metamath/pkg/util"
	"github.com/spf13/cobra"
)

var proveTypeCmd = &cobra.Command{
	Use:   "prove-type [flags] database_file statement",
	Short: "Derive a type statement, such as \"wff ( ph -> ps )\".",
	Long: `Search for a derivation of a type statement from the assertions of a
	Metamath database without essential hypotheses, printing its labels.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := configure(cmd)
		//
		strategy, err := prover.ParseStrategy(cfg.Strategy)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		lib := readLibrary(args[0])
		//
		sent, err := lib.ParseSentence(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		} else if len(sent) < 2 {
			fmt.Printf("invalid type statement \"%s\"\n", args[1])
			os.Exit(2)
		}
		//
		stats := util.NewPerfStats()
		tb := prover.NewToolbox(lib)
		labels, ok := tb.ProveType(strategy, sent)
		//
		stats.Log(fmt.Sprintf("Searching (%s)", strategy))
		//
		if !ok {
			fmt.Println("no derivation found")
			os.Exit(1)
		}
		//
		for _, line := range wrap(lib.LabelsString(labels), terminalWidth()) {
			fmt.Println(line)
		}
		//
		if getFlag(cmd, "tree") {
			if t, ok := tb.Parse(sent); ok {
				fmt.Println(t.Format(lib))
			}
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(proveTypeCmd)
	proveTypeCmd.Flags().StringP("strategy", "s", "classical", "search strategy (classical or earley)")
	proveTypeCmd.Flags().Bool("tree", false, "also print the parse tree of the statement")
}
