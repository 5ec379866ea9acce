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

	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/proof"
	"github.com/spf13/cobra"
)

var proofCmd = &cobra.Command{
	Use:   "proof [flags] database_file label",
	Short: "Print the proof of a theorem.",
	Long: `Print the proof of a theorem in a Metamath database, either as a
	sequence of labels, in compressed form, or as a tree.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configure(cmd)
		//
		lib := readLibrary(args[0])
		//
		text, err := formatProof(lib, args[1], getString(cmd, "format"))
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		fmt.Print(text)
	},
}

// Format the proof of a given theorem.
func formatProof(lib *mm.Library, name string, format string) (string, error) {
	label := lib.GetLabel(name)
	assertion := lib.Assertion(label)
	//
	if assertion == nil || !assertion.IsTheorem() {
		return "", fmt.Errorf("unknown theorem \"%s\"", name)
	} else if assertion.Proof() == nil {
		return "", fmt.Errorf("theorem \"%s\" has no proof", name)
	}
	//
	executor := proof.NewExecutor(lib, label)
	//
	switch format {
	case "tree":
		tree, err := executor.ProofTree(assertion.Proof())
		if err != nil {
			return "", err
		}
		//
		return tree.Format(lib), nil
	case "uncompressed", "compressed":
		uncompressed, err := uncompress(executor, assertion.Proof())
		if err != nil {
			return "", err
		}
		//
		text := uncompressed.Format(lib)
		//
		if format == "compressed" {
			compressed, err := executor.Compress(uncompressed)
			if err != nil {
				return "", err
			}
			//
			text = compressed.Format(lib)
		}
		//
		var res string
		//
		for _, line := range wrap(text, terminalWidth()) {
			res += line + "\n"
		}
		//
		return res, nil
	}
	//
	return "", fmt.Errorf("unknown format \"%s\"", format)
}

func uncompress(executor *proof.Executor, p mm.Proof) (*proof.UncompressedProof, error) {
	switch p := p.(type) {
	case *proof.UncompressedProof:
		return p, nil
	case *proof.CompressedProof:
		return executor.Uncompress(p)
	}
	//
	panic(fmt.Sprintf("unknown proof kind %T", p))
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(proofCmd)
	proofCmd.Flags().StringP("format", "f", "uncompressed", "output format (uncompressed, compressed or tree)")
}
