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
	"github.com/consensys/go-metamath/pkg/util"
	"github.com/consensys/go-metamath/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] database_file",
	Short: "Verify every proof in a Metamath database.",
	Long: `Read a Metamath database and check the proof of every theorem.
	Theorems are verified independently, and several at a time.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := configure(cmd)
		lib := readLibrary(args[0])
		stats := util.NewPerfStats()
		outcomes := verifyLibrary(lib, cfg.Verify)
		errs := failures(outcomes)
		//
		stats.Log("Verifying database")
		//
		if getFlag(cmd, "report") {
			table := reportTable(lib, outcomes)
			table.AnsiEscapes(term.IsTerminal(int(os.Stdout.Fd())))
			table.SetMaxWidth(uint(terminalWidth()) / 2)
			//
			if err := table.Print(os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
		}
		//
		if len(errs) > 0 {
			for _, err := range errs {
				log.Error(err)
			}
			//
			fmt.Printf("%d of %d theorems failed\n", len(errs), len(outcomes))
			os.Exit(1)
		}
		//
		fmt.Printf("verified %d theorems\n", len(outcomes))
	},
}

// The result of verifying a single theorem.
type outcome struct {
	label mm.LabTok
	err   error
}

// Verify every theorem of a library, returning one outcome per theorem in
// declaration order.
func verifyLibrary(lib *mm.Library, cfg VerifyConfig) []outcome {
	var (
		theorems []mm.LabTok
		group    errgroup.Group
	)
	//
	for _, label := range lib.Assertions() {
		if lib.Assertion(label).IsTheorem() {
			theorems = append(theorems, label)
		}
	}
	//
	outcomes := make([]outcome, len(theorems))
	group.SetLimit(int(max(1, cfg.Workers)))
	//
	for i, label := range theorems {
		i, label := i, label
		group.Go(func() error {
			outcomes[i] = outcome{label, verifyTheorem(lib, label, cfg.Dists)}
			return nil
		})
	}
	//
	_ = group.Wait()
	//
	log.Debugf("verified %d theorems using %d workers", len(theorems), cfg.Workers)
	//
	return outcomes
}

// Extract the errors of failed theorems.
func failures(outcomes []outcome) []error {
	var errs []error
	//
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
		}
	}
	//
	return errs
}

// Construct a table summarising the outcome of each theorem.
func reportTable(lib *mm.Library, outcomes []outcome) *termio.TablePrinter {
	table := termio.NewTablePrinter(3)
	//
	for _, o := range outcomes {
		var (
			steps  = fmt.Sprintf("%d", lib.Assertion(o.label).Proof().Size())
			result = "ok"
			colour = termio.TERM_GREEN
		)
		//
		if o.err != nil {
			result, colour = o.err.Error(), termio.TERM_RED
		}
		//
		row := table.AddRow(lib.ResolveLabel(o.label), steps, result)
		table.SetEscape(2, row, termio.AnsiEscape{}.FgColour(colour))
	}
	//
	return table
}

// Verify a single theorem.  A malformed proof causes a panic within the
// engine, which is reported as an error against this theorem alone.
func verifyTheorem(lib *mm.Library, label mm.LabTok, dists bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: malformed proof (%v)", lib.ResolveLabel(label), r)
		}
	}()
	//
	if err := proof.VerifyAssertion(lib, label, dists); err != nil {
		return fmt.Errorf("%s: %w", lib.ResolveLabel(label), err)
	}
	//
	return nil
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Bool("dists", true, "check distinct variable conditions")
	verifyCmd.Flags().UintP("workers", "j", 1, "number of theorems to verify concurrently")
	verifyCmd.Flags().Bool("report", false, "print a table summarising every theorem")
}
