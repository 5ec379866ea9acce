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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/mm/reader"
	"github.com/consensys/go-metamath/pkg/util"
	"github.com/consensys/go-metamath/pkg/util/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned int, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or exit if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Read a Metamath database, or exit if an error arises.
func readLibrary(filename string) *mm.Library {
	stats := util.NewPerfStats()
	lib, err := reader.ReadFile(filename)
	//
	if err != nil {
		var serr *source.SyntaxError
		//
		if errors.As(err, &serr) {
			printSyntaxError(serr)
		} else {
			fmt.Println(err)
		}
		//
		os.Exit(2)
	}
	//
	stats.Log("Reading database")
	//
	return lib
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	// Print error + line number
	fmt.Printf("%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Print line
	fmt.Println(line.String())
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", max(0, lineOffset)))
	// Print highlight
	fmt.Println(strings.Repeat("^", max(1, length)))
}

// Determine the width of the terminal, or a default when not writing to a
// terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	//
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	//
	return 80
}

// Break text into lines of at most a given width, splitting at whitespace.
// Words longer than the width are split across lines.
func wrap(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)
	//
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line.Len() > 0 {
				lines = append(lines, line.String())
				line.Reset()
			}
			//
			lines = append(lines, word[:width])
			word = word[width:]
		}
		//
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		//
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		//
		line.WriteString(word)
	}
	//
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	//
	return lines
}
