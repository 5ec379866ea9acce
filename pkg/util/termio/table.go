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
package termio

import (
	"fmt"
	"io"
	"strings"
)

// TablePrinter is useful for printing tables to the terminal.  Rows are added
// one at a time, and columns are padded to the width of their widest cell.
type TablePrinter struct {
	widths        []uint
	maxWidth      uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a new table with a given number of columns.
func NewTablePrinter(width uint) *TablePrinter {
	return &TablePrinter{make([]uint, width), 0, nil, nil, true}
}

// AddRow appends a row to this table, returning its index.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i, val := range vals {
		p.widths[i] = max(p.widths[i], uint(len(val)))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]string, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetEscape set the escape to use when printing the contents of a given cell
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Disabling escapes is useful in environments that don't support
// escapes as, otherwise, you get a lot of visible excape characters being
// printed.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of every column.  Longer cells
// are truncated.  Zero means unbounded.
func (p *TablePrinter) SetMaxWidth(width uint) {
	if width != 0 {
		width = max(width, 3)
	}
	//
	p.maxWidth = width
}

// Print the table to a given writer.
func (p *TablePrinter) Print(out io.Writer) error {
	var builder strings.Builder
	//
	for i, row := range p.rows {
		for j, cell := range row {
			width := p.widths[j]
			//
			if p.maxWidth != 0 {
				width = min(width, p.maxWidth)
			}
			//
			if uint(len(cell)) > width {
				cell = cell[:width-2] + ".."
			}
			// Print colour (if applicable)
			if p.enableEscapes && p.escapes[i][j] != "" {
				cell = p.escapes[i][j] + cell + ResetAnsiEscape().Build() +
					strings.Repeat(" ", int(width)-len(cell))
			} else {
				cell = fmt.Sprintf("%-*s", width, cell)
			}
			//
			if j != 0 {
				builder.WriteString(" | ")
			}
			//
			builder.WriteString(cell)
		}
		//
		builder.WriteString("\n")
	}
	//
	_, err := io.WriteString(out, builder.String())
	//
	return err
}
