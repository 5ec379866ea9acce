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
	"strings"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_YELLOW represents yellow
const TERM_YELLOW = uint(3)

// AnsiEscape represents an ANSI escape code used for formatting text in a
// terminal, built from zero or more attributes.
type AnsiEscape struct {
	attrs []uint
}

// ResetAnsiEscape constructs an escape which resets all attributes.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{0}}
}

// BoldAnsiEscape constructs an escape for bold text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{1}}
}

// FgColour adds a foreground colour to this escape.
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	return AnsiEscape{append(append([]uint(nil), p.attrs...), 30+col)}
}

// Build constructs the final escape.
func (p AnsiEscape) Build() string {
	attrs := make([]string, len(p.attrs))
	//
	for i, a := range p.attrs {
		attrs[i] = fmt.Sprintf("%d", a)
	}
	//
	return "\033[" + strings.Join(attrs, ";") + "m"
}
