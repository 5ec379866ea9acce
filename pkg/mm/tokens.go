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
package mm

import (
	"errors"
	"fmt"
)

// ErrInvalidToken is returned when a string is not a lexically valid symbol or
// label.
var ErrInvalidToken = errors.New("invalid token")

// SymTok identifies an interned symbol (i.e. a constant or variable of the
// grammar).  Symbol 0 is never valid.
type SymTok uint32

// LabTok identifies an interned label (i.e. the name of a hypothesis, axiom or
// theorem).  Label 0 is never valid.
type LabTok uint32

// IsSymbol checks whether a given string can be used as a symbol.  A symbol is
// any non-empty run of printable ASCII characters which does not contain '$'.
func IsSymbol(s string) bool {
	if len(s) == 0 {
		return false
	}
	//
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < '!' || c > '~' || c == '$' {
			return false
		}
	}
	//
	return true
}

// IsLabel checks whether a given string can be used as a label.  A label is a
// non-empty run of letters, digits, '-', '_' or '.'.
func IsLabel(s string) bool {
	if len(s) == 0 {
		return false
	}
	//
	for i := 0; i < len(s); i++ {
		c := s[i]
		//
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			continue
		case c == '-' || c == '_' || c == '.':
			continue
		default:
			return false
		}
	}
	//
	return true
}

// tokenTable is a bidirectional mapping between strings and dense identifiers,
// starting from 1.
type tokenTable struct {
	names []string
	ids   map[string]uint32
}

func newTokenTable() tokenTable {
	// Reserve slot 0 for the invalid token.
	return tokenTable{[]string{""}, make(map[string]uint32)}
}

func (p *tokenTable) create(name string) uint32 {
	if id, ok := p.ids[name]; ok {
		return id
	}
	//
	id := uint32(len(p.names))
	p.names = append(p.names, name)
	p.ids[name] = id
	//
	return id
}

func (p *tokenTable) get(name string) uint32 {
	return p.ids[name]
}

func (p *tokenTable) resolve(id uint32) string {
	if id == 0 || int(id) >= len(p.names) {
		panic(fmt.Sprintf("invalid token id %d", id))
	}
	//
	return p.names[id]
}

func (p *tokenTable) size() uint {
	return uint(len(p.names) - 1)
}
