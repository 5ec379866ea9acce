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
package earley

import (
	"errors"
	"fmt"

	"github.com/consensys/go-metamath/pkg/mm"
)

// ErrEmptyProduction is returned when attempting to add a production whose
// right-hand side is empty.  Such productions are not supported by the parser.
var ErrEmptyProduction = errors.New("empty production")

// Production rewrites a nonterminal into a sequence of symbols.  Each
// production is labelled with the assertion (or type statement) it comes from.
type Production struct {
	Label mm.LabTok
	Rhs   []mm.SymTok
}

// Grammar is a set of productions grouped by the nonterminal they rewrite.  A
// symbol is a nonterminal if, and only if, it has at least one production.
type Grammar struct {
	productions map[mm.SymTok][]Production
	size        uint
}

// NewGrammar constructs an empty grammar.
func NewGrammar() *Grammar {
	return &Grammar{make(map[mm.SymTok][]Production), 0}
}

// AddProduction adds a production rewriting lhs into rhs.
func (p *Grammar) AddProduction(lhs mm.SymTok, label mm.LabTok, rhs []mm.SymTok) error {
	if len(rhs) == 0 {
		return fmt.Errorf("%w for label %d", ErrEmptyProduction, label)
	}
	//
	p.productions[lhs] = append(p.productions[lhs], Production{label, rhs})
	p.size++
	//
	return nil
}

// Productions returns the productions of a given nonterminal, in the order they
// were added.
func (p *Grammar) Productions(lhs mm.SymTok) []Production {
	return p.productions[lhs]
}

// IsNonTerminal checks whether a given symbol has any productions.
func (p *Grammar) IsNonTerminal(sym mm.SymTok) bool {
	_, ok := p.productions[sym]
	return ok
}

// Size returns the total number of productions.
func (p *Grammar) Size() uint {
	return p.size
}
