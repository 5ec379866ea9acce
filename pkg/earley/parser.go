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
	"github.com/consensys/go-metamath/pkg/mm"
)

// ParseTree is the result of parsing a sentence.  Each node is labelled with
// the production applied, and its children correspond to the nonterminals of
// that production's right-hand side, from left to right.
type ParseTree struct {
	Label    mm.LabTok
	Type     mm.SymTok
	Children []ParseTree
}

// Parser is an Earley parser for a given grammar.  A parser holds no state
// between calls and, provided the grammar is not modified, can be shared.
type Parser struct {
	grammar *Grammar
}

// NewParser constructs a parser for a given grammar.
func NewParser(grammar *Grammar) *Parser {
	return &Parser{grammar}
}

// Identifies an item within the chart.
type itemRef struct {
	set   int
	index int
}

// Items are identified structurally, ignoring their children.
type itemKey struct {
	origin int
	dot    int
	lhs    mm.SymTok
	prod   int
}

type item struct {
	itemKey
	// Completed items matched against each nonterminal passed so far.
	children []itemRef
}

type chart struct {
	grammar *Grammar
	sets    [][]item
	seen    []map[itemKey]bool
}

func (p *chart) production(it *item) Production {
	return p.grammar.productions[it.lhs][it.prod]
}

// Add an item to a given set, unless a structurally identical item is already
// there.
func (p *chart) add(set int, it item) {
	if !p.seen[set][it.itemKey] {
		p.seen[set][it.itemKey] = true
		p.sets[set] = append(p.sets[set], it)
	}
}

// Parse a sentence as the given start symbol, returning exactly one parse tree
// if the sentence is accepted.  Ambiguous sentences yield the first derivation
// found.
func (p *Parser) Parse(sent []mm.SymTok, start mm.SymTok) (ParseTree, bool) {
	n := len(sent)
	c := chart{p.grammar, make([][]item, n+1), make([]map[itemKey]bool, n+1)}
	//
	for i := range c.seen {
		c.seen[i] = make(map[itemKey]bool)
	}
	// Seed with productions of the start symbol
	for k := range p.grammar.productions[start] {
		c.add(0, item{itemKey{0, 0, start, k}, nil})
	}
	// Items are referred to by index, since sets grow during iteration
	for i := 0; i <= n; i++ {
		for j := 0; j < len(c.sets[i]); j++ {
			it := c.sets[i][j]
			rhs := c.production(&it).Rhs
			//
			switch {
			case it.dot == len(rhs):
				p.complete(&c, i, j)
			case p.grammar.IsNonTerminal(rhs[it.dot]):
				p.predict(&c, i, rhs[it.dot])
			case i < n && rhs[it.dot] == sent[i]:
				// Scan
				next := item{itemKey{it.origin, it.dot + 1, it.lhs, it.prod}, it.children}
				c.add(i+1, next)
			}
		}
	}
	// Accept
	for j, it := range c.sets[n] {
		if it.origin == 0 && it.lhs == start && it.dot == len(c.production(&it).Rhs) {
			return c.tree(itemRef{n, j}), true
		}
	}
	//
	return ParseTree{}, false
}

// Advance every item waiting on the nonterminal just completed at its origin.
func (p *Parser) complete(c *chart, set int, index int) {
	done := c.sets[set][index]
	//
	for k := 0; k < len(c.sets[done.origin]); k++ {
		it := c.sets[done.origin][k]
		rhs := c.production(&it).Rhs
		//
		if it.dot < len(rhs) && rhs[it.dot] == done.lhs {
			children := make([]itemRef, len(it.children), len(it.children)+1)
			copy(children, it.children)
			children = append(children, itemRef{set, index})
			//
			c.add(set, item{itemKey{it.origin, it.dot + 1, it.lhs, it.prod}, children})
		}
	}
}

// Seed items for every production of a given nonterminal.
func (p *Parser) predict(c *chart, set int, sym mm.SymTok) {
	for k := range p.grammar.productions[sym] {
		c.add(set, item{itemKey{set, 0, sym, k}, nil})
	}
}

// Reconstruct the parse tree rooted at a given completed item.
func (p *chart) tree(ref itemRef) ParseTree {
	it := p.sets[ref.set][ref.index]
	t := ParseTree{p.production(&it).Label, it.lhs, nil}
	//
	if len(it.children) > 0 {
		t.Children = make([]ParseTree, len(it.children))
		//
		for i, c := range it.children {
			t.Children[i] = p.tree(c)
		}
	}
	//
	return t
}
