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
package tree

import (
	"fmt"
	"strings"

	"github.com/consensys/go-metamath/pkg/mm"
)

// IsVar determines whether a given label names a variable.  Variable nodes of a
// tree are always leaves.
type IsVar func(mm.LabTok) bool

// Tree is the parsing tree of a typed expression.  Each node is labelled with
// the assertion (or type statement, for variables) which produces it, and its
// children are ordered according to that assertion's floating hypotheses.
type Tree struct {
	Label    mm.LabTok
	Type     mm.SymTok
	Children []Tree
}

// VarTree constructs a single node tree representing a variable.
func VarTree(label mm.LabTok, typ mm.SymTok) Tree {
	return Tree{label, typ, nil}
}

// NewTree constructs a tree from a label, its type and zero or more children.
func NewTree(label mm.LabTok, typ mm.SymTok, children ...Tree) Tree {
	return Tree{label, typ, children}
}

// IsLeaf checks whether this tree has no children.
func (t Tree) IsLeaf() bool {
	return len(t.Children) == 0
}

// Size returns the number of nodes in this tree.
func (t Tree) Size() uint {
	n := uint(1)
	for _, c := range t.Children {
		n += c.Size()
	}
	//
	return n
}

// Equal checks whether two trees are structurally identical.
func (t Tree) Equal(other Tree) bool {
	if t.Label != other.Label || t.Type != other.Type || len(t.Children) != len(other.Children) {
		return false
	}
	//
	for i := range t.Children {
		if !t.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	//
	return true
}

func (t Tree) String() string {
	var builder strings.Builder
	//
	t.write(&builder, func(l mm.LabTok) string { return fmt.Sprintf("%d", l) })
	//
	return builder.String()
}

// Format writes this tree using the names of labels in a given library, such
// as "(wi wph (wn wps))".
func (t Tree) Format(lib *mm.Library) string {
	var builder strings.Builder
	//
	t.write(&builder, lib.ResolveLabel)
	//
	return builder.String()
}

func (t Tree) write(builder *strings.Builder, name func(mm.LabTok) string) {
	if t.IsLeaf() {
		builder.WriteString(name(t.Label))
		return
	}
	//
	builder.WriteString("(")
	builder.WriteString(name(t.Label))
	//
	for _, c := range t.Children {
		builder.WriteString(" ")
		c.write(builder, name)
	}
	//
	builder.WriteString(")")
}

// Sentence reconstructs the sentence represented by this tree.  Each node's
// children are substituted for the variables of its assertion's pattern.
func (t Tree) Sentence(lib *mm.Library) mm.Sentence {
	sent := mm.Sentence{t.Type}
	//
	return t.appendBody(lib, sent)
}

func (t Tree) appendBody(lib *mm.Library, sent mm.Sentence) mm.Sentence {
	if lib.IsVarLabel(t.Label) {
		return append(sent, lib.VarOf(t.Label))
	}
	//
	assertion := lib.Assertion(t.Label)
	if assertion == nil {
		panic(fmt.Sprintf("node %s is neither a variable nor an assertion", lib.ResolveLabel(t.Label)))
	}
	//
	floats := assertion.FloatHyps()
	if len(floats) != len(t.Children) {
		panic(fmt.Sprintf("node %s has %d children, expected %d", lib.ResolveLabel(t.Label),
			len(t.Children), len(floats)))
	}
	//
	for _, sym := range lib.Sentence(t.Label).Body() {
		if !lib.IsVarSymbol(sym) {
			sent = append(sent, sym)
			continue
		}
		// Find the child for this variable
		found := false
		//
		for i, f := range floats {
			if lib.VarOf(f) == sym {
				sent = t.Children[i].appendBody(lib, sent)
				found = true

				break
			}
		}
		//
		if !found {
			panic(fmt.Sprintf("variable %s is not a hypothesis of %s", lib.ResolveSymbol(sym),
				lib.ResolveLabel(t.Label)))
		}
	}
	//
	return sent
}
