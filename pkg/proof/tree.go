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
package proof

import (
	"strings"

	"github.com/consensys/go-metamath/pkg/mm"
)

// ProofTree is the derivation shape of a proof.  Each node records the label
// applied, the sentence it proves and one child per hypothesis consumed,
// ordered as the hypotheses of that label's assertion.  A node is essential
// when its label is an essential hypothesis of the theorem being proved.
type ProofTree struct {
	Label     mm.LabTok
	Essential bool
	Sentence  mm.Sentence
	Children  []ProofTree
}

// Size returns the number of nodes in this tree.
func (p ProofTree) Size() uint {
	n := uint(1)
	for _, c := range p.Children {
		n += c.Size()
	}
	//
	return n
}

// Labels returns the steps of this tree in post-order, which is an
// uncompressed proof of its sentence.
func (p ProofTree) Labels() []mm.LabTok {
	return p.appendLabels(nil)
}

func (p ProofTree) appendLabels(labels []mm.LabTok) []mm.LabTok {
	for _, c := range p.Children {
		labels = c.appendLabels(labels)
	}
	//
	return append(labels, p.Label)
}

// Format writes this tree as one line per node, indented by depth, where
// essential nodes are marked with '*'.
func (p ProofTree) Format(lib *mm.Library) string {
	var builder strings.Builder
	//
	p.format(lib, 0, &builder)
	//
	return builder.String()
}

func (p ProofTree) format(lib *mm.Library, depth int, builder *strings.Builder) {
	builder.WriteString(strings.Repeat("  ", depth))
	//
	if p.Essential {
		builder.WriteString("*")
	}
	//
	builder.WriteString(lib.ResolveLabel(p.Label))
	builder.WriteString(" ")
	builder.WriteString(lib.SentenceString(p.Sentence))
	builder.WriteString("\n")
	//
	for _, c := range p.Children {
		c.format(lib, depth+1, builder)
	}
}
