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
package unify

import (
	"fmt"

	"github.com/consensys/go-metamath/pkg/mm"
	"github.com/consensys/go-metamath/pkg/tree"
)

// Unilateral matches a template tree against a concrete target.  Only the
// variables of the template are bound: the first occurrence of a variable binds
// it, whilst later occurrences must be equal to that binding.  Since the
// target is treated literally, no occurs check is required.
func Unilateral(templ tree.Tree, target tree.Tree, isVar tree.IsVar) (tree.SubstMap, bool) {
	subst := make(tree.SubstMap)
	//
	if !unilateral(templ, target, isVar, subst) {
		return nil, false
	}
	//
	return subst, true
}

func unilateral(templ tree.Tree, target tree.Tree, isVar tree.IsVar, subst tree.SubstMap) bool {
	if isVar(templ.Label) {
		if val, ok := subst[templ.Label]; ok {
			return val.Equal(target)
		}
		//
		subst[templ.Label] = target
		//
		return true
	} else if templ.Label != target.Label {
		return false
	} else if len(templ.Children) != len(target.Children) {
		panic(fmt.Sprintf("label %d used with arities %d and %d", templ.Label, len(templ.Children),
			len(target.Children)))
	}
	//
	for i := range templ.Children {
		if !unilateral(templ.Children[i], target.Children[i], isVar, subst) {
			return false
		}
	}
	//
	return true
}

// UnilateralSession accumulates a sequence of template/target pairs which must
// all be matched under a single substitution.
type UnilateralSession struct {
	isVar  tree.IsVar
	subst  tree.SubstMap
	failed bool
}

// NewUnilateralSession constructs an empty session.
func NewUnilateralSession(isVar tree.IsVar) *UnilateralSession {
	return &UnilateralSession{isVar, make(tree.SubstMap), false}
}

// AddTrees adds a template and its target to this session.  Once a pair fails
// to match, the session remains failed.
func (p *UnilateralSession) AddTrees(templ tree.Tree, target tree.Tree) {
	if !p.failed && !unilateral(templ, target, p.isVar, p.subst) {
		p.failed = true
		p.subst = nil
	}
}

// HasFailed checks whether some pair has failed to match.
func (p *UnilateralSession) HasFailed() bool {
	return p.failed
}

// Unify returns the substitution matching every template onto its target.
func (p *UnilateralSession) Unify() (tree.SubstMap, bool) {
	if p.failed {
		return nil, false
	}
	//
	return p.subst.Clone(), true
}

// UnifySentences matches a template sentence against a target sentence,
// returning every possible matching.  Symbols of the template which are typed
// variables in the given library match non-empty runs of the target, where
// every occurrence of the same variable must match an identical run.  All other
// symbols must match literally.  Symbol 0 acts as a separator which no run can
// span, allowing several sentences to be matched at once.  Matchings are
// enumerated from left to right, trying shorter runs first.
func UnifySentences(templ mm.Sentence, target mm.Sentence, lib *mm.Library) []mm.SentenceMap {
	var (
		m = sentenceMatcher{templ, target, lib, make(mm.SentenceMap), nil}
	)
	//
	m.match(0, 0)
	//
	return m.results
}

type sentenceMatcher struct {
	templ   mm.Sentence
	target  mm.Sentence
	lib     *mm.Library
	subst   mm.SentenceMap
	results []mm.SentenceMap
}

func (p *sentenceMatcher) match(i int, j int) {
	if i == len(p.templ) {
		if j == len(p.target) {
			p.results = append(p.results, p.clone())
		}
		//
		return
	}
	//
	sym := p.templ[i]
	//
	if !p.lib.IsVarSymbol(sym) {
		if j < len(p.target) && p.target[j] == sym {
			p.match(i+1, j+1)
		}
		//
		return
	} else if val, ok := p.subst[sym]; ok {
		if j+len(val) <= len(p.target) && val.Equal(p.target[j:j+len(val)]) {
			p.match(i+1, j+len(val))
		}
		//
		return
	}
	// Try every non-empty run not spanning a separator
	for k := j + 1; k <= len(p.target) && p.target[k-1] != 0; k++ {
		p.subst[sym] = p.target[j:k]
		p.match(i+1, k)
	}
	//
	delete(p.subst, sym)
}

func (p *sentenceMatcher) clone() mm.SentenceMap {
	res := make(mm.SentenceMap, len(p.subst))
	//
	for k, v := range p.subst {
		res[k] = append(mm.Sentence(nil), v...)
	}
	//
	return res
}
