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

	"github.com/consensys/go-metamath/pkg/tree"
)

// Slow unifies two trees by repeatedly applying the substitution found so far
// and walking both trees from the top until the first mismatch.  At a mismatch,
// a variable on either side which does not occur in the other side is bound and
// the walk restarts; otherwise unification fails.  The given substitution is
// composed with any new bindings, and the result is returned.  This algorithm
// is simple enough to be trusted, and is used to check Quick.
func Slow(p1 tree.Tree, p2 tree.Tree, isVar tree.IsVar, subst tree.SubstMap) (tree.SubstMap, bool) {
	if subst == nil {
		subst = make(tree.SubstMap)
	}
	//
	s1 := tree.Substitute(p1, isVar, subst)
	s2 := tree.Substitute(p2, isVar, subst)
	//
	for {
		step := make(tree.SubstMap)
		finished, success := slowStep(s1, s2, isVar, step)
		//
		if finished && !success {
			return nil, false
		} else if finished {
			return subst, true
		}
		//
		s1 = tree.Substitute(s1, isVar, step)
		s2 = tree.Substitute(s2, isVar, step)
		subst = tree.Compose(subst, step, isVar)
	}
}

// Walk two trees until the first mismatch.  This returns whether the walk
// finished (i.e. no binding was made), and whether it succeeded.
func slowStep(p1 tree.Tree, p2 tree.Tree, isVar tree.IsVar, step tree.SubstMap) (bool, bool) {
	if p1.Label == p2.Label {
		if len(p1.Children) != len(p2.Children) {
			panic(fmt.Sprintf("label %d used with arities %d and %d", p1.Label, len(p1.Children),
				len(p2.Children)))
		}
		//
		for i := range p1.Children {
			if finished, success := slowStep(p1.Children[i], p2.Children[i], isVar, step); !finished || !success {
				return finished, success
			}
		}
		//
		return true, true
	} else if isVar(p1.Label) && !tree.ContainsVar(p2, p1.Label) {
		step[p1.Label] = p2
		return false, true
	} else if isVar(p2.Label) && !tree.ContainsVar(p1, p2.Label) {
		step[p2.Label] = p1
		return false, true
	}
	//
	return true, false
}
