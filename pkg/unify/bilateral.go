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
	"github.com/consensys/go-metamath/pkg/util/collection/dset"
	"github.com/consensys/go-metamath/pkg/util/collection/graph"
)

// Bilateral is a unification session in which variables on both sides of each
// pair of trees can be bound.  Pairs are processed in a single top-down walk as
// they are added.  Variables identified with each other are tracked in a
// disjoint set, whilst a dependency graph records which variables each binding
// mentions.  Most cycles are only detected when the session is finalised.
// However, a cycle which is reached whilst unifying against an existing binding
// fails immediately, since the walk would otherwise never terminate.
type Bilateral struct {
	isVar  tree.IsVar
	failed bool
	// Unresolved bindings
	subst tree.SubstMap
	// Classes of variables identified with each other
	classes *dset.DisjointSet[mm.LabTok]
	// Edge v -> w holds when the binding of v mentions w
	deps *graph.CycleDetector[mm.LabTok]
	// Bound variables whose bindings are currently being unified
	expanding map[mm.LabTok]bool
}

// NewBilateral constructs an empty session.
func NewBilateral(isVar tree.IsVar) *Bilateral {
	return &Bilateral{
		isVar:     isVar,
		subst:     make(tree.SubstMap),
		classes:   dset.NewDisjointSet[mm.LabTok](),
		deps:      graph.NewCycleDetector[mm.LabTok](),
		expanding: make(map[mm.LabTok]bool),
	}
}

// AddTrees adds a pair of trees which must be made equal.  This has no effect
// once the session has failed.
func (p *Bilateral) AddTrees(p1 tree.Tree, p2 tree.Tree) {
	if p.failed {
		return
	} else if !p.process(p1, p2) {
		p.fail()
	}
}

// AddFlatTrees adds a pair of flattened trees which must be made equal.
func (p *Bilateral) AddFlatTrees(p1 tree.FlatTree, p2 tree.FlatTree) {
	if !p.failed {
		p.AddTrees(p1.Unflatten(), p2.Unflatten())
	}
}

// HasFailed checks whether this session is known to have failed.  Observe this
// can under-report, since most cycles are only detected on finalisation.  However,
// once this returns true, every subsequent operation fails.
func (p *Bilateral) HasFailed() bool {
	return p.failed
}

// IsUnifiable checks whether every pair added so far can be unified.
func (p *Bilateral) IsUnifiable() bool {
	if p.failed {
		return false
	} else if !p.deps.IsAcyclic() {
		p.fail()
		return false
	}
	//
	return true
}

// Unify finalises this session, returning a resolved substitution which makes
// every pair equal.  Bindings are resolved in dependency order, such that each
// is substituted with the (already resolved) bindings of the variables it
// mentions.  The result is idempotent.
func (p *Bilateral) Unify() (tree.SubstMap, bool) {
	if p.failed {
		return nil, false
	}
	//
	order, ok := p.deps.DependencyOrder()
	if !ok {
		p.fail()
		return nil, false
	}
	//
	res := make(tree.SubstMap, len(p.subst))
	//
	for _, v := range order {
		if val, ok := p.subst[v]; ok {
			res[v] = tree.Substitute(val, p.isVar, res)
		}
	}
	//
	return res, true
}

// UnifyFlat finalises this session, returning a resolved substitution over
// flattened trees.
func (p *Bilateral) UnifyFlat() (tree.FlatSubstMap, bool) {
	res, ok := p.Unify()
	if !ok {
		return nil, false
	}
	//
	return tree.FlattenMap(res), true
}

// Clone returns an independent copy of this session.
func (p *Bilateral) Clone() *Bilateral {
	return &Bilateral{
		isVar:     p.isVar,
		failed:    p.failed,
		subst:     p.subst.Clone(),
		classes:   p.classes.Clone(),
		deps:      p.deps.Clone(),
		expanding: make(map[mm.LabTok]bool),
	}
}

// Failure is permanent, hence all state can be released.
func (p *Bilateral) fail() {
	p.failed = true
	p.subst = make(tree.SubstMap)
	p.classes.Clear()
	p.deps.Clear()
}

func (p *Bilateral) process(p1 tree.Tree, p2 tree.Tree) bool {
	if p1.Label == p2.Label {
		if len(p1.Children) != len(p2.Children) {
			panic(fmt.Sprintf("label %d used with arities %d and %d", p1.Label, len(p1.Children),
				len(p2.Children)))
		}
		//
		for i := range p1.Children {
			if !p.process(p1.Children[i], p2.Children[i]) {
				return false
			}
		}
		//
		return true
	}
	//
	var (
		v1  = p.isVar(p1.Label)
		v2  = p.isVar(p2.Label)
		v   mm.LabTok
		val tree.Tree
	)
	//
	switch {
	case v1 && v2:
		p.classes.MakeSet(p1.Label)
		p.classes.MakeSet(p2.Label)
		r1, r2 := p.classes.Find(p1.Label), p.classes.Find(p2.Label)
		//
		if r1 == r2 {
			return true
		}
		// Bind the losing representative to the winning one
		if w, _ := p.classes.Union(r1, r2); w == r1 {
			v, val = r2, tree.VarTree(r1, p1.Type)
		} else {
			v, val = r1, tree.VarTree(r2, p2.Type)
		}
	case v1:
		v, val = p1.Label, p2
	case v2:
		v, val = p2.Label, p1
	default:
		return false
	}
	//
	p.deps.MakeNode(v)
	//
	if old, ok := p.subst[v]; ok {
		// Reaching v again means v equals a term strictly containing itself.
		if p.expanding[v] {
			return false
		}
		//
		p.expanding[v] = true
		ok = p.process(old, val)
		delete(p.expanding, v)
		//
		return ok
	}
	//
	p.subst[v] = val
	//
	for _, w := range tree.CollectVariables(val, p.isVar) {
		p.deps.MakeEdge(v, w)
	}
	//
	return true
}

// Quick unifies two trees using a single bilateral session.
func Quick(p1 tree.Tree, p2 tree.Tree, isVar tree.IsVar) (tree.SubstMap, bool) {
	session := NewBilateral(isVar)
	session.AddTrees(p1, p2)
	//
	return session.Unify()
}

// Adapter unifies two trees in the context of an existing substitution.  Both
// trees are first substituted, then unified, and the resulting bindings are
// composed into the existing substitution which is returned.
func Adapter(p1 tree.Tree, p2 tree.Tree, isVar tree.IsVar, subst tree.SubstMap) (tree.SubstMap, bool) {
	s1 := tree.Substitute(p1, isVar, subst)
	s2 := tree.Substitute(p2, isVar, subst)
	//
	res, ok := Quick(s1, s2, isVar)
	if !ok {
		return nil, false
	}
	//
	return tree.Compose(subst, res, isVar), true
}
