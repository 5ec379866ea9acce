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
	"slices"

	"github.com/consensys/go-metamath/pkg/mm"
)

// SubstMap binds variables to trees.
type SubstMap map[mm.LabTok]Tree

// Keys returns the variables bound by this map in ascending order.
func (m SubstMap) Keys() []mm.LabTok {
	keys := make([]mm.LabTok, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	//
	slices.Sort(keys)
	//
	return keys
}

// Clone returns a shallow copy of this map.  Trees are values and are never
// mutated in place, hence bindings can be shared.
func (m SubstMap) Clone() SubstMap {
	res := make(SubstMap, len(m))
	for k, v := range m {
		res[k] = v
	}
	//
	return res
}

// Equal checks whether two maps bind exactly the same variables to equal
// trees.
func (m SubstMap) Equal(other SubstMap) bool {
	if len(m) != len(other) {
		return false
	}
	//
	for k, v := range m {
		if w, ok := other[k]; !ok || !v.Equal(w) {
			return false
		}
	}
	//
	return true
}

// Substitute replaces every bound variable in a tree with its binding.
func Substitute(t Tree, isVar IsVar, subst SubstMap) Tree {
	if isVar(t.Label) {
		if val, ok := subst[t.Label]; ok {
			return val
		}
		//
		return t
	} else if len(t.Children) == 0 {
		return t
	}
	//
	children := make([]Tree, len(t.Children))
	for i, c := range t.Children {
		children[i] = Substitute(c, isVar, subst)
	}
	//
	return Tree{t.Label, t.Type, children}
}

// Compose returns a single map equivalent to applying first and then second.
// Every binding of first has second substituted into it, and is dropped if it
// becomes trivial (i.e. v -> v).  Bindings of second are then added unless the
// variable is already bound in the result.
func Compose(first SubstMap, second SubstMap, isVar IsVar) SubstMap {
	res := make(SubstMap, len(first)+len(second))
	//
	for k, v := range first {
		val := Substitute(v, isVar, second)
		//
		if val.IsLeaf() && val.Label == k {
			continue
		}
		//
		res[k] = val
	}
	//
	for k, v := range second {
		if _, ok := res[k]; !ok {
			res[k] = v
		}
	}
	//
	return res
}

// Update returns the union of two maps, where bindings of first take
// precedence.  When assertDisjoint holds, a variable bound by both maps is an
// internal failure.
func Update(first SubstMap, second SubstMap, assertDisjoint bool) SubstMap {
	res := first.Clone()
	//
	for k, v := range second {
		if _, ok := res[k]; ok {
			if assertDisjoint {
				panic(fmt.Sprintf("variable %d bound twice", k))
			}
			//
			continue
		}
		//
		res[k] = v
	}
	//
	return res
}

// ContainsVar checks whether a given variable occurs within a tree.
func ContainsVar(t Tree, v mm.LabTok) bool {
	if t.Label == v {
		return true
	}
	//
	for _, c := range t.Children {
		if ContainsVar(c, v) {
			return true
		}
	}
	//
	return false
}

// CollectVariables returns the distinct variables of a tree in ascending order.
func CollectVariables(t Tree, isVar IsVar) []mm.LabTok {
	var vars []mm.LabTok
	//
	vars = collect(t, isVar, vars)
	slices.Sort(vars)
	//
	return slices.Compact(vars)
}

// CollectVariablesInto adds the variables of a tree to a given set.
func CollectVariablesInto(t Tree, isVar IsVar, vars map[mm.LabTok]bool) {
	for _, v := range collect(t, isVar, nil) {
		vars[v] = true
	}
}

func collect(t Tree, isVar IsVar, vars []mm.LabTok) []mm.LabTok {
	if isVar(t.Label) {
		return append(vars, t.Label)
	}
	//
	for _, c := range t.Children {
		vars = collect(c, isVar, vars)
	}
	//
	return vars
}
