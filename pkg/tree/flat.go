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

import "github.com/consensys/go-metamath/pkg/mm"

// FlatNode is a single node of a flattened tree.  Size counts the nodes of the
// subtree rooted at this node (including itself), whilst Arity is its number of
// children.
type FlatNode struct {
	Label mm.LabTok
	Type  mm.SymTok
	Size  uint32
	Arity uint32
}

// FlatTree is a tree laid out as a pre-order array of nodes.  The children of
// the node at index i start at index i+1 and are found by skipping over each
// child's subtree in turn.  This layout allows whole subtrees to be copied in
// bulk during substitution.
type FlatTree []FlatNode

// Flatten converts a tree into its flattened form.
func Flatten(t Tree) FlatTree {
	flat := make(FlatTree, 0, t.Size())
	//
	return flatten(t, flat)
}

func flatten(t Tree, flat FlatTree) FlatTree {
	index := len(flat)
	flat = append(flat, FlatNode{t.Label, t.Type, 0, uint32(len(t.Children))})
	//
	for _, c := range t.Children {
		flat = flatten(c, flat)
	}
	// Fill in size now it is known
	flat[index].Size = uint32(len(flat) - index)
	//
	return flat
}

// Len returns the number of nodes in this tree.
func (f FlatTree) Len() uint {
	return uint(len(f))
}

// Root returns the root node of this tree.
func (f FlatTree) Root() FlatNode {
	return f[0]
}

// Subtree returns the subtree rooted at a given index.
func (f FlatTree) Subtree(index uint) FlatTree {
	return f[index : index+uint(f[index].Size)]
}

// Children returns the indices of the children of the node at a given index.
func (f FlatTree) Children(index uint) []uint {
	children := make([]uint, f[index].Arity)
	next := index + 1
	//
	for i := range children {
		children[i] = next
		next += uint(f[next].Size)
	}
	//
	return children
}

// Unflatten converts this tree back into its recursive form.
func (f FlatTree) Unflatten() Tree {
	t, _ := f.unflatten(0)
	return t
}

func (f FlatTree) unflatten(index uint) (Tree, uint) {
	node := f[index]
	t := Tree{node.Label, node.Type, nil}
	next := index + 1
	//
	if node.Arity > 0 {
		t.Children = make([]Tree, node.Arity)
		//
		for i := range t.Children {
			t.Children[i], next = f.unflatten(next)
		}
	}
	//
	return t, next
}

// Equal checks whether two flat trees are identical.
func (f FlatTree) Equal(other FlatTree) bool {
	if len(f) != len(other) {
		return false
	}
	//
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	//
	return true
}

// FlatSubstMap maps variables onto flattened trees.
type FlatSubstMap map[mm.LabTok]FlatTree

// FlattenMap converts a substitution map into its flattened form.
func FlattenMap(subst SubstMap) FlatSubstMap {
	res := make(FlatSubstMap, len(subst))
	//
	for k, v := range subst {
		res[k] = Flatten(v)
	}
	//
	return res
}

// SubstituteFlat replaces every bound variable leaf of a flat tree with its
// binding.  The size of the result is computed first, such that the result can
// be filled with bulk copies of the bound subtrees.
func SubstituteFlat(f FlatTree, isVar IsVar, subst FlatSubstMap) FlatTree {
	// Count
	n := 0
	//
	for _, node := range f {
		if val, ok := lookup(node, isVar, subst); ok {
			n += len(val)
		} else {
			n++
		}
	}
	// Fill
	res := make(FlatTree, n)
	fill(f, 0, res, 0, isVar, subst)
	//
	return res
}

// Copy the subtree at index i of f into res at index j, returning the number of
// nodes written.
func fill(f FlatTree, i uint, res FlatTree, j uint, isVar IsVar, subst FlatSubstMap) uint {
	node := f[i]
	//
	if val, ok := lookup(node, isVar, subst); ok {
		return uint(copy(res[j:], val))
	}
	//
	start := j
	res[j] = node
	j++
	//
	for _, c := range f.Children(i) {
		j += fill(f, c, res, j, isVar, subst)
	}
	//
	res[start].Size = uint32(j - start)
	//
	return j - start
}

func lookup(node FlatNode, isVar IsVar, subst FlatSubstMap) (FlatTree, bool) {
	if node.Arity != 0 || !isVar(node.Label) {
		return nil, false
	}
	//
	val, ok := subst[node.Label]
	//
	return val, ok
}
