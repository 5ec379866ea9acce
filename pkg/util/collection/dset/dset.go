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
package dset

// DisjointSet implements a union-find forest over arbitrary comparable items,
// using union by rank and path compression.  Items are added lazily via
// MakeSet, and the representative chosen for a class remains stable until that
// class is merged into another one.
type DisjointSet[T comparable] struct {
	parent map[T]T
	rank   map[T]uint
}

// NewDisjointSet constructs an empty disjoint set.
func NewDisjointSet[T comparable]() *DisjointSet[T] {
	return &DisjointSet[T]{make(map[T]T), make(map[T]uint)}
}

// MakeSet adds a given item as a singleton class, unless it is already known.
func (p *DisjointSet[T]) MakeSet(item T) {
	if _, ok := p.parent[item]; !ok {
		p.parent[item] = item
		p.rank[item] = 0
	}
}

// Contains checks whether a given item has been added to this disjoint set.
func (p *DisjointSet[T]) Contains(item T) bool {
	_, ok := p.parent[item]
	return ok
}

// Find returns the representative of the class containing a given item.  This
// panics if the item was never added.
func (p *DisjointSet[T]) Find(item T) T {
	root, ok := p.parent[item]
	//
	if !ok {
		panic("item not in disjoint set")
	}
	// Find root
	for root != p.parent[root] {
		root = p.parent[root]
	}
	// Compress path
	for item != root {
		next := p.parent[item]
		p.parent[item] = root
		item = next
	}
	//
	return root
}

// Union merges the classes containing two items.  This returns the
// representative of the merged class, and true if the two items were in
// distinct classes beforehand (i.e. a merge actually happened).  When both
// classes have equal rank, the representative of the first wins.
func (p *DisjointSet[T]) Union(first T, second T) (T, bool) {
	r1 := p.Find(first)
	r2 := p.Find(second)
	//
	if r1 == r2 {
		return r1, false
	}
	//
	k1, k2 := p.rank[r1], p.rank[r2]
	//
	switch {
	case k1 < k2:
		p.parent[r1] = r2
		return r2, true
	case k1 > k2:
		p.parent[r2] = r1
		return r1, true
	default:
		p.parent[r2] = r1
		p.rank[r1] = k1 + 1
		//
		return r1, true
	}
}

// Len returns the number of items held in this disjoint set.
func (p *DisjointSet[T]) Len() uint {
	return uint(len(p.parent))
}

// Clone returns an independent copy of this disjoint set.
func (p *DisjointSet[T]) Clone() *DisjointSet[T] {
	var q = NewDisjointSet[T]()
	//
	for k, v := range p.parent {
		q.parent[k] = v
	}
	//
	for k, v := range p.rank {
		q.rank[k] = v
	}
	//
	return q
}

// Clear removes all items from this disjoint set.
func (p *DisjointSet[T]) Clear() {
	clear(p.parent)
	clear(p.rank)
}
