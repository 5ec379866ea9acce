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
package graph

import (
	"github.com/bits-and-blooms/bitset"
)

// CycleDetector maintains a directed graph which is built incrementally, one
// node or edge at a time, and which can be queried at any point as to whether
// or not it remains acyclic.  Nodes are identified by arbitrary comparable
// items, but are stored internally using dense indices assigned in order of
// first appearance.  This order is used throughout, hence all results are
// deterministic with respect to the order in which nodes and edges were added.
type CycleDetector[T comparable] struct {
	// Maps each item to its dense index
	index map[T]uint
	// Items in order of first appearance
	nodes []T
	// Outgoing edges for each node
	edges [][]uint
	// Number of edges
	nEdges uint
}

// NewCycleDetector constructs an empty graph.
func NewCycleDetector[T comparable]() *CycleDetector[T] {
	return &CycleDetector[T]{index: make(map[T]uint)}
}

// MakeNode adds a given node to the graph, unless it already exists.
func (p *CycleDetector[T]) MakeNode(node T) {
	p.lookup(node)
}

// MakeEdge adds a directed edge from one node to another, creating either node
// if it does not already exist.
func (p *CycleDetector[T]) MakeEdge(from T, to T) {
	var (
		i = p.lookup(from)
		j = p.lookup(to)
	)
	//
	p.edges[i] = append(p.edges[i], j)
	p.nEdges++
}

// Nodes returns the number of nodes in this graph.
func (p *CycleDetector[T]) Nodes() uint {
	return uint(len(p.nodes))
}

// Edges returns the number of edges in this graph.
func (p *CycleDetector[T]) Edges() uint {
	return p.nEdges
}

// IsAcyclic checks whether or not this graph currently contains a cycle.
func (p *CycleDetector[T]) IsAcyclic() bool {
	_, ok := p.DependencyOrder()
	return ok
}

// DependencyOrder returns every node of the graph ordered such that, for every
// edge a -> b, b appears before a.  In other words, a node is only listed once
// everything it depends upon has been listed.  If the graph contains a cycle,
// then no such order exists and false is returned.
func (p *CycleDetector[T]) DependencyOrder() ([]T, bool) {
	var (
		n      = uint(len(p.nodes))
		order  = make([]T, 0, n)
		done   = bitset.New(n)
		onPath = bitset.New(n)
	)
	//
	for root := uint(0); root < n; root++ {
		if done.Test(root) {
			continue
		} else if !p.visit(root, done, onPath, &order) {
			return nil, false
		}
	}
	//
	return order, true
}

// Clear removes all nodes and edges from this graph.
func (p *CycleDetector[T]) Clear() {
	clear(p.index)
	p.nodes = p.nodes[:0]
	p.edges = p.edges[:0]
	p.nEdges = 0
}

// Clone returns an independent copy of this graph.
func (p *CycleDetector[T]) Clone() *CycleDetector[T] {
	var q = NewCycleDetector[T]()
	//
	for k, v := range p.index {
		q.index[k] = v
	}
	//
	q.nodes = append(q.nodes, p.nodes...)
	//
	for _, out := range p.edges {
		q.edges = append(q.edges, append([]uint(nil), out...))
	}
	//
	q.nEdges = p.nEdges
	//
	return q
}

// Iterative depth-first traversal which appends nodes in post-order, thus
// ensuring dependencies are always listed first.  Returns false upon
// encountering a back edge.
func (p *CycleDetector[T]) visit(root uint, done *bitset.BitSet, onPath *bitset.BitSet, order *[]T) bool {
	type frame struct {
		node uint
		next int
	}
	//
	var worklist = []frame{{root, 0}}
	//
	onPath.Set(root)
	//
	for len(worklist) > 0 {
		top := &worklist[len(worklist)-1]
		//
		if top.next < len(p.edges[top.node]) {
			succ := p.edges[top.node][top.next]
			top.next++
			//
			if onPath.Test(succ) {
				// back edge, hence cycle
				return false
			} else if !done.Test(succ) {
				onPath.Set(succ)
				worklist = append(worklist, frame{succ, 0})
			}
			//
			continue
		}
		// All successors visited
		onPath.Clear(top.node)
		done.Set(top.node)
		*order = append(*order, p.nodes[top.node])
		worklist = worklist[:len(worklist)-1]
	}
	//
	return true
}

func (p *CycleDetector[T]) lookup(node T) uint {
	if i, ok := p.index[node]; ok {
		return i
	}
	//
	i := uint(len(p.nodes))
	p.index[node] = i
	p.nodes = append(p.nodes, node)
	p.edges = append(p.edges, nil)
	//
	return i
}
