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

import (
	"testing"

	"github.com/consensys/go-metamath/pkg/util/assert"
)

func Test_DisjointSet_01(t *testing.T) {
	ds := NewDisjointSet[uint]()
	ds.MakeSet(1)
	ds.MakeSet(2)
	//
	assert.Equal(t, uint(1), ds.Find(1))
	assert.Equal(t, uint(2), ds.Find(2))
	assert.False(t, ds.Contains(3))
}

func Test_DisjointSet_02(t *testing.T) {
	ds := NewDisjointSet[uint]()
	ds.MakeSet(1)
	ds.MakeSet(2)
	// Equal ranks, so first wins
	root, merged := ds.Union(1, 2)
	assert.True(t, merged)
	assert.Equal(t, uint(1), root)
	assert.Equal(t, uint(1), ds.Find(2))
	// Already merged
	root, merged = ds.Union(2, 1)
	assert.False(t, merged)
	assert.Equal(t, uint(1), root)
}

func Test_DisjointSet_03(t *testing.T) {
	ds := NewDisjointSet[uint]()
	//
	for i := uint(0); i < 8; i++ {
		ds.MakeSet(i)
	}
	// Higher rank class absorbs lower rank class
	ds.Union(0, 1)
	root, _ := ds.Union(2, 0)
	assert.Equal(t, uint(0), root)
	// Chain everything together
	for i := uint(3); i < 8; i++ {
		ds.Union(i, i-1)
	}
	//
	for i := uint(0); i < 8; i++ {
		assert.Equal(t, ds.Find(0), ds.Find(i))
	}
}

func Test_DisjointSet_04(t *testing.T) {
	ds := NewDisjointSet[uint]()
	ds.MakeSet(1)
	ds.MakeSet(2)
	clone := ds.Clone()
	clone.Union(1, 2)
	//
	assert.True(t, ds.Find(1) != ds.Find(2))
	assert.Equal(t, clone.Find(1), clone.Find(2))
	//
	ds.Clear()
	assert.Equal(t, uint(0), ds.Len())
}
