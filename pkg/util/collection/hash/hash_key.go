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
package hash

import (
	"hash/fnv"
	"slices"
)

// Hasher provides a generic definition of a hashing function suitable for use
// within a hash map.  Unlike a plain Go map key, equality is decided by the
// key itself so that collisions are handled explicitly.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

// ============================================================================
// SliceKey Implementation
// ============================================================================

var _ Hasher[SliceKey[uint32]] = SliceKey[uint32]{}

// SliceKey wraps a sequence of (small) unsigned integers, such as a sequence of
// interned tokens, as something which can be safely placed into a hash map.
type SliceKey[T ~uint32] struct {
	items []T
}

// NewSliceKey constructs a new key from a given sequence.  The sequence is
// copied so that subsequent modifications do not affect the key.
func NewSliceKey[T ~uint32](items []T) SliceKey[T] {
	return SliceKey[T]{slices.Clone(items)}
}

// Items returns the underlying sequence of this key.
func (p SliceKey[T]) Items() []T {
	return p.items
}

// Equals compares two keys to check whether they represent the same
// underlying sequence (or not).
func (p SliceKey[T]) Equals(other SliceKey[T]) bool {
	return slices.Equal(p.items, other.items)
}

// Hash generates a 64-bit hashcode from the underlying sequence.
func (p SliceKey[T]) Hash() uint64 {
	var (
		hash = fnv.New64a()
		buf  [4]byte
	)
	//
	for _, item := range p.items {
		buf[0] = byte(item)
		buf[1] = byte(item >> 8)
		buf[2] = byte(item >> 16)
		buf[3] = byte(item >> 24)
		hash.Write(buf[:])
	}
	// Done
	return hash.Sum64()
}
