// Copyright 2023-2026 The curlyfmt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arena provides an append-only arena with compressed integer
// pointers.
//
// The rule graph refers to rules exclusively through [Pointer] handles, which
// keeps the mutually-constraining rules free of Go pointer cycles and makes
// graph traversals (containment, transitive hardening) plain integer walks.
package arena

import (
	"fmt"
	"math/bits"
)

// blockMinLenShift is the log2 of the capacity of the smallest block in an
// arena's table.
const (
	blockMinLenShift = 4
	blockMinLen      = 1 << blockMinLenShift
)

// Untyped is an untyped arena pointer.
//
// The value of a pointer is one plus the number of elements allocated before
// it; the zero value is nil.
type Untyped uint32

// Nil returns whether this pointer is nil.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed pointer into an [Arena] of T.
//
// It cannot be dereferenced directly; see [Pointer.In]. The zero value is nil.
type Pointer[T any] Untyped

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// In looks up this pointer in the given arena.
//
// arena must be the arena that allocated this pointer; otherwise this returns
// an arbitrary value or panics. Panics if p is nil.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(Untyped(p))
}

// Arena is an append-only allocator whose values never move once allocated.
//
// Internally it keeps a table of doubling blocks, mimicking the growth of an
// ordinary slice without ever reallocating a block. Lookup is O(1) at the
// cost of two pointer loads.
//
// A zero Arena is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(table[0]) == blockMinLen.
	// 2. cap(table[n]) == 2*cap(table[n-1]).
	// 3. All blocks but the last are full.
	table [][]T
}

// New allocates a new value on the arena and returns its handle.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.table == nil {
		a.table = [][]T{make([]T, 0, blockMinLen)}
	}

	last := &a.table[len(a.table)-1]
	if len(*last) == cap(*last) {
		a.table = append(a.table, make([]T, 0, 2*cap(*last)))
		last = &a.table[len(a.table)-1]
	}

	*last = append(*last, value)
	return Pointer[T](Untyped(a.Len()))
}

// At dereferences an untyped arena pointer, as if by [Pointer.In].
func (a *Arena[T]) At(ptr Untyped) *T {
	if ptr.Nil() {
		a = nil // Trigger an ordinary nil dereference on purpose.
	}
	block, idx := a.coordinates(int(ptr) - 1)
	return &a.table[block][idx]
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int {
	if len(a.table) == 0 {
		return 0
	}

	// Only the last block may be partially filled.
	return a.lenOfFirstNBlocks(len(a.table)-1) + len(a.table[len(a.table)-1])
}

// lenOfFirstNBlocks returns the total capacity of the first n blocks.
func (a *Arena[T]) lenOfFirstNBlocks(n int) int {
	// The blocks have capacities m, 2m, 4m, ..., so the first n of them hold
	// m*(2^n - 1) values.
	return max(0, blockMinLen<<n-blockMinLen)
}

// coordinates converts an index into a (block, offset) pair, bounds-checking
// along the way.
func (a *Arena[T]) coordinates(idx int) (int, int) {
	if idx < 0 || idx >= a.Len() {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx))
	}

	// Block starts sit at m*(2^n - 1), so adding m turns them into exact
	// powers of two; the high bit then identifies the block.
	block := bits.UintSize - bits.LeadingZeros(uint(idx)+blockMinLen)
	block -= blockMinLenShift + 1

	return block, idx - a.lenOfFirstNBlocks(block)
}
