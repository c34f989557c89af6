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

// Package interval provides an ordered collection of possibly-overlapping
// intervals with associated values.
//
// The line splitter uses it to index cost-bearing spans over chunk ranges, so
// that each candidate layout can quickly find the spans a fired split lands
// inside of.
package interval

import (
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Endpoint is a type that can be used as an interval endpoint.
type Endpoint = constraints.Integer

// Entry is an interval [Start, End] with an associated value.
type Entry[K constraints.Integer, V any] struct {
	Start, End K
	Value      V

	seq int // Insertion order; disambiguates identical intervals.
}

// Set is a collection of intervals ordered by start point. Unlike a
// conventional interval map, overlapping and duplicate intervals are allowed.
//
// A zero Set is empty and ready to use.
type Set[K constraints.Integer, V any] struct {
	tree *btree.BTreeG[Entry[K, V]]
	seq  int
}

func less[K constraints.Integer, V any](a, b Entry[K, V]) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.End != b.End {
		return a.End < b.End
	}
	return a.seq < b.seq
}

// Insert adds the interval [start, end] to the collection.
func (s *Set[K, V]) Insert(start, end K, value V) {
	if s.tree == nil {
		s.tree = btree.NewBTreeGOptions(less[K, V], btree.Options{NoLocks: true})
	}
	s.seq++
	s.tree.Set(Entry[K, V]{Start: start, End: end, Value: value, seq: s.seq})
}

// Len returns the number of intervals in the collection.
func (s *Set[K, V]) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// All returns an iterator over all intervals, ordered by start point.
func (s *Set[K, V]) All() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		if s.tree == nil {
			return
		}
		s.tree.Scan(func(e Entry[K, V]) bool { return yield(e) })
	}
}

// Covering returns an iterator over the intervals that contain p.
func (s *Set[K, V]) Covering(p K) iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		if s.tree == nil {
			return
		}
		// Every covering interval starts at or before p, so scan the prefix
		// and filter by end point.
		s.tree.Scan(func(e Entry[K, V]) bool {
			if e.Start > p {
				return false
			}
			if e.End >= p {
				return yield(e)
			}
			return true
		})
	}
}
