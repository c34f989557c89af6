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

package writer

import (
	"fmt"
	"strings"

	"github.com/curlyfmt/curlyfmt/chunk"
	"github.com/curlyfmt/curlyfmt/internal/interval"
	"github.com/curlyfmt/curlyfmt/rule"
)

// solver finds the cheapest assignment of values to the soft rules of one
// partition.
//
// Chunk indices are absolute within the chunk vector the partition was cut
// from, because that is the index space the rule graph and the spans were
// recorded against.
type solver struct {
	w      *Writer
	chunks []*chunk.Chunk
	lo, hi int

	// indent is the base statement indentation of the partition; startCol is
	// the column its first line begins at, already emitted by the caller.
	indent   int
	startCol int

	// rules are the partition's soft rules in first-use order; index maps a
	// rule back to its position.
	rules []rule.ID
	index map[rule.ID]int

	// spans indexes the partition's cost-bearing spans by chunk range.
	spans interval.Set[int, *chunk.Span]

	values []int // Current assignment; -1 is unbound.

	best     layoutResult
	bestSet  bool
	searched map[string]bool
}

// solvePartition lays out chunks[lo:hi] at the given base indentation and
// returns the cheapest layout.
func (w *Writer) solvePartition(chunks []*chunk.Chunk, lo, hi, indent, startCol int) layoutResult {
	s := &solver{
		w:        w,
		chunks:   chunks,
		lo:       lo,
		hi:       hi,
		indent:   indent,
		startCol: startCol,
		index:    make(map[rule.ID]int),
		searched: make(map[string]bool),
	}

	seenSpans := make(map[*chunk.Span]bool)
	for i := lo; i < hi; i++ {
		c := chunks[i]
		if sp := c.Split(); sp != nil && !sp.IsHard() {
			if _, ok := s.index[sp.Rule]; !ok {
				s.index[sp.Rule] = len(s.rules)
				s.rules = append(s.rules, sp.Rule)
			}
		}
		for _, span := range c.Spans() {
			if span.End() < 0 || seenSpans[span] {
				continue
			}
			seenSpans[span] = true
			s.spans.Insert(span.Start(), span.End(), span)
		}
	}

	s.values = make([]int, len(s.rules))
	for i := range s.values {
		s.values[i] = -1
	}

	s.search(0)
	if !s.bestSet {
		// Constraints can only rule out every enumeration when the rule
		// graph is inconsistent; splitting everything is always renderable.
		for i, id := range s.rules {
			s.values[i] = w.graph.Rule(id).FullySplitValue()
		}
		s.best = s.layout()
	}
	return s.best
}

// search extends the current partial assignment, binding unbound rules in
// order and propagating constraints, until every rule has a value; complete
// assignments are laid out and compared against the best so far.
//
// boundCost is the rule cost already committed by the partial assignment; it
// is a lower bound on the full cost and prunes branches that cannot beat the
// best layout.
func (s *solver) search(boundCost int) {
	if s.bestSet && boundCost > s.best.cost {
		return
	}

	next := -1
	for i, v := range s.values {
		if v == -1 {
			next = i
			break
		}
	}
	if next == -1 {
		key := assignmentKey(s.values)
		if s.searched[key] {
			return
		}
		s.searched[key] = true

		l := s.layout()
		if !s.bestSet || l.cost < s.best.cost {
			s.best = l
			s.bestSet = true
		}
		return
	}

	id := s.rules[next]
	g := s.w.graph
	for choice := range g.NumValues(id) {
		value := g.Value(id, choice)

		var bound []int
		if s.bind(id, value, &bound) {
			cost := boundCost
			for _, i := range bound {
				if s.values[i] != 0 {
					cost += g.Rule(s.rules[i]).Cost()
				}
			}
			s.search(cost)
		}
		for _, i := range bound {
			s.values[i] = -1
		}
	}
}

// bind assigns value to id and propagates the constraints of and on id,
// recording every binding it makes in bound. It reports whether the
// assignment is consistent; on failure the caller unwinds bound.
func (s *solver) bind(id rule.ID, value int, bound *[]int) bool {
	g := s.w.graph

	pos, tracked := s.index[id]
	if !tracked {
		// A rule from outside the partition, or a hardened one. Hardened
		// rules are pinned to their fully-split value; anything else is
		// unconstrained here.
		if g.Hardened(id) {
			return value == g.Rule(id).FullySplitValue()
		}
		return true
	}
	if s.values[pos] != -1 {
		return s.values[pos] == value
	}
	s.values[pos] = value
	*bound = append(*bound, pos)

	r := g.Rule(id)

	// Forward: this rule's value may force values onto the rules it
	// contains.
	for _, inner := range g.Contained(id) {
		forced, ok := r.Constrain(value, inner, g.Rule(inner))
		if !ok {
			continue
		}
		if !s.bind(inner, forced, bound) {
			return false
		}
	}

	// Backward: an already-decided outer rule may force a value onto this
	// one.
	for _, outer := range g.Outer(id) {
		var outerValue int
		if opos, ok := s.index[outer]; ok {
			if s.values[opos] == -1 {
				continue
			}
			outerValue = s.values[opos]
		} else if g.Hardened(outer) {
			outerValue = g.Rule(outer).FullySplitValue()
		} else {
			continue
		}
		forced, ok := g.Rule(outer).Constrain(outerValue, id, r)
		if ok && forced != value {
			return false
		}
	}
	return true
}

// value returns the assigned value of the rule owning a split, treating
// rules from outside the partition as unsplit.
func (s *solver) value(id rule.ID) int {
	if pos, ok := s.index[id]; ok {
		return s.values[pos]
	}
	return 0
}

func assignmentKey(values []int) string {
	var sb strings.Builder
	for _, v := range values {
		fmt.Fprintf(&sb, "%d,", v)
	}
	return sb.String()
}
