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

package rule

import (
	"slices"

	"github.com/curlyfmt/curlyfmt/internal/arena"
)

// node is a rule plus the graph's bookkeeping about it.
type node struct {
	rule Rule

	// outer is the set of rules whose scope contains this one.
	outer []ID

	// contained is the set of rules opened inside this one's scope; these
	// are the only rules this one may constrain.
	contained []ID

	// chunks are the indices of the chunks this rule owns, in order. The
	// position of a chunk in this list is its ordinal for
	// [Rule.IsSplitAtValue].
	chunks []int

	hardened bool
}

// Graph is an arena of rules and the containment and constraint
// relationships between them.
//
// A zero Graph is empty and ready to use.
type Graph struct {
	nodes arena.Arena[node]
}

// New adds a rule to the graph and returns its handle.
func (g *Graph) New(r Rule) ID {
	return ID(g.nodes.New(node{rule: r}))
}

// Rule resolves a handle to its rule.
func (g *Graph) Rule(id ID) Rule {
	return g.at(id).rule
}

// Contain records that outer's scope wraps inner, giving outer the
// opportunity to constrain inner.
func (g *Graph) Contain(outer, inner ID) {
	if outer == inner {
		return
	}

	in := g.at(inner)
	if slices.Contains(in.outer, outer) {
		return
	}
	in.outer = append(in.outer, outer)

	out := g.at(outer)
	out.contained = append(out.contained, inner)
	if c, ok := out.rule.(Container); ok {
		c.Contained(inner, in.rule)
	}
}

// Outer returns the rules whose scope contains id.
func (g *Graph) Outer(id ID) []ID {
	return g.at(id).outer
}

// Contained returns the rules opened inside id's scope, the only rules id
// may constrain.
func (g *Graph) Contained(id ID) []ID {
	return g.at(id).contained
}

// AddChunk records that the rule owns the chunk at the given index. Indices
// must be added in increasing order.
func (g *Graph) AddChunk(id ID, index int) {
	n := g.at(id)
	if len(n.chunks) > 0 && n.chunks[len(n.chunks)-1] == index {
		return
	}
	n.chunks = append(n.chunks, index)
}

// Chunks returns the chunk indices the rule owns, in increasing order.
func (g *Graph) Chunks(id ID) []int {
	return g.at(id).chunks
}

// LastChunk returns the largest chunk index the rule owns, or -1 if it owns
// none.
func (g *Graph) LastChunk(id ID) int {
	n := g.at(id)
	if len(n.chunks) == 0 {
		return -1
	}
	return n.chunks[len(n.chunks)-1]
}

// Harden pins the rule to its fully-split value.
func (g *Graph) Harden(id ID) {
	g.at(id).hardened = true
}

// Hardened returns whether the rule has been pinned to its fully-split
// value.
func (g *Graph) Hardened(id ID) bool {
	return g.at(id).hardened
}

// HardenTransitively hardens every seed rule plus every rule forced to its
// fully-split value by a hardened rule's constraints. Each rule is hardened
// at most once, so the worklist terminates.
func (g *Graph) HardenTransitively(seeds []ID) {
	work := slices.Clone(seeds)
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]

		n := g.at(id)
		if n.hardened {
			continue
		}
		n.hardened = true

		full := n.rule.FullySplitValue()
		for _, inner := range n.contained {
			in := g.at(inner)
			if in.hardened {
				continue
			}
			forced, ok := n.rule.Constrain(full, inner, in.rule)
			if ok && forced == in.rule.FullySplitValue() {
				work = append(work, inner)
			}
		}
	}
}

// IsSplitAt returns whether the split owned by the rule at the given chunk
// index fires when the rule takes value. Hardened rules always split.
func (g *Graph) IsSplitAt(id ID, value, chunkIndex int) bool {
	n := g.at(id)
	if n.hardened {
		return true
	}
	ordinal, found := slices.BinarySearch(n.chunks, chunkIndex)
	if !found {
		return false
	}
	return n.rule.IsSplitAtValue(value, ordinal, len(n.chunks))
}

// NumValues returns the number of values the rule can currently take: one
// if hardened, the rule's own count otherwise.
func (g *Graph) NumValues(id ID) int {
	n := g.at(id)
	if n.hardened {
		return 1
	}
	return n.rule.NumValues()
}

// Value returns the concrete value behind a solver choice: hardened rules
// only ever take their fully-split value.
func (g *Graph) Value(id ID, choice int) int {
	n := g.at(id)
	if n.hardened {
		return n.rule.FullySplitValue()
	}
	return choice
}

func (g *Graph) at(id ID) *node {
	return g.nodes.At(arena.Untyped(id))
}
