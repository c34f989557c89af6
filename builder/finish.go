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

package builder

import (
	"github.com/curlyfmt/curlyfmt/chunk"
	"github.com/curlyfmt/curlyfmt/rule"
	"github.com/curlyfmt/curlyfmt/writer"
)

// End finalizes the chunk vector and runs the line writer over it: the
// trailing hard split is emitted, the hard-split set is hardened
// transitively, hardened rules' chunks become hard splits, and the divide
// pass marks the positions where the solver may cut the problem.
//
// End may only be called on the root builder, with every rule, span, block
// and nesting scope closed.
func (b *Builder) End() writer.Output {
	if b.parent != nil {
		fail("End called on a block builder")
	}
	if len(b.rules) > 0 || len(b.lazyRules) > 0 {
		fail("End with %d open rules", len(b.rules)+len(b.lazyRules))
	}
	if len(b.openSpans) > 0 {
		fail("End with %d open spans", len(b.openSpans))
	}
	if !b.nesting.atRoot() {
		fail("End with open expression nesting")
	}
	if len(b.indents) > 1 {
		fail("End with %d open indents", len(b.indents)-1)
	}
	if len(b.blockArgNesting) > 0 {
		fail("End with open block-argument nesting")
	}

	b.emitPendingWhitespace()
	b.chunks = b.trimmedChunks()

	if len(b.chunks) > 0 {
		// Every chunk vector ends in a hard split.
		b.writeHardSplit(hardSplitArgs{})
	}

	b.graph.HardenTransitively(b.hard.order)
	hardenChunks(b.graph, b.chunks)
	b.divideChunks()

	w := writer.New(writer.Options{
		PageWidth:         b.opts.PageWidth,
		Indent:            b.opts.Indent,
		IsCompilationUnit: b.opts.IsCompilationUnit,
	}, b.graph)
	return w.Write(b.chunks)
}

// hardenChunks marks the split of every chunk owned by a hardened rule as
// hard, recursing into block children.
func hardenChunks(g *rule.Graph, chunks []*chunk.Chunk) {
	for _, c := range chunks {
		if s := c.Split(); s != nil && g.Hardened(s.Rule) {
			s.Harden()
		}
		hardenChunks(g, c.BlockChunks())
	}
}

// divideChunks marks the chunks where the solver may cut the problem: hard
// splits at statement level, with no block children, and with no rule's
// owned range crossing the cut.
func (b *Builder) divideChunks() {
	// Precompute, for every prefix, whether some rule owns chunks on both
	// sides of the cut after it.
	crossing := make([]bool, len(b.chunks))
	for _, c := range b.chunks {
		s := c.Split()
		if s == nil || s.IsHard() {
			// Hard and hardened splits always fire; partitions never need
			// to consider them jointly.
			continue
		}
		first := -1
		for _, idx := range b.graph.Chunks(s.Rule) {
			if first == -1 {
				first = idx
				continue
			}
			for i := first; i < idx; i++ {
				crossing[i] = true
			}
		}
	}

	for i, c := range b.chunks {
		s := c.Split()
		if s == nil || !s.IsHard() {
			continue
		}
		if s.Nesting != nil && s.Nesting.IsNested() {
			continue
		}
		if len(c.BlockChunks()) > 0 {
			continue
		}
		if crossing[i] {
			continue
		}
		c.MarkDivide()
	}
}
