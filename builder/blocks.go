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

import "github.com/curlyfmt/curlyfmt/chunk"

// StartBlockArgumentNesting snapshots the current expression nesting so that
// child blocks opened while an argument list is active anchor to the call,
// not to whatever subexpression happens to be innermost.
func (b *Builder) StartBlockArgumentNesting() {
	b.blockArgNesting = append(b.blockArgNesting, b.nesting.current())
}

// EndBlockArgumentNesting releases the most recent snapshot.
func (b *Builder) EndBlockArgumentNesting() {
	if len(b.blockArgNesting) == 0 {
		fail("unbalanced EndBlockArgumentNesting")
	}
	b.blockArgNesting = b.blockArgNesting[:len(b.blockArgNesting)-1]
}

// StartBlock opens a child block hanging off the current chunk and returns
// a fresh builder writing into it. The child must be closed with
// [Builder.EndBlock], and blocks nest strictly: a parent builder must not be
// used while a child is open.
func (b *Builder) StartBlock() *Builder {
	if len(b.chunks) == 0 {
		fail("StartBlock requires a chunk to hang the block off")
	}
	parent := b.chunks[len(b.chunks)-1]

	return &Builder{
		opts:        b.opts,
		graph:       b.graph,
		indents:     []int{0},
		nesting:     newNestingBuilder(),
		hard:        b.hard,
		parent:      b,
		parentChunk: parent,
	}
}

// EndBlock closes a child block and returns the parent builder.
//
// When the block contains hard splits — ignoring the block's own trailing
// split if ignoreTrailingSplit is set — or when forceSplit is passed, the
// rules surrounding the block in the parent are forced to split. The forcing
// is recorded in the builder tree's shared hard-split set, so it survives
// any number of later blocks in the same call.
func (b *Builder) EndBlock(ignoreTrailingSplit, forceSplit bool) *Builder {
	p := b.parent
	if p == nil {
		fail("EndBlock without StartBlock")
	}
	if len(b.rules) > 0 || len(b.lazyRules) > 0 {
		fail("block closed with %d open rules", len(b.rules)+len(b.lazyRules))
	}
	if len(b.openSpans) > 0 {
		fail("block closed with %d open spans", len(b.openSpans))
	}

	// Whitespace still pending in the block becomes its trailing split.
	b.emitPendingWhitespace()

	if forceSplit || b.hasHardSplits(ignoreTrailingSplit) {
		p.forceActiveRules()
	}

	b.parentChunk.SetBlockChunks(b.trimmedChunks())

	// Re-anchor the parent chunk's split to the argument-list nesting
	// snapshotted by StartBlockArgumentNesting, if one is active.
	if n := len(p.blockArgNesting); n > 0 {
		if s := b.parentChunk.Split(); s != nil {
			s.Nesting = p.blockArgNesting[n-1]
		}
	}

	return p
}

// trimmedChunks returns the block's chunks with any trailing whitespace-only
// chunk removed.
func (b *Builder) trimmedChunks() []*chunk.Chunk {
	chunks := b.chunks
	for len(chunks) > 0 {
		last := chunks[len(chunks)-1]
		if last.Text() != "" || last.Split() != nil {
			break
		}
		chunks = chunks[:len(chunks)-1]
	}
	return chunks
}
