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

// Package writer turns a finished chunk vector into formatted output.
//
// The chunk vector is cut into independent partitions at the divide points
// the builder marked. Each partition is solved separately: the solver
// enumerates assignments of values to the partition's soft rules, scores
// each resulting layout, and keeps the cheapest. Child blocks hanging off a
// chunk are solved recursively with their own solver, at a deeper
// indentation, and the result is cached per indentation so that revisiting
// a block while exploring the parent's assignments is free.
package writer

import (
	"strings"

	"github.com/curlyfmt/curlyfmt/chunk"
	"github.com/curlyfmt/curlyfmt/rule"
)

// Options configures a Writer.
type Options struct {
	// PageWidth is the column the output tries to stay within.
	PageWidth int

	// Indent is the number of spaces of leading indentation the output
	// starts at.
	Indent int

	// IsCompilationUnit selects the trailing-newline policy: a compilation
	// unit ends in exactly one newline, a statement fragment in none.
	IsCompilationUnit bool
}

// Output is the result of writing a chunk vector.
type Output struct {
	// Text is the formatted output.
	Text string

	// SelectionStart is the offset of the preserved editor selection in
	// Text, or -1 if no selection was recorded.
	SelectionStart int

	// SelectionLength is the length of the preserved editor selection.
	SelectionLength int
}

// Writer lays out chunk vectors. A Writer carries the block cache across
// partitions, so one Writer handles one chunk vector end to end.
type Writer struct {
	opts  Options
	graph *rule.Graph

	// blocks caches formatted child blocks per indentation. A block is
	// re-laid-out for every indentation the parent's candidate layouts put
	// it at, but never twice for the same one.
	blocks map[*chunk.Chunk]map[int]blockResult
}

type blockResult struct {
	text     string
	cost     int
	selStart int
	selEnd   int
}

// New returns a Writer for the given options and rule graph.
func New(opts Options, graph *rule.Graph) *Writer {
	return &Writer{
		opts:   opts,
		graph:  graph,
		blocks: make(map[*chunk.Chunk]map[int]blockResult),
	}
}

// Write solves and renders the chunk vector.
func (w *Writer) Write(chunks []*chunk.Chunk) Output {
	out := Output{SelectionStart: -1}
	if len(chunks) == 0 {
		return out
	}

	var buf strings.Builder
	var selStart, selEnd = -1, -1

	// Trailing newlines and the next line's indentation carry across
	// partition boundaries: a partition's final hard split says how the next
	// partition begins.
	pendingNewlines := 0
	pendingIndent := w.opts.Indent

	lo := 0
	for lo < len(chunks) {
		hi := lo
		for hi < len(chunks)-1 && !chunks[hi].CanDivide() {
			hi++
		}
		hi++

		best := w.solvePartition(chunks, lo, hi, w.opts.Indent, pendingIndent)

		if best.text != "" {
			for range pendingNewlines {
				buf.WriteByte('\n')
			}
			writeSpaces(&buf, pendingIndent)
		}
		if best.selStart >= 0 {
			selStart = buf.Len() + best.selStart
		}
		if best.selEnd >= 0 {
			selEnd = buf.Len() + best.selEnd
		}
		buf.WriteString(best.text)
		pendingNewlines = best.trailingNewlines
		pendingIndent = best.trailingIndent

		lo = hi
	}

	text := buf.String()
	if w.opts.IsCompilationUnit && text != "" {
		text += "\n"
	}

	out.Text = text
	if selStart >= 0 {
		out.SelectionStart = selStart
		if selEnd >= selStart {
			out.SelectionLength = selEnd - selStart
		}
	}
	return out
}

// formatBlock lays out a chunk's child block at the given indentation,
// caching the result.
func (w *Writer) formatBlock(parent *chunk.Chunk, indent int) blockResult {
	perIndent := w.blocks[parent]
	if perIndent == nil {
		perIndent = make(map[int]blockResult)
		w.blocks[parent] = perIndent
	}
	if r, ok := perIndent[indent]; ok {
		return r
	}

	chunks := parent.BlockChunks()
	l := w.solvePartition(chunks, 0, len(chunks), indent, indent)
	r := blockResult{
		text:     l.text,
		cost:     l.cost,
		selStart: l.selStart,
		selEnd:   l.selEnd,
	}
	perIndent[indent] = r
	return r
}

func writeSpaces(buf *strings.Builder, n int) {
	for range n {
		buf.WriteByte(' ')
	}
}
