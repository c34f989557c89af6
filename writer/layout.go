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
	"strings"

	"github.com/curlyfmt/curlyfmt/chunk"
)

const (
	// CostOverflowChar is the cost of each character a line runs past the
	// page width. It dwarfs every rule and span cost, so overflow is avoided
	// whenever any split can prevent it.
	CostOverflowChar = 10000

	// CostNestingMismatch is the cost of two distinct expression nesting
	// levels of the same depth being in use at once. Same-depth levels share
	// a column, which reads as one context where there are two.
	CostNestingMismatch = 1000
)

// layoutResult is one rendered candidate for a partition.
type layoutResult struct {
	text string
	cost int

	// trailingNewlines and trailingIndent describe the partition's final
	// fired split, which the caller renders: the newline count it demands
	// and the indentation of whatever line comes next.
	trailingNewlines int
	trailingIndent   int

	// Selection offsets into text; -1 when the selection does not land in
	// this partition.
	selStart, selEnd int
}

// layout renders the partition under the solver's current complete
// assignment and computes its cost.
func (s *solver) layout() layoutResult {
	g := s.w.graph

	// Decide which splits fire, and collect the expression nesting levels
	// the fired splits put in use.
	fired := make([]bool, s.hi-s.lo)
	used := make(map[*chunk.NestingLevel]bool)
	for i := s.lo; i < s.hi; i++ {
		sp := s.chunks[i].Split()
		if sp == nil {
			continue
		}
		if sp.IsHard() || g.IsSplitAt(sp.Rule, s.value(sp.Rule), i) {
			fired[i-s.lo] = true
			if sp.Nesting != nil && sp.Nesting.IsNested() {
				used[sp.Nesting] = true
			}
		}
	}

	offsets := nestingOffsets(used)
	cost := nestingMismatchCost(used)

	// Each rule's cost is charged once if it takes any splitting value.
	for i, v := range s.values {
		if v != 0 {
			cost += g.Rule(s.rules[i]).Cost()
		}
	}

	e := &emitter{
		pageWidth: s.w.opts.PageWidth,
		col:       s.startCol,
		selStart:  -1,
		selEnd:    -1,
	}
	charged := make(map[*chunk.Span]bool)

	for i := s.lo; i < s.hi; i++ {
		c := s.chunks[i]
		sp := c.Split()
		isFired := sp != nil && fired[i-s.lo]

		e.text(c.Text(), c.Width(), c.SelectionStart(), c.SelectionEnd())

		if len(c.BlockChunks()) > 0 {
			if isFired {
				childIndent := s.indent + sp.Indent + chunk.IndentBlock
				block := s.w.formatBlock(c, childIndent)
				cost += block.cost

				e.split(1, childIndent)
				e.insert(block.text, block.selStart, block.selEnd)
				e.split(1, s.nextIndent(sp, offsets))
			} else {
				if sp != nil && sp.SpaceWhenUnsplit {
					e.text(" ", 1, -1, -1)
				}
				e.text(unsplitText(c, false), c.UnsplitBlockLength(), -1, -1)
			}
		} else if isFired {
			newlines := 1
			if sp.IsDouble == chunk.TristateDouble {
				newlines = 2
			}
			e.split(newlines, s.nextIndent(sp, offsets))
		} else if sp != nil && sp.SpaceWhenUnsplit {
			e.text(" ", 1, -1, -1)
		}

		// A fired split charges every span it lands inside of, once.
		if isFired {
			for entry := range s.spans.Covering(i) {
				span := entry.Value
				if span.Contains(i) && !charged[span] {
					charged[span] = true
					cost += span.Cost()
				}
			}
		}
	}

	cost += e.finish()

	return layoutResult{
		text:             e.buf.String(),
		cost:             cost,
		trailingNewlines: e.pendingNewlines,
		trailingIndent:   e.pendingIndent,
		selStart:         e.selStart,
		selEnd:           e.selEnd,
	}
}

// nextIndent computes the indentation of the line a fired split begins.
func (s *solver) nextIndent(sp *chunk.SplitInfo, offsets map[*chunk.NestingLevel]int) int {
	if sp.FlushLeft {
		return 0
	}
	n := s.indent + sp.Indent
	if sp.Nesting != nil {
		n += offsets[sp.Nesting]
	}
	return n
}

// nestingOffsets assigns a column offset to every nesting level in use: the
// sum of the indentation requested by the level and its in-use ancestors.
// Levels that never begin a line contribute nothing, so unused intermediate
// levels do not push text further right.
func nestingOffsets(used map[*chunk.NestingLevel]bool) map[*chunk.NestingLevel]int {
	offsets := make(map[*chunk.NestingLevel]int, len(used))
	for level := range used {
		var n int
		for l := level; l != nil; l = l.Parent() {
			if used[l] {
				n += l.Indent()
			}
		}
		offsets[level] = n
	}
	return offsets
}

// nestingMismatchCost penalizes assignments that put two distinct nesting
// levels of the same depth in use at once.
func nestingMismatchCost(used map[*chunk.NestingLevel]bool) int {
	var cost int
	byDepth := make(map[int]int, len(used))
	for level := range used {
		byDepth[level.Depth()]++
	}
	for _, n := range byDepth {
		cost += (n - 1) * CostNestingMismatch
	}
	return cost
}

// unsplitText renders a block parent's child block on one line, with every
// rule inside it unsplit. withOwnText includes the parent's text and
// trailing space; the top-level call emits those itself for selection
// tracking.
func unsplitText(parent *chunk.Chunk, withOwnText bool) string {
	var sb strings.Builder
	if withOwnText {
		sb.WriteString(parent.Text())
		if sp := parent.Split(); sp != nil && sp.SpaceWhenUnsplit {
			sb.WriteByte(' ')
		}
	}
	for _, c := range parent.BlockChunks() {
		if len(c.BlockChunks()) > 0 {
			sb.WriteString(unsplitText(c, true))
			continue
		}
		sb.WriteString(c.Text())
		if sp := c.Split(); sp != nil && sp.SpaceWhenUnsplit {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// emitter accumulates output text while tracking the current column and the
// overflow cost of finished lines. Newlines and the following indentation
// are buffered until text actually arrives, so lines never carry trailing
// whitespace and trailing newlines stay adjustable.
type emitter struct {
	buf       strings.Builder
	pageWidth int
	col       int

	pendingNewlines int
	pendingIndent   int

	overflow int

	selStart, selEnd int
}

// text writes a run of text width columns wide, recording selection offsets
// if the run carries them.
func (e *emitter) text(text string, width, selStart, selEnd int) {
	if text == "" {
		return
	}
	e.flush()
	if selStart >= 0 {
		e.selStart = e.buf.Len() + selStart
	}
	if selEnd >= 0 {
		e.selEnd = e.buf.Len() + selEnd
	}
	e.buf.WriteString(text)
	e.col += width
}

// split records a fired split: newlines newlines, then indent columns of
// indentation before whatever text comes next.
func (e *emitter) split(newlines, indent int) {
	e.pendingNewlines = max(e.pendingNewlines, newlines)
	e.pendingIndent = indent
}

// insert splices in pre-rendered multi-line text whose lines were already
// costed, such as a recursively formatted block.
func (e *emitter) insert(text string, selStart, selEnd int) {
	if text == "" {
		return
	}
	e.flush()
	if selStart >= 0 {
		e.selStart = e.buf.Len() + selStart
	}
	if selEnd >= 0 {
		e.selEnd = e.buf.Len() + selEnd
	}
	e.buf.WriteString(text)
	e.col = 0
}

// flush materializes pending newlines and indentation, charging the
// finished line's overflow.
func (e *emitter) flush() {
	if e.pendingNewlines == 0 {
		return
	}
	e.endLine()
	for range e.pendingNewlines {
		e.buf.WriteByte('\n')
	}
	writeSpaces(&e.buf, e.pendingIndent)
	e.col = e.pendingIndent
	e.pendingNewlines = 0
}

// finish charges the final line and returns the total overflow cost.
func (e *emitter) finish() int {
	e.endLine()
	return e.overflow
}

func (e *emitter) endLine() {
	if e.col > e.pageWidth {
		e.overflow += (e.col - e.pageWidth) * CostOverflowChar
	}
	e.col = 0
}
