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

// Package chunk defines the intermediate representation of the layout
// engine: atomic units of output text ([Chunk]) terminated by potential
// split points ([SplitInfo]), cost-bearing [Span]s, and expression
// [NestingLevel]s.
package chunk

import (
	"github.com/rivo/uniseg"

	"github.com/curlyfmt/curlyfmt/internal/stringsx"
	"github.com/curlyfmt/curlyfmt/rule"
)

// Tristate is a value that can be unknown in addition to true-ish states.
// It is used for the "is this split a blank line" decision, which may be
// made after the split itself is created.
type Tristate int8

const (
	// TristateUnknown means the decision has not been made yet.
	TristateUnknown Tristate = iota
	// TristateSingle means a single newline.
	TristateSingle
	// TristateDouble means a blank line (two newlines).
	TristateDouble
)

// SplitInfo describes the split point terminating a chunk.
type SplitInfo struct {
	// Rule is the rule that owns this split and decides whether it fires.
	Rule rule.ID

	// Indent is the statement-level indentation, in spaces, in effect at the
	// split.
	Indent int

	// Nesting is the expression nesting context of the split. A nil Nesting
	// means the split is at block level.
	Nesting *NestingLevel

	// FlushLeft forces the next line to start at column 0 regardless of
	// Indent and Nesting.
	FlushLeft bool

	// IsDouble records whether the split emits a blank line when it fires.
	// It may remain unknown until source newlines have been preserved, at
	// which point unknown is treated as a single newline.
	IsDouble Tristate

	// SpaceWhenUnsplit adds a single space after the chunk's text when the
	// owning rule decides not to split here.
	SpaceWhenUnsplit bool

	// hard is set when the owning rule has been hardened; the split then
	// always fires.
	hard bool
}

// Harden marks this split as unconditional.
func (s *SplitInfo) Harden() { s.hard = true }

// IsHard returns whether this split always fires.
func (s *SplitInfo) IsHard() bool { return s.hard }

// Chunk is an atomic unit of output: a run of text terminated by an optional
// split point.
//
// Invariants maintained by the builder:
//   - a chunk without a split is never the last chunk;
//   - a chunk marked as a divide point has a hard split, block-level nesting,
//     and no block children.
type Chunk struct {
	text  string
	split *SplitInfo

	spans []*Span

	// blockChunks is the child block introduced by this chunk, if any: the
	// body of a collection literal or of a function passed as an argument.
	blockChunks []*Chunk

	// unsplitBlockLength caches the total text length of blockChunks when
	// every rule inside the block stays unsplit.
	unsplitBlockLength int

	divide bool

	// canAddText records whether the chunk is still accepting text. Applying
	// a split normally seals the chunk; comment adhesion may unseal it.
	canAddText bool

	// Selection markers, as offsets into text. Negative means unset.
	selectionStart, selectionEnd int
}

// New returns a chunk holding the given text, still accepting more.
func New(text string) *Chunk {
	return &Chunk{
		text:           text,
		canAddText:     true,
		selectionStart: -1,
		selectionEnd:   -1,
	}
}

// Text returns the chunk's text.
func (c *Chunk) Text() string { return c.text }

// AppendText adds text to the chunk. Panics if the chunk is sealed.
func (c *Chunk) AppendText(text string) {
	if !c.canAddText {
		panic("chunk: text appended to a sealed chunk")
	}
	c.text += text
}

// CanAddText returns whether the chunk is still accepting text.
func (c *Chunk) CanAddText() bool { return c.canAddText }

// AllowText re-allows text on a chunk that has already been split. This is
// used to adhere a trailing comment to the text preceding the split.
func (c *Chunk) AllowText() { c.canAddText = true }

// Split returns the chunk's split point, or nil if the chunk always flows
// into the next one.
func (c *Chunk) Split() *SplitInfo { return c.split }

// ApplySplit attaches a split to the chunk, sealing it against further text.
//
// An existing hard split always wins over a later soft one. Returns whether
// the chunk's split is hard after the call.
func (c *Chunk) ApplySplit(info *SplitInfo) bool {
	if c.split != nil && c.split.hard {
		// When two hard splits land on one chunk they merge, and only their
		// strengthening properties carry over: a blank line stays a blank
		// line, flush-left stays flush-left. The chunk is sealed again in
		// case comment adhesion re-opened it.
		if info.IsDouble == TristateDouble {
			c.split.IsDouble = TristateDouble
		}
		if info.FlushLeft {
			c.split.FlushLeft = true
		}
		c.canAddText = false
		return true
	}

	if c.split != nil && info.IsDouble == TristateUnknown {
		// Keep an earlier, already-resolved blank-line decision.
		info.IsDouble = c.split.IsDouble
	}

	c.split = info
	c.canAddText = false
	return info.hard
}

// Spans returns the spans covering this chunk.
func (c *Chunk) Spans() []*Span { return c.spans }

// AddSpan records that span covers this chunk.
func (c *Chunk) AddSpan(span *Span) { c.spans = append(c.spans, span) }

// BlockChunks returns the chunk's child block. A non-empty result makes this
// chunk a block parent.
func (c *Chunk) BlockChunks() []*Chunk { return c.blockChunks }

// SetBlockChunks attaches a child block and caches its unsplit length.
func (c *Chunk) SetBlockChunks(chunks []*Chunk) {
	c.blockChunks = chunks
	c.unsplitBlockLength = unsplitLength(chunks)
}

// UnsplitBlockLength returns the cached width of the child block when none
// of its rules split.
func (c *Chunk) UnsplitBlockLength() int { return c.unsplitBlockLength }

// MarkDivide marks the chunk as a position where the solver may cut the
// problem.
func (c *Chunk) MarkDivide() { c.divide = true }

// CanDivide returns whether the solver may cut the problem after this chunk.
func (c *Chunk) CanDivide() bool { return c.divide }

// Width returns the display width of the chunk's text, measured in terminal
// cells. For multi-line text (block comments) only the last line counts,
// since that is what occupies the current line.
func (c *Chunk) Width() int {
	return uniseg.StringWidth(stringsx.LastLine(c.text))
}

// FullWidth returns the display width of the chunk's text plus the space it
// emits when unsplit. It is used to size unsplit block parents.
func (c *Chunk) FullWidth() int {
	w := uniseg.StringWidth(c.text)
	if c.split != nil && c.split.SpaceWhenUnsplit {
		w++
	}
	return w
}

// StartSelection marks the start of the preserved editor selection at the
// given offset from the current end of the chunk's text.
func (c *Chunk) StartSelection(fromEnd int) {
	c.selectionStart = len(c.text) - fromEnd
}

// EndSelection marks the end of the preserved editor selection at the given
// offset from the current end of the chunk's text.
func (c *Chunk) EndSelection(fromEnd int) {
	c.selectionEnd = len(c.text) - fromEnd
}

// SelectionStart returns the selection-start offset into the chunk's text,
// or -1 if unset.
func (c *Chunk) SelectionStart() int { return c.selectionStart }

// SelectionEnd returns the selection-end offset into the chunk's text, or -1
// if unset.
func (c *Chunk) SelectionEnd() int { return c.selectionEnd }

// unsplitLength measures the total width of chunks laid out entirely on one
// line.
func unsplitLength(chunks []*Chunk) int {
	var n int
	for _, c := range chunks {
		n += c.FullWidth()
		n += unsplitLength(c.blockChunks)
	}
	return n
}
