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

// Package builder converts the linear event stream produced by a syntax
// visitor into a vector of chunks tied together by split rules.
//
// The builder is driven through its operation methods: write text, emit
// whitespace, open and close rules, spans, indentation and expression
// nesting, insert comments, and open child blocks. Two effects are deferred:
// pending whitespace is realized just before the next [Builder.Write], and
// lazy rules activate on the next write. [Builder.End] finalizes the chunk
// vector, hardens forced rules, runs the divide pass and hands the result to
// the line writer.
package builder

import (
	"github.com/curlyfmt/curlyfmt/chunk"
	"github.com/curlyfmt/curlyfmt/internal/slicesx"
	"github.com/curlyfmt/curlyfmt/rule"
)

// Options configures a root builder.
type Options struct {
	// PageWidth is the target column limit. Zero means the default of 80.
	PageWidth int

	// Indent is the number of spaces of leading indentation of the output.
	Indent int

	// IsCompilationUnit controls the trailing-newline policy: compilation
	// units end with exactly one newline, single statements with none.
	IsCompilationUnit bool
}

// WithDefaults replaces unset fields with their default values.
func (o Options) WithDefaults() Options {
	if o.PageWidth == 0 {
		o.PageWidth = 80
	}
	return o
}

// SplitArgs carries the optional parameters of [Builder.Split] and
// [Builder.BlockSplit].
type SplitArgs struct {
	// Space emits a space instead of nothing when the split does not fire.
	Space bool

	// Double makes the split a blank line when it fires; TristateUnknown
	// defers the decision to a later PreserveNewlines.
	Double chunk.Tristate

	// FlushLeft starts the next line at column 0 when the split fires.
	FlushLeft bool
}

// Builder accumulates chunks for one block of code. The root builder owns
// the whole compilation unit; child builders returned by [Builder.StartBlock]
// write into a parent chunk's block and must be closed in LIFO order.
type Builder struct {
	opts  Options
	graph *rule.Graph

	chunks  []*chunk.Chunk
	pending chunk.Whitespace

	// rules is the stack of active rules; lazyRules are queued to activate
	// on the next write.
	rules     []rule.ID
	lazyRules []rule.ID

	openSpans []*chunk.Span

	// indents is the stack of absolute statement-level indents, in spaces.
	// indents[0] is 0 and is never popped.
	indents []int

	nesting *nestingBuilder

	// blockArgNesting holds nesting levels snapshotted for child blocks.
	blockArgNesting []*chunk.NestingLevel

	// hard is the hard-split state, shared by the whole builder tree so that
	// rules forced inside a child block stay forced after the block closes.
	hard *hardState

	parent      *Builder
	parentChunk *chunk.Chunk
}

// hardState is the hard-split set of a builder tree: the rules known to
// require their fully-split value, in the order they were forced.
type hardState struct {
	seen  map[rule.ID]struct{}
	order []rule.ID

	// hardRule is the single hard rule shared by every unconditional split.
	hardRule rule.ID
}

func (h *hardState) add(id rule.ID) {
	if _, ok := h.seen[id]; ok {
		return
	}
	h.seen[id] = struct{}{}
	h.order = append(h.order, id)
}

// New creates a root builder.
func New(opts Options) *Builder {
	graph := &rule.Graph{}
	return &Builder{
		opts:    opts.WithDefaults(),
		graph:   graph,
		indents: []int{0},
		nesting: newNestingBuilder(),
		hard: &hardState{
			seen:     map[rule.ID]struct{}{},
			hardRule: graph.New(rule.NewHard()),
		},
	}
}

// Rules exposes the rule graph so the visitor can construct rule variants.
func (b *Builder) Rules() *rule.Graph { return b.graph }

// NewRule adds a rule to the graph and returns its handle.
func (b *Builder) NewRule(r rule.Rule) rule.ID { return b.graph.New(r) }

// Write flushes pending whitespace, appends text to the current chunk,
// starts any queued lazy rules, and commits pending expression nesting.
func (b *Builder) Write(text string) {
	b.emitPendingWhitespace()
	b.writeText(text)

	for _, id := range b.lazyRules {
		b.startRule(id)
	}
	b.lazyRules = b.lazyRules[:0]

	b.nesting.commit()
}

// WriteWhitespace sets the pending whitespace, to be realized by the next
// write. Ambiguous kinds must be resolved by [Builder.PreserveNewlines]
// before then.
func (b *Builder) WriteWhitespace(kind chunk.Whitespace) {
	b.pending = kind
}

// PreserveNewlines resolves ambiguous pending whitespace against the number
// of newlines the source had at this position.
func (b *Builder) PreserveNewlines(numLines int) {
	switch b.pending {
	case chunk.WhitespaceSpaceOrNewline:
		if numLines > 0 {
			b.pending = chunk.WhitespaceNestedNewline
		} else {
			b.pending = chunk.WhitespaceSpace
		}
	case chunk.WhitespaceOneOrTwoNewlines:
		if numLines > 1 {
			b.pending = chunk.WhitespaceTwoNewlines
		} else {
			b.pending = chunk.WhitespaceNewline
		}
	}
}

// Split applies a split owned by the innermost active rule at the current
// chunk, using the current expression nesting.
func (b *Builder) Split(args SplitArgs) {
	b.applySplit(b.currentRule(), b.nesting.current(), args)
}

// BlockSplit applies a split owned by the innermost active rule at the
// current chunk, at block (statement) level rather than expression nesting.
func (b *Builder) BlockSplit(args SplitArgs) {
	b.applySplit(b.currentRule(), nil, args)
}

// Indent pushes a statement-level indent. Non-positive spaces mean the
// default block indent.
func (b *Builder) Indent(spaces int) {
	if spaces <= 0 {
		spaces = chunk.IndentBlock
	}
	b.indents = append(b.indents, b.currentIndent()+spaces)
}

// Unindent pops the most recent statement-level indent.
func (b *Builder) Unindent() {
	if len(b.indents) == 1 {
		fail("unbalanced Unindent")
	}
	b.indents = b.indents[:len(b.indents)-1]
}

// NestExpression pushes an expression-nesting frame. Non-positive indent
// means the default expression indent. The frame normally commits on the
// next write; now commits it immediately.
func (b *Builder) NestExpression(indent int, now bool) {
	if indent <= 0 {
		indent = chunk.IndentExpression
	}
	b.nesting.nest(indent, now)
}

// Unnest pops the innermost expression-nesting frame.
func (b *Builder) Unnest() {
	b.nesting.unnest()
}

// StartRule pushes a rule onto the active stack. A nil handle starts a fresh
// simple rule. The new rule is contained by every currently active rule.
func (b *Builder) StartRule(id rule.ID) {
	if id.Nil() {
		id = b.graph.New(rule.NewSimple(rule.CostNormal))
	}
	b.startRule(id)
}

// StartLazyRule queues a rule whose scope begins only after the next
// pending whitespace has been emitted. A nil handle queues a fresh simple
// rule.
func (b *Builder) StartLazyRule(id rule.ID) {
	if id.Nil() {
		id = b.graph.New(rule.NewSimple(rule.CostNormal))
	}
	b.lazyRules = append(b.lazyRules, id)
}

// EndRule pops the innermost rule, or cancels the most recently queued lazy
// rule if it never activated.
func (b *Builder) EndRule() {
	if len(b.lazyRules) > 0 {
		b.lazyRules = b.lazyRules[:len(b.lazyRules)-1]
		return
	}
	if len(b.rules) == 0 {
		fail("unbalanced EndRule")
	}
	b.rules = b.rules[:len(b.rules)-1]
}

// StartSpan opens a cost-bearing span at the current chunk. Non-positive
// cost means the normal cost.
func (b *Builder) StartSpan(cost int) {
	if cost <= 0 {
		cost = rule.CostNormal
	}
	start := len(b.chunks)
	if start > 0 && b.chunks[start-1].CanAddText() {
		start--
	}
	b.openSpans = append(b.openSpans, chunk.NewSpan(start, cost))
}

// EndSpan closes the innermost span. Spans that cover less than a chunk are
// discarded.
func (b *Builder) EndSpan() {
	span, ok := slicesx.Pop(&b.openSpans)
	if !ok {
		fail("unbalanced EndSpan")
	}

	end := len(b.chunks) - 1
	if end < span.Start() {
		return
	}
	span.Close(end)
	for i := span.Start(); i <= end; i++ {
		b.chunks[i].AddSpan(span)
	}
}

// ForceRules hardens every currently active rule, and transitively every
// rule their fully-split values constrain. The hardening is applied when the
// chunk vector is finalized.
func (b *Builder) ForceRules() {
	b.forceActiveRules()
}

// StartSelectionFromEnd marks the preserved selection's start at the given
// number of characters back from the end of the written text.
func (b *Builder) StartSelectionFromEnd(fromEnd int) {
	c := b.openChunk("StartSelectionFromEnd")
	c.StartSelection(fromEnd)
}

// EndSelectionFromEnd marks the preserved selection's end at the given
// number of characters back from the end of the written text.
func (b *Builder) EndSelectionFromEnd(fromEnd int) {
	c := b.openChunk("EndSelectionFromEnd")
	c.EndSelection(fromEnd)
}

// currentRule returns the innermost active rule, or the hard rule when no
// rule is active.
func (b *Builder) currentRule() rule.ID {
	if last, ok := slicesx.Last(b.rules); ok {
		return last
	}
	return b.hard.hardRule
}

func (b *Builder) currentIndent() int {
	return b.indents[len(b.indents)-1]
}

func (b *Builder) startRule(id rule.ID) {
	for _, outer := range b.rules {
		b.graph.Contain(outer, id)
	}
	b.rules = append(b.rules, id)
}

// forceActiveRules adds every active rule that reacts to inner hard splits
// to the shared hard-split set.
func (b *Builder) forceActiveRules() {
	for _, id := range b.rules {
		if b.graph.Rule(id).SplitsOnInnerRules() {
			b.hard.add(id)
		}
	}
}

// emitPendingWhitespace realizes the deferred whitespace before the next
// token.
func (b *Builder) emitPendingWhitespace() {
	switch b.pending {
	case chunk.WhitespaceNone:

	case chunk.WhitespaceSpace:
		// The space becomes part of the current chunk's text. A space with
		// no text before it on the line is meaningless and is dropped.
		if n := len(b.chunks); n > 0 && b.chunks[n-1].CanAddText() {
			b.chunks[n-1].AppendText(" ")
		}

	case chunk.WhitespaceNewline:
		b.writeHardSplit(hardSplitArgs{})

	case chunk.WhitespaceNestedNewline:
		b.writeHardSplit(hardSplitArgs{nest: true})

	case chunk.WhitespaceNewlineFlushLeft:
		b.writeHardSplit(hardSplitArgs{flushLeft: true})

	case chunk.WhitespaceTwoNewlines:
		b.writeHardSplit(hardSplitArgs{double: true})

	default:
		fail("pending whitespace %v emitted without PreserveNewlines", b.pending)
	}
	b.pending = chunk.WhitespaceNone
}

// writeText appends text to the current chunk, or begins a new chunk when
// the current one has been sealed by a split.
func (b *Builder) writeText(text string) {
	if n := len(b.chunks); n > 0 && b.chunks[n-1].CanAddText() {
		b.chunks[n-1].AppendText(text)
		return
	}
	b.chunks = append(b.chunks, chunk.New(text))
}

type hardSplitArgs struct {
	double    bool
	flushLeft bool
	nest      bool
}

// writeHardSplit applies an unconditional split at the current chunk.
func (b *Builder) writeHardSplit(args hardSplitArgs) {
	double := chunk.TristateSingle
	if args.double {
		double = chunk.TristateDouble
	}
	var nesting *chunk.NestingLevel
	if args.nest {
		nesting = b.nesting.current()
	}
	b.applySplit(b.hard.hardRule, nesting, SplitArgs{
		Double:    double,
		FlushLeft: args.flushLeft,
	})
}

// applySplit attaches a split owned by the given rule to the current chunk.
// Leading whitespace with no chunk to hang off is dropped.
func (b *Builder) applySplit(id rule.ID, nesting *chunk.NestingLevel, args SplitArgs) {
	if len(b.chunks) == 0 {
		return
	}
	c := b.chunks[len(b.chunks)-1]

	info := &chunk.SplitInfo{
		Rule:             id,
		Indent:           b.currentIndent(),
		Nesting:          nesting,
		FlushLeft:        args.FlushLeft,
		IsDouble:         args.Double,
		SpaceWhenUnsplit: args.Space,
	}
	if id == b.hard.hardRule || b.graph.Hardened(id) {
		info.Harden()
	}

	becameHard := c.ApplySplit(info)
	if c.Split().Rule == id && id != b.hard.hardRule {
		// The hard rule needs no ownership bookkeeping: its splits always
		// fire and are recognized by the hard flag alone. Soft rules record
		// their owned chunks so the solver can resolve split ordinals; a
		// rule's chunks always live in a single builder's index space.
		b.graph.AddChunk(id, len(b.chunks)-1)
	}

	if becameHard {
		// A hard split inside an active rule's scope forces that rule to
		// split as well.
		b.forceActiveRules()
	}
}

// openChunk returns the current chunk if it is still accepting text, and
// fails the given operation otherwise.
func (b *Builder) openChunk(op string) *chunk.Chunk {
	n := len(b.chunks)
	if n == 0 || !b.chunks[n-1].CanAddText() {
		fail("%s requires an open chunk", op)
	}
	return b.chunks[n-1]
}

// hasHardSplits reports whether any chunk in this builder ends in a hard
// split. When ignoreTrailing is set the final chunk's split does not count.
func (b *Builder) hasHardSplits(ignoreTrailing bool) bool {
	for i, c := range b.chunks {
		if ignoreTrailing && i == len(b.chunks)-1 {
			break
		}
		if s := c.Split(); s != nil && s.IsHard() {
			return true
		}
	}
	return false
}
