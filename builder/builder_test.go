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

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curlyfmt/curlyfmt/builder"
	"github.com/curlyfmt/curlyfmt/chunk"
	"github.com/curlyfmt/curlyfmt/rule"
)

func newBuilder() *builder.Builder {
	return builder.New(builder.Options{})
}

func TestWriteAndSpace(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	b.Write("a")
	b.WriteWhitespace(chunk.WhitespaceSpace)
	b.Write("b")

	assert.Equal(t, "a b", b.End().Text)
}

func TestLeadingWhitespaceDropped(t *testing.T) {
	t.Parallel()

	// Whitespace with nothing before it has no chunk to hang off.
	b := newBuilder()
	b.WriteWhitespace(chunk.WhitespaceNewline)
	b.Write("a")

	assert.Equal(t, "a", b.End().Text)
}

func TestAmbiguousWhitespacePanics(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	b.Write("a")
	b.WriteWhitespace(chunk.WhitespaceSpaceOrNewline)

	require.PanicsWithError(t,
		"builder: pending whitespace spaceOrNewline emitted without PreserveNewlines",
		func() { b.Write("b") })
}

func TestPreserveNewlines(t *testing.T) {
	t.Parallel()

	t.Run("space", func(t *testing.T) {
		t.Parallel()
		b := newBuilder()
		b.Write("a")
		b.WriteWhitespace(chunk.WhitespaceSpaceOrNewline)
		b.PreserveNewlines(0)
		b.Write("b")
		assert.Equal(t, "a b", b.End().Text)
	})

	t.Run("newline", func(t *testing.T) {
		t.Parallel()
		b := newBuilder()
		b.Write("a")
		b.WriteWhitespace(chunk.WhitespaceSpaceOrNewline)
		b.PreserveNewlines(1)
		b.Write("b")
		assert.Equal(t, "a\nb", b.End().Text)
	})

	t.Run("blank line collapses", func(t *testing.T) {
		t.Parallel()
		b := newBuilder()
		b.Write("a;")
		b.WriteWhitespace(chunk.WhitespaceOneOrTwoNewlines)
		b.PreserveNewlines(4)
		b.Write("b;")
		assert.Equal(t, "a;\n\nb;", b.End().Text)
	})
}

func TestHardSplitForcesActiveRules(t *testing.T) {
	t.Parallel()

	// A hard split inside a rule's scope forces the rule's other splits.
	b := newBuilder()
	b.StartRule(rule.ID(0))
	b.Write("first")
	b.Split(builder.SplitArgs{Space: true})
	b.Write("second")
	b.WriteWhitespace(chunk.WhitespaceNewline)
	b.Write("third")
	b.EndRule()

	assert.Equal(t, "first\nsecond\nthird", b.End().Text)
}

func TestForceRules(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	b.StartRule(rule.ID(0))
	b.Write("x")
	b.Split(builder.SplitArgs{Space: true})
	b.Write("y")
	b.ForceRules()
	b.EndRule()

	assert.Equal(t, "x\ny", b.End().Text)
}

func TestLazyRule(t *testing.T) {
	t.Parallel()

	// A lazy rule that never activates is cancelled by EndRule.
	b := newBuilder()
	b.Write("a")
	b.StartLazyRule(rule.ID(0))
	b.EndRule()
	assert.Equal(t, "a", b.End().Text)
}

func TestSelection(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	b.Write("var x = 1;")
	b.StartSelectionFromEnd(6)
	b.EndSelectionFromEnd(5)

	out := b.End()
	assert.Equal(t, "var x = 1;", out.Text)
	assert.Equal(t, 4, out.SelectionStart)
	assert.Equal(t, 1, out.SelectionLength)
}

func TestUnbalancedScopes(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { newBuilder().EndRule() })
	assert.Panics(t, func() { newBuilder().Unnest() })
	assert.Panics(t, func() { newBuilder().Unindent() })
	assert.Panics(t, func() { newBuilder().EndSpan() })
	assert.Panics(t, func() { newBuilder().EndBlock(false, false) })

	assert.Panics(t, func() {
		b := newBuilder()
		b.StartRule(rule.ID(0))
		b.End()
	})
}

func TestIndent(t *testing.T) {
	t.Parallel()

	// Statement indentation applies to the lines a split begins.
	b := newBuilder()
	b.Write("if (c)")
	b.Indent(0)
	b.WriteWhitespace(chunk.WhitespaceNewline)
	b.Write("body();")
	b.Unindent()

	assert.Equal(t, "if (c)\n  body();", b.End().Text)
}

func TestBlock(t *testing.T) {
	t.Parallel()

	b := builder.New(builder.Options{IsCompilationUnit: true})
	b.Write("void main() {")
	b.BlockSplit(builder.SplitArgs{})
	child := b.StartBlock()
	child.Write("print(1);")
	child.WriteWhitespace(chunk.WhitespaceNewline)
	b = child.EndBlock(false, false)
	b.Write("}")
	b.WriteWhitespace(chunk.WhitespaceNewline)

	assert.Equal(t, "void main() {\n  print(1);\n}\n", b.End().Text)
}

func TestBlockForcesParentRules(t *testing.T) {
	t.Parallel()

	// A hard split inside a block forces the surrounding rules in the
	// parent, even though the block's chunks live apart.
	b := newBuilder()
	b.StartRule(rule.ID(0))
	b.Write("f(() {")
	b.Split(builder.SplitArgs{Space: true})
	child := b.StartBlock()
	child.Write("body();")
	child.WriteWhitespace(chunk.WhitespaceNewline)
	b = child.EndBlock(false, false)
	b.Write("})")
	b.EndRule()

	assert.Equal(t, "f(() {\n  body();\n})", b.End().Text)
}

func TestEndBlockIgnoreTrailingSplit(t *testing.T) {
	t.Parallel()

	// With the trailing split ignored, a block whose only hard split is its
	// last does not force the parent rule.
	b := newBuilder()
	b.StartRule(rule.ID(0))
	b.Write("[")
	b.Split(builder.SplitArgs{})
	child := b.StartBlock()
	child.Write("1")
	child.WriteWhitespace(chunk.WhitespaceNewline)
	b = child.EndBlock(true, false)
	b.Write("]")
	b.EndRule()

	assert.Equal(t, "[1]", b.End().Text)
}

func TestEndBlockForceSplit(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	b.StartRule(rule.ID(0))
	b.Write("[")
	b.Split(builder.SplitArgs{})
	child := b.StartBlock()
	child.Write("1")
	b = child.EndBlock(false, true)
	b.Write("]")
	b.EndRule()

	assert.Equal(t, "[\n  1\n]", b.End().Text)
}

func TestEmptyOutput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", newBuilder().End().Text)
	assert.Equal(t, "", builder.New(builder.Options{IsCompilationUnit: true}).End().Text)
}
