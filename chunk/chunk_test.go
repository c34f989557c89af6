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

package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curlyfmt/curlyfmt/chunk"
)

func TestAppendText(t *testing.T) {
	t.Parallel()

	c := chunk.New("foo")
	require.True(t, c.CanAddText())
	c.AppendText("bar")
	assert.Equal(t, "foobar", c.Text())

	c.ApplySplit(&chunk.SplitInfo{})
	assert.False(t, c.CanAddText())
	assert.Panics(t, func() { c.AppendText("baz") })

	c.AllowText()
	c.AppendText(" // ok")
	assert.Equal(t, "foobar // ok", c.Text())
}

func TestApplySplitHardWins(t *testing.T) {
	t.Parallel()

	c := chunk.New("x")
	hard := &chunk.SplitInfo{IsDouble: chunk.TristateSingle}
	hard.Harden()
	require.True(t, c.ApplySplit(hard))

	// A later soft split cannot displace a hard one, but its blank-line
	// decision may still upgrade it.
	soft := &chunk.SplitInfo{IsDouble: chunk.TristateDouble}
	assert.True(t, c.ApplySplit(soft))
	assert.Same(t, hard, c.Split())
	assert.Equal(t, chunk.TristateDouble, c.Split().IsDouble)
	assert.False(t, c.CanAddText())
}

func TestApplySplitKeepsResolvedDouble(t *testing.T) {
	t.Parallel()

	c := chunk.New("x")
	c.ApplySplit(&chunk.SplitInfo{IsDouble: chunk.TristateSingle})

	replacement := &chunk.SplitInfo{}
	assert.False(t, c.ApplySplit(replacement))
	assert.Equal(t, chunk.TristateSingle, c.Split().IsDouble)
}

func TestWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, chunk.New("abc").Width())

	// Only the last line of a block comment occupies the current line.
	c := chunk.New("/* one\n two */")
	assert.Equal(t, 7, c.Width())

	// Widths are display cells, not bytes.
	assert.Equal(t, 2, chunk.New("世").Width())
}

func TestFullWidth(t *testing.T) {
	t.Parallel()

	c := chunk.New("abc,")
	c.ApplySplit(&chunk.SplitInfo{SpaceWhenUnsplit: true})
	assert.Equal(t, 5, c.FullWidth())
	assert.Equal(t, 4, c.Width())
}

func TestUnsplitBlockLength(t *testing.T) {
	t.Parallel()

	inner := chunk.New("a,")
	inner.ApplySplit(&chunk.SplitInfo{SpaceWhenUnsplit: true})
	last := chunk.New("b")

	parent := chunk.New("{")
	parent.ApplySplit(&chunk.SplitInfo{SpaceWhenUnsplit: true})
	parent.SetBlockChunks([]*chunk.Chunk{inner, last})

	// "a, " plus "b".
	assert.Equal(t, 4, parent.UnsplitBlockLength())
}

func TestSelectionMarkers(t *testing.T) {
	t.Parallel()

	c := chunk.New("var x = 1;")
	assert.Equal(t, -1, c.SelectionStart())
	assert.Equal(t, -1, c.SelectionEnd())

	c.StartSelection(6)
	c.EndSelection(5)
	assert.Equal(t, 4, c.SelectionStart())
	assert.Equal(t, 5, c.SelectionEnd())
}

func TestNestingLevels(t *testing.T) {
	t.Parallel()

	root := chunk.RootNesting()
	assert.False(t, root.IsNested())
	assert.Zero(t, root.Depth())

	inner := root.Nest(4).Nest(2)
	assert.True(t, inner.IsNested())
	assert.Equal(t, 2, inner.Depth())
	assert.Equal(t, 2, inner.Indent())
	assert.Equal(t, 4, inner.Parent().Indent())
	assert.Same(t, root, inner.Parent().Parent())
}

func TestComment(t *testing.T) {
	t.Parallel()

	inline := chunk.NewComment("/* c */", 0, false)
	assert.True(t, inline.IsInline())
	assert.False(t, inline.IsMultiline())
	assert.Equal(t, -1, inline.SelectionStart)

	line := chunk.NewComment("// c", 0, true)
	assert.False(t, line.IsInline())

	multi := chunk.NewComment("/* a\n b */", 0, false)
	assert.False(t, multi.IsInline())
	assert.True(t, multi.IsMultiline())
}

func TestWhitespace(t *testing.T) {
	t.Parallel()

	assert.Zero(t, chunk.WhitespaceSpace.MinimumLines())
	assert.Equal(t, 1, chunk.WhitespaceNewline.MinimumLines())
	assert.Equal(t, 1, chunk.WhitespaceOneOrTwoNewlines.MinimumLines())
	assert.Equal(t, 2, chunk.WhitespaceTwoNewlines.MinimumLines())

	assert.True(t, chunk.WhitespaceSpaceOrNewline.IsAmbiguous())
	assert.True(t, chunk.WhitespaceOneOrTwoNewlines.IsAmbiguous())
	assert.False(t, chunk.WhitespaceNewline.IsAmbiguous())
}

func TestSpanContains(t *testing.T) {
	t.Parallel()

	s := chunk.NewSpan(2, 1)
	s.Close(5)

	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(4))
	// A split at the final chunk separates the span from what follows.
	assert.False(t, s.Contains(5))
}
