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
	"github.com/curlyfmt/curlyfmt/internal/stringsx"
)

// WriteComments inserts the comments that appeared between the previous
// token and token, where linesBeforeToken is the number of newlines between
// the last comment and the token.
func (b *Builder) WriteComments(comments []chunk.SourceComment, linesBeforeToken int, token string) {
	// If the pending whitespace demands a blank line but the first comment
	// sits right against the previous token, the blank line may have been
	// spent elsewhere: either between a later comment and its predecessor,
	// or between the last comment and the token. In that case keep the
	// comment adjacent and emit a single newline.
	if b.pending == chunk.WhitespaceTwoNewlines &&
		len(comments) > 0 && comments[0].LinesBefore < 2 {
		if linesBeforeToken > 1 {
			b.pending = chunk.WhitespaceNewline
		} else {
			for i := 1; i < len(comments); i++ {
				if comments[i].LinesBefore > 1 {
					b.pending = chunk.WhitespaceNewline
					break
				}
			}
		}
	}

	// A run of inline block comments that directly touches both neighboring
	// tokens would otherwise swallow a required newline. Move the newline
	// before the run instead.
	if linesBeforeToken == 0 &&
		allInline(comments) && b.pending.MinimumLines() > 0 {
		comments[0].LinesBefore = b.pending.MinimumLines()
		linesBeforeToken = 1
	}

	for i := range comments {
		comment := &comments[i]
		b.PreserveNewlines(comment.LinesBefore)

		// A pending space is handled by the adhesion rules below instead.
		if b.pending == chunk.WhitespaceSpace {
			b.pending = chunk.WhitespaceNone
		}
		b.emitPendingWhitespace()

		if comment.LinesBefore == 0 {
			// The comment trails the previous token on the same line. If the
			// current chunk just ended in a split, pull the comment back
			// before it so it adheres to the text it comments on.
			if b.shouldMoveCommentBeforeSplit(comment) {
				b.chunks[len(b.chunks)-1].AllowText()
			}
			if b.needsSpaceBeforeComment(comment) {
				b.writeText(" ")
			}
		} else {
			b.writeHardSplit(hardSplitArgs{
				double:    comment.LinesBefore > 1,
				flushLeft: comment.FlushLeft,
				nest:      true,
			})
		}

		b.writeCommentText(comment)

		linesAfter := linesBeforeToken
		if i < len(comments)-1 {
			linesAfter = comments[i+1].LinesBefore
		}
		// A multi-line block comment cannot share its last line with code.
		if comment.IsMultiline() && linesAfter == 0 {
			linesAfter = 1
		}
		if linesAfter > 0 {
			b.writeHardSplit(hardSplitArgs{double: linesAfter > 1, nest: true})
		}
	}

	if b.needsSpaceAfterLastComment(comments, token) {
		b.pending = chunk.WhitespaceSpace
	}

	b.PreserveNewlines(linesBeforeToken)
}

// shouldMoveCommentBeforeSplit decides whether a trailing comment should be
// adhered to the text preceding the current chunk's split.
func (b *Builder) shouldMoveCommentBeforeSplit(comment *chunk.SourceComment) bool {
	if len(b.chunks) == 0 {
		return false
	}
	c := b.chunks[len(b.chunks)-1]
	if c.Split() == nil || c.CanAddText() {
		return false
	}
	// Multi-line comments always go to the next line, and a comment after
	// an open grouping character belongs to the body, not the delimiter.
	if comment.IsMultiline() {
		return false
	}
	return !stringsx.EndsWithAny(c.Text(), "(", "[", "{")
}

// needsSpaceBeforeComment decides whether a space separates the preceding
// text from a trailing comment.
func (b *Builder) needsSpaceBeforeComment(comment *chunk.SourceComment) bool {
	n := len(b.chunks)
	if n == 0 || !b.chunks[n-1].CanAddText() {
		return false
	}
	if comment.IsLineComment {
		return true
	}
	return !stringsx.EndsWithAny(b.chunks[n-1].Text(), "(", "[", "{")
}

// needsSpaceAfterLastComment decides whether the token following the
// comments needs a leading space.
func (b *Builder) needsSpaceAfterLastComment(comments []chunk.SourceComment, token string) bool {
	if len(comments) == 0 {
		return false
	}
	switch token {
	case ")", "]", "}", ",", ";", "":
		return false
	}
	n := len(b.chunks)
	return n > 0 && b.chunks[n-1].CanAddText()
}

// writeCommentText appends a comment's text and records any selection
// markers it carries.
func (b *Builder) writeCommentText(comment *chunk.SourceComment) {
	b.writeText(comment.Text)
	if comment.SelectionStart >= 0 {
		b.StartSelectionFromEnd(len(comment.Text) - comment.SelectionStart)
	}
	if comment.SelectionEnd >= 0 {
		b.EndSelectionFromEnd(len(comment.Text) - comment.SelectionEnd)
	}
}

func allInline(comments []chunk.SourceComment) bool {
	for i := range comments {
		if !comments[i].IsInline() {
			return false
		}
	}
	return true
}
