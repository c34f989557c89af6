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

package chunk

// SourceComment is a comment lifted out of the original source text,
// delivered to the builder between two tokens.
type SourceComment struct {
	// Text is the comment's text, including its delimiters.
	Text string

	// LinesBefore is the number of newlines between this comment and the
	// preceding token or comment.
	LinesBefore int

	// IsLineComment is true for "//" comments, which must be followed by a
	// newline.
	IsLineComment bool

	// FlushLeft is true when the comment sat at column 0 in the source and
	// should stay there.
	FlushLeft bool

	// SelectionStart and SelectionEnd carry editor-selection markers that
	// fall inside the comment, as offsets into Text. Negative means unset.
	SelectionStart int
	SelectionEnd   int
}

// NewComment returns a comment with unset selection markers.
func NewComment(text string, linesBefore int, isLineComment bool) SourceComment {
	return SourceComment{
		Text:           text,
		LinesBefore:    linesBefore,
		IsLineComment:  isLineComment,
		SelectionStart: -1,
		SelectionEnd:   -1,
	}
}

// IsInline returns whether the comment is a block comment with no newlines
// before it or inside it, so it can flow with the surrounding code.
func (c *SourceComment) IsInline() bool {
	if c.IsLineComment || c.LinesBefore != 0 {
		return false
	}
	for i := 0; i < len(c.Text); i++ {
		if c.Text[i] == '\n' {
			return false
		}
	}
	return true
}

// IsMultiline returns whether the comment's text spans several lines.
func (c *SourceComment) IsMultiline() bool {
	for i := 0; i < len(c.Text); i++ {
		if c.Text[i] == '\n' {
			return true
		}
	}
	return false
}
