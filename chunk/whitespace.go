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

// Whitespace is the pending whitespace the builder maintains between tokens.
// It is realized lazily, just before the next token's text is written.
type Whitespace int8

const (
	// WhitespaceNone emits nothing.
	WhitespaceNone Whitespace = iota

	// WhitespaceSpace emits a single space.
	WhitespaceSpace

	// WhitespaceNewline emits a hard split at block level.
	WhitespaceNewline

	// WhitespaceNestedNewline emits a hard split at the current expression
	// nesting.
	WhitespaceNestedNewline

	// WhitespaceNewlineFlushLeft emits a hard split whose next line starts
	// at column 0.
	WhitespaceNewlineFlushLeft

	// WhitespaceTwoNewlines emits a blank line.
	WhitespaceTwoNewlines

	// WhitespaceSpaceOrNewline is ambiguous: it becomes a space or a nested
	// newline depending on whether the source had a newline here. It must be
	// resolved before it can be emitted.
	WhitespaceSpaceOrNewline

	// WhitespaceOneOrTwoNewlines is ambiguous: it becomes one newline or a
	// blank line depending on how many newlines the source had here. It must
	// be resolved before it can be emitted.
	WhitespaceOneOrTwoNewlines
)

// MinimumLines returns the minimum number of newlines this whitespace
// guarantees to emit.
func (w Whitespace) MinimumLines() int {
	switch w {
	case WhitespaceNewline, WhitespaceNestedNewline, WhitespaceNewlineFlushLeft,
		WhitespaceOneOrTwoNewlines:
		return 1
	case WhitespaceTwoNewlines:
		return 2
	default:
		return 0
	}
}

// IsAmbiguous returns whether this whitespace must be resolved against the
// source's actual newlines before it can be emitted.
func (w Whitespace) IsAmbiguous() bool {
	return w == WhitespaceSpaceOrNewline || w == WhitespaceOneOrTwoNewlines
}

func (w Whitespace) String() string {
	switch w {
	case WhitespaceNone:
		return "none"
	case WhitespaceSpace:
		return "space"
	case WhitespaceNewline:
		return "newline"
	case WhitespaceNestedNewline:
		return "nestedNewline"
	case WhitespaceNewlineFlushLeft:
		return "newlineFlushLeft"
	case WhitespaceTwoNewlines:
		return "twoNewlines"
	case WhitespaceSpaceOrNewline:
		return "spaceOrNewline"
	case WhitespaceOneOrTwoNewlines:
		return "oneOrTwoNewlines"
	default:
		return "unknown"
	}
}
