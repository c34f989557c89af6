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

// NestingLevel is an immutable node in the expression-nesting tree. The root
// of the tree is statement level; each frame pushed while visiting a
// subexpression nests one level deeper.
//
// A nesting level does not know its final column offset. That is assigned by
// the line splitter per candidate layout, from the set of levels actually in
// use, so that deeper levels always indent more than shallower ones active
// on the same line.
type NestingLevel struct {
	parent *NestingLevel
	indent int
	depth  int
}

// RootNesting returns a fresh statement-level nesting root.
func RootNesting() *NestingLevel {
	return &NestingLevel{}
}

// Nest returns a child level requesting the given extra indentation.
func (n *NestingLevel) Nest(indent int) *NestingLevel {
	return &NestingLevel{parent: n, indent: indent, depth: n.depth + 1}
}

// Parent returns the enclosing level, or nil for the root.
func (n *NestingLevel) Parent() *NestingLevel { return n.parent }

// Indent returns the extra indentation this level requests over its parent.
func (n *NestingLevel) Indent() int { return n.indent }

// Depth returns the level's distance from the root.
func (n *NestingLevel) Depth() int { return n.depth }

// IsNested returns whether this level is below statement level.
func (n *NestingLevel) IsNested() bool { return n.parent != nil }
