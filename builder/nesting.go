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
	"github.com/curlyfmt/curlyfmt/internal/slicesx"
)

// nestingBuilder tracks the expression-nesting stack of one builder.
//
// Nesting frames pushed by NestExpression do not take effect immediately:
// they are pending until the next token is written. This keeps a split
// emitted between "foo(" and its first argument at the nesting of the call
// itself, not of the argument.
type nestingBuilder struct {
	// stack holds the committed nesting levels; stack[0] is the statement
	// root and is never popped.
	stack []*chunk.NestingLevel

	// pending holds frames nested but not yet committed, in order.
	pending []*chunk.NestingLevel
}

func newNestingBuilder() *nestingBuilder {
	return &nestingBuilder{stack: []*chunk.NestingLevel{chunk.RootNesting()}}
}

// current returns the committed innermost nesting level, or nil at statement
// level.
func (n *nestingBuilder) current() *chunk.NestingLevel {
	top := n.stack[len(n.stack)-1]
	if !top.IsNested() {
		return nil
	}
	return top
}

// top returns the innermost level, pending or committed.
func (n *nestingBuilder) top() *chunk.NestingLevel {
	if last, ok := slicesx.Last(n.pending); ok {
		return last
	}
	return n.stack[len(n.stack)-1]
}

func (n *nestingBuilder) nest(indent int, now bool) {
	level := n.top().Nest(indent)
	if now {
		n.commit()
		n.stack = append(n.stack, level)
		return
	}
	n.pending = append(n.pending, level)
}

func (n *nestingBuilder) unnest() {
	if _, ok := slicesx.Pop(&n.pending); ok {
		return
	}
	if len(n.stack) == 1 {
		fail("unbalanced Unnest")
	}
	n.stack = n.stack[:len(n.stack)-1]
}

// commit makes every pending frame visible to subsequent splits.
func (n *nestingBuilder) commit() {
	n.stack = append(n.stack, n.pending...)
	n.pending = n.pending[:0]
}

// atRoot reports whether the builder is back at statement level with
// nothing pending.
func (n *nestingBuilder) atRoot() bool {
	return len(n.stack) == 1 && len(n.pending) == 0
}
