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

// Package rule implements the split-rule algebra of the layout engine.
//
// Each rule owns a set of split points and can take one of a small number of
// discrete values; the value decides which of its splits fire. Value 0 is by
// convention "do not split"; the highest value usually splits everything.
//
// Rules are a DSL, not a grammar: each syntactic construct installs one or a
// few rules whose [Rule.Constrain] method encodes the formatting policy, so
// the line splitter stays oblivious to source-language specifics. Rules live
// in a [Graph] and refer to one another through integer [ID] handles, never
// through Go pointers, which keeps the mutually-constraining graph cycle-free
// in memory and makes transitive hardening an ordinary worklist traversal.
package rule

import "github.com/curlyfmt/curlyfmt/internal/arena"

// ID is an opaque handle to a rule within a [Graph]. The zero ID is nil.
type ID arena.Untyped

// Nil returns whether this handle refers to no rule.
func (id ID) Nil() bool { return arena.Untyped(id).Nil() }

// Rule is the capability set shared by all rule variants.
type Rule interface {
	// NumValues returns the number of values the rule can take. Values range
	// over 0 to NumValues-1.
	NumValues() int

	// Cost returns the cost added to a layout once if the rule takes any
	// value other than 0.
	Cost() int

	// FullySplitValue returns the value at which every split owned by the
	// rule fires.
	FullySplitValue() int

	// SplitsOnInnerRules returns whether a hard split occurring inside the
	// rule's scope forces the rule itself to fully split.
	SplitsOnInnerRules() bool

	// IsSplitAtValue returns whether the split at the rule's ordinal-th
	// owned chunk fires when the rule takes value. numChunks is the total
	// number of chunks the rule owns.
	IsSplitAtValue(value, ordinal, numChunks int) bool

	// Constrain returns the value forced onto other when this rule takes
	// value, if any.
	Constrain(value int, other ID, otherRule Rule) (int, bool)
}

// Container is implemented by rules that react to having another rule opened
// inside their scope. The [Graph] notifies the outer rule on
// [Graph.Contain].
type Container interface {
	Contained(inner ID, innerRule Rule)
}

// CostNormal is the default cost of splitting a rule.
const CostNormal = 1
