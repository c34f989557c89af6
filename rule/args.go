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

package rule

// PositionalArgs is the rule for the positional arguments of an argument
// list. Its splits sit before each argument. Values:
//
//	0            do not split;
//	1..n         split before the single argument at that position, keeping
//	             the rest inline (only useful while n > 1);
//	n+1          split before every argument.
//
// With a single argument the rule collapses to two values.
//
// When the positional arguments fully split, any named arguments in the same
// call are forced to fully split too.
type PositionalArgs struct {
	argCount int
	cost     int

	// named is the NamedArgs rule of the same call, if any.
	named ID
}

// NewPositionalArgs creates a rule for an argument list with the given
// number of positional arguments.
func NewPositionalArgs(argCount, cost int) *PositionalArgs {
	return &PositionalArgs{argCount: argCount, cost: cost}
}

func (r *PositionalArgs) NumValues() int {
	if r.argCount <= 1 {
		return 2
	}
	return r.argCount + 2
}

func (r *PositionalArgs) Cost() int            { return r.cost }
func (r *PositionalArgs) FullySplitValue() int { return r.NumValues() - 1 }

func (*PositionalArgs) SplitsOnInnerRules() bool { return true }

func (r *PositionalArgs) IsSplitAtValue(value, ordinal, _ int) bool {
	switch {
	case value == 0:
		return false
	case value == r.FullySplitValue():
		return true
	default:
		// Intermediate values split before exactly one argument.
		return ordinal == value-1
	}
}

func (r *PositionalArgs) Constrain(value int, other ID, otherRule Rule) (int, bool) {
	if !r.named.Nil() && other == r.named && value == r.FullySplitValue() {
		return otherRule.FullySplitValue(), true
	}
	return 0, false
}

// Contained pairs this rule with the call's named-argument rule, so that the
// positional policy can constrain it.
func (r *PositionalArgs) Contained(inner ID, innerRule Rule) {
	if _, ok := innerRule.(*NamedArgs); ok && r.named.Nil() {
		r.named = inner
	}
}

// NamedArgs is the rule for the named arguments of an argument list. Values:
//
//	0   do not split;
//	1   split before the first named argument only, moving the whole group
//	    to the next line;
//	2   split before every named argument.
type NamedArgs struct {
	cost int
}

// NewNamedArgs creates a rule for a call's named arguments.
func NewNamedArgs(cost int) *NamedArgs { return &NamedArgs{cost: cost} }

func (*NamedArgs) NumValues() int           { return 3 }
func (r *NamedArgs) Cost() int              { return r.cost }
func (*NamedArgs) FullySplitValue() int     { return 2 }
func (*NamedArgs) SplitsOnInnerRules() bool { return true }

func (*NamedArgs) IsSplitAtValue(value, ordinal, _ int) bool {
	switch value {
	case 1:
		return ordinal == 0
	case 2:
		return true
	default:
		return false
	}
}

func (*NamedArgs) Constrain(int, ID, Rule) (int, bool) { return 0, false }
