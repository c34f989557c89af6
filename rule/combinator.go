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

// Combinator is the rule for directive combinator clauses ("show a, b hide
// c" and friends). Its first owned split sits before the combinator keyword;
// the rest sit between the listed names. Values:
//
//	0   do not split;
//	1   split before the keyword, keeping the names inline;
//	2   split before the keyword and between every name.
type Combinator struct {
	cost int
}

// NewCombinator creates a combinator rule.
func NewCombinator(cost int) *Combinator { return &Combinator{cost: cost} }

func (*Combinator) NumValues() int           { return 3 }
func (r *Combinator) Cost() int              { return r.cost }
func (*Combinator) FullySplitValue() int     { return 2 }
func (*Combinator) SplitsOnInnerRules() bool { return true }

func (*Combinator) IsSplitAtValue(value, ordinal, _ int) bool {
	switch value {
	case 1:
		return ordinal == 0
	case 2:
		return true
	default:
		return false
	}
}

func (*Combinator) Constrain(int, ID, Rule) (int, bool) { return 0, false }
