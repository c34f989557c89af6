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

// Hard is the rule behind splits that always fire: line comments, statement
// ends, blank lines. It has a single value and no cost.
type Hard struct{}

// NewHard creates a hard rule.
func NewHard() *Hard { return &Hard{} }

func (*Hard) NumValues() int           { return 1 }
func (*Hard) Cost() int                { return 0 }
func (*Hard) FullySplitValue() int     { return 0 }
func (*Hard) SplitsOnInnerRules() bool { return false }

func (*Hard) IsSplitAtValue(int, int, int) bool { return true }

func (*Hard) Constrain(int, ID, Rule) (int, bool) { return 0, false }

// Simple is a two-valued rule: either none of its splits fire, or all of
// them do.
type Simple struct {
	cost int
}

// NewSimple creates a simple rule with the given cost.
func NewSimple(cost int) *Simple { return &Simple{cost: cost} }

func (r *Simple) NumValues() int         { return 2 }
func (r *Simple) Cost() int              { return r.cost }
func (*Simple) FullySplitValue() int     { return 1 }
func (*Simple) SplitsOnInnerRules() bool { return true }

func (*Simple) IsSplitAtValue(value, _, _ int) bool { return value == 1 }

func (*Simple) Constrain(int, ID, Rule) (int, bool) { return 0, false }

// Metadata is a two-valued rule owning the splits between a declaration's
// annotations and between the annotations and the declaration itself.
// Splitting costs nothing: once annotations cannot stay inline, each goes on
// its own line.
type Metadata struct{}

// NewMetadata creates a metadata rule.
func NewMetadata() *Metadata { return &Metadata{} }

func (*Metadata) NumValues() int           { return 2 }
func (*Metadata) Cost() int                { return 0 }
func (*Metadata) FullySplitValue() int     { return 1 }
func (*Metadata) SplitsOnInnerRules() bool { return true }

func (*Metadata) IsSplitAtValue(value, _, _ int) bool { return value == 1 }

func (*Metadata) Constrain(int, ID, Rule) (int, bool) { return 0, false }
