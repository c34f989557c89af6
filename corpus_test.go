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

package curlyfmt_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/curlyfmt/curlyfmt"
	"github.com/curlyfmt/curlyfmt/builder"
	"github.com/curlyfmt/curlyfmt/chunk"
	"github.com/curlyfmt/curlyfmt/internal/corpora"
	"github.com/curlyfmt/curlyfmt/rule"
)

// TestCorpus runs the scenario corpus under testdata: each *.yaml file holds
// an event script that drives a builder the way a front end's visitor would,
// and the *.yaml.fmt golden next to it holds the expected output.
//
// Set CURLYFMT_REFRESH to a glob of case names to regenerate goldens.
func TestCorpus(t *testing.T) {
	t.Parallel()

	corpora.Corpus{
		Root:      "testdata",
		Refresh:   "CURLYFMT_REFRESH",
		Extension: "yaml",
		Outputs:   []corpora.Output{{Extension: "fmt"}},
		Test: func(t *testing.T, path, text string) []string {
			var sc scenario
			require.NoError(t, yaml.Unmarshal([]byte(text), &sc))

			result, err := curlyfmt.Format(
				curlyfmt.Options{PageWidth: sc.PageWidth, Indent: sc.Indent},
				curlyfmt.Request{
					URI:               path,
					IsCompilationUnit: sc.CompilationUnit,
					Visit: func(b *builder.Builder) {
						drive(t, b, sc.Events)
					},
				},
			)
			require.NoError(t, err)
			return []string{result.Text}
		},
	}.Run(t)
}

// scenario is one corpus case: formatting options plus the visitor's event
// stream.
type scenario struct {
	PageWidth       int         `yaml:"page_width"`
	Indent          int         `yaml:"indent"`
	CompilationUnit bool        `yaml:"compilation_unit"`
	Events          []yaml.Node `yaml:"events"`
}

type splitSpec struct {
	Space     bool `yaml:"space"`
	Double    bool `yaml:"double"`
	FlushLeft bool `yaml:"flush_left"`
}

type ruleSpec struct {
	Kind  string `yaml:"kind"`
	Cost  int    `yaml:"cost"`
	Count int    `yaml:"count"`
}

type endBlockSpec struct {
	IgnoreTrailing bool `yaml:"ignore_trailing"`
	Force          bool `yaml:"force"`
}

type commentsSpec struct {
	Token            string        `yaml:"token"`
	LinesBeforeToken int           `yaml:"lines_before_token"`
	List             []commentSpec `yaml:"list"`
}

type commentSpec struct {
	Text        string `yaml:"text"`
	LinesBefore int    `yaml:"lines_before"`
	Line        bool   `yaml:"line"`
	FlushLeft   bool   `yaml:"flush_left"`
}

// drive replays an event script against a builder, tracking the current
// block builder as blocks open and close.
func drive(t *testing.T, b *builder.Builder, events []yaml.Node) {
	for i := range events {
		b = apply(t, b, &events[i])
	}
}

func apply(t *testing.T, b *builder.Builder, event *yaml.Node) *builder.Builder {
	if event.Kind == yaml.ScalarNode {
		return applyBare(t, b, event.Value)
	}

	require.Equal(t, yaml.MappingNode, event.Kind, "event must be a string or a single-key map")
	require.Len(t, event.Content, 2, "event map must have exactly one key")
	key := event.Content[0].Value
	value := event.Content[1]

	switch key {
	case "write":
		b.Write(scalar[string](t, value))
	case "preserve":
		b.PreserveNewlines(scalar[int](t, value))
	case "indent":
		b.Indent(scalar[int](t, value))
	case "nest":
		b.NestExpression(scalar[int](t, value), false)
	case "nest_now":
		b.NestExpression(scalar[int](t, value), true)
	case "span":
		b.StartSpan(scalar[int](t, value))
	case "split":
		b.Split(splitArgs(t, value))
	case "block_split":
		b.BlockSplit(splitArgs(t, value))
	case "rule":
		b.StartRule(makeRule(t, b, value))
	case "lazy_rule":
		b.StartLazyRule(makeRule(t, b, value))
	case "end_block":
		var spec endBlockSpec
		require.NoError(t, value.Decode(&spec))
		b = b.EndBlock(spec.IgnoreTrailing, spec.Force)
	case "comments":
		var spec commentsSpec
		require.NoError(t, value.Decode(&spec))
		comments := make([]chunk.SourceComment, len(spec.List))
		for i, c := range spec.List {
			comments[i] = chunk.NewComment(c.Text, c.LinesBefore, c.Line)
			comments[i].FlushLeft = c.FlushLeft
		}
		b.WriteComments(comments, spec.LinesBeforeToken, spec.Token)
	default:
		t.Fatalf("unknown event %q", key)
	}
	return b
}

func applyBare(t *testing.T, b *builder.Builder, op string) *builder.Builder {
	switch op {
	case "space":
		b.WriteWhitespace(chunk.WhitespaceSpace)
	case "newline":
		b.WriteWhitespace(chunk.WhitespaceNewline)
	case "nested_newline":
		b.WriteWhitespace(chunk.WhitespaceNestedNewline)
	case "newline_flush_left":
		b.WriteWhitespace(chunk.WhitespaceNewlineFlushLeft)
	case "two_newlines":
		b.WriteWhitespace(chunk.WhitespaceTwoNewlines)
	case "space_or_newline":
		b.WriteWhitespace(chunk.WhitespaceSpaceOrNewline)
	case "one_or_two_newlines":
		b.WriteWhitespace(chunk.WhitespaceOneOrTwoNewlines)
	case "split":
		b.Split(builder.SplitArgs{})
	case "block_split":
		b.BlockSplit(builder.SplitArgs{})
	case "rule":
		b.StartRule(rule.ID(0))
	case "end_rule":
		b.EndRule()
	case "end_span":
		b.EndSpan()
	case "unindent":
		b.Unindent()
	case "unnest":
		b.Unnest()
	case "force":
		b.ForceRules()
	case "start_block":
		b = b.StartBlock()
	case "end_block":
		b = b.EndBlock(false, false)
	case "start_block_args":
		b.StartBlockArgumentNesting()
	case "end_block_args":
		b.EndBlockArgumentNesting()
	default:
		t.Fatalf("unknown event %q", op)
	}
	return b
}

func splitArgs(t *testing.T, value *yaml.Node) builder.SplitArgs {
	var spec splitSpec
	require.NoError(t, value.Decode(&spec))
	args := builder.SplitArgs{Space: spec.Space, FlushLeft: spec.FlushLeft}
	if spec.Double {
		args.Double = chunk.TristateDouble
	}
	return args
}

func makeRule(t *testing.T, b *builder.Builder, value *yaml.Node) rule.ID {
	var spec ruleSpec
	require.NoError(t, value.Decode(&spec))
	cost := spec.Cost
	if cost == 0 {
		cost = rule.CostNormal
	}

	switch spec.Kind {
	case "", "simple":
		return b.NewRule(rule.NewSimple(cost))
	case "args":
		return b.NewRule(rule.NewPositionalArgs(spec.Count, cost))
	case "named":
		return b.NewRule(rule.NewNamedArgs(cost))
	case "combinator":
		return b.NewRule(rule.NewCombinator(cost))
	case "metadata":
		return b.NewRule(rule.NewMetadata())
	default:
		t.Fatalf("unknown rule kind %q", spec.Kind)
		return rule.ID(0)
	}
}

func scalar[T any](t *testing.T, value *yaml.Node) T {
	var v T
	require.NoError(t, value.Decode(&v))
	return v
}
