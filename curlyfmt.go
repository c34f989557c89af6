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

// Package curlyfmt is the layout engine of a formatter for curly-brace
// languages.
//
// The engine is language-independent: a front end walks its syntax tree and
// drives a [builder.Builder] with a linear stream of events such as "write
// this token", "a split may go here", "these chunks would rather stay
// together". The builder turns the stream into chunks governed by split
// rules, and the line writer searches the rules' value space for the
// cheapest layout that fits the page.
//
// [Format] runs one visitor to completion. [Pipeline] formats batches of
// independent sources concurrently.
package curlyfmt

import (
	"fmt"

	"github.com/curlyfmt/curlyfmt/builder"
)

// Options configures formatting.
type Options struct {
	// PageWidth is the column limit formatted output tries to stay within.
	// Zero means the default of 80.
	PageWidth int

	// Indent is the number of spaces of leading indentation applied to the
	// whole output. It is used when formatting a statement for insertion
	// into an already-indented context.
	Indent int
}

// Visitor drives a builder over some syntax tree, emitting the token and
// whitespace stream the layout engine consumes.
type Visitor func(*builder.Builder)

// Request is one source to format.
type Request struct {
	// URI identifies the source in errors. It may be empty.
	URI string

	// IsCompilationUnit marks a whole source file, which ends in exactly one
	// trailing newline; a statement fragment ends in none.
	IsCompilationUnit bool

	// Visit walks the source's syntax tree.
	Visit Visitor
}

// Result is the outcome of formatting one source.
type Result struct {
	// URI echoes the request's identifier.
	URI string

	// Text is the formatted output.
	Text string

	// SelectionStart and SelectionLength locate the preserved editor
	// selection in Text. SelectionStart is -1 when the visitor recorded no
	// selection.
	SelectionStart  int
	SelectionLength int
}

// Format runs the request's visitor against a fresh builder and lays out the
// result.
//
// The builder reports contract violations by panicking with a
// [builder.UsageError]; Format converts that into an error so that a buggy
// front end cannot take down its host. Any other panic propagates.
func Format(opts Options, req Request) (result Result, err error) {
	if req.Visit == nil {
		return Result{}, fmt.Errorf("curlyfmt: request %q has no visitor", req.URI)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		usage, ok := r.(builder.UsageError)
		if !ok {
			panic(r)
		}
		if req.URI != "" {
			err = fmt.Errorf("curlyfmt: %s: %w", req.URI, usage)
		} else {
			err = fmt.Errorf("curlyfmt: %w", usage)
		}
	}()

	b := builder.New(builder.Options{
		PageWidth:         opts.PageWidth,
		Indent:            opts.Indent,
		IsCompilationUnit: req.IsCompilationUnit,
	})
	req.Visit(b)
	out := b.End()

	return Result{
		URI:             req.URI,
		Text:            out.Text,
		SelectionStart:  out.SelectionStart,
		SelectionLength: out.SelectionLength,
	}, nil
}
