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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curlyfmt/curlyfmt"
	"github.com/curlyfmt/curlyfmt/builder"
	"github.com/curlyfmt/curlyfmt/chunk"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	result, err := curlyfmt.Format(curlyfmt.Options{}, curlyfmt.Request{
		URI:               "file:///main.c",
		IsCompilationUnit: true,
		Visit: func(b *builder.Builder) {
			b.Write("int main() {}")
			b.WriteWhitespace(chunk.WhitespaceNewline)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "file:///main.c", result.URI)
	assert.Equal(t, "int main() {}\n", result.Text)
	assert.Equal(t, -1, result.SelectionStart)
}

func TestFormatSelection(t *testing.T) {
	t.Parallel()

	result, err := curlyfmt.Format(curlyfmt.Options{}, curlyfmt.Request{
		Visit: func(b *builder.Builder) {
			b.Write("var x = 1;")
			b.StartSelectionFromEnd(6)
			b.EndSelectionFromEnd(5)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "var x = 1;", result.Text)
	assert.Equal(t, 4, result.SelectionStart)
	assert.Equal(t, 1, result.SelectionLength)
}

func TestFormatNoVisitor(t *testing.T) {
	t.Parallel()

	_, err := curlyfmt.Format(curlyfmt.Options{}, curlyfmt.Request{URI: "x"})
	assert.ErrorContains(t, err, "has no visitor")
}

func TestFormatUsageError(t *testing.T) {
	t.Parallel()

	// A visitor that violates the builder contract yields an error, not a
	// panic.
	_, err := curlyfmt.Format(curlyfmt.Options{}, curlyfmt.Request{
		URI: "file:///broken.c",
		Visit: func(b *builder.Builder) {
			b.EndRule()
		},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "file:///broken.c")
	assert.ErrorContains(t, err, "unbalanced EndRule")

	var usage builder.UsageError
	assert.ErrorAs(t, err, &usage)
}

func TestFormatForeignPanicPropagates(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = curlyfmt.Format(curlyfmt.Options{}, curlyfmt.Request{
			Visit: func(*builder.Builder) { panic("boom") },
		})
	})
}
