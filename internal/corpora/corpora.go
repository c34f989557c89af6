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

// Package corpora runs table-driven tests whose table lives in the
// filesystem: each input file under a testdata root is one test case, and
// golden files next to it hold the expected outputs.
package corpora

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a filesystem test corpus.
type Corpus struct {
	// Root is the corpus directory, relative to the test file that calls
	// [Corpus.Run].
	Root string

	// Refresh names an environment variable holding a glob of test cases
	// whose golden files should be rewritten from the current outputs
	// instead of compared. A refresh run always fails, so stale goldens
	// cannot slip through CI.
	Refresh string

	// Extension is the extension, without the dot, of the files that define
	// test cases.
	Extension string

	// Outputs are the expected outputs of each case. A missing golden file
	// stands for an expected empty string.
	Outputs []Output

	// Test runs one case and returns one string per element of Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one expected output of a corpus case, stored in a golden file
// named after the case with an extra extension.
type Output struct {
	Extension string

	// Compare overrides the comparison; nil means compare as text with a
	// unified diff on mismatch.
	Compare Compare
}

// Compare compares an actual output against a golden one, returning an empty
// string on match and a description of the difference otherwise.
type Compare func(got, want string) string

// Run enumerates the corpus and runs each case as a subtest.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir()
	root := filepath.Join(testDir, c.Root)

	cases, err := doublestar.FilepathGlob(
		filepath.Join(root, "**", "*."+c.Extension),
	)
	if err != nil {
		t.Fatalf("corpora: bad corpus glob: %v", err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpora: no *.%s cases under %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid refresh glob %q", refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing goldens matching %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, casePath := range cases {
		name, err := filepath.Rel(testDir, casePath)
		if err != nil {
			name = casePath
		}
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(casePath)
			if err != nil {
				t.Fatalf("corpora: reading %q: %v", casePath, err)
			}

			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, corpus declares %d",
					len(results), len(c.Outputs))
			}

			doRefresh, _ := doublestar.Match(refresh, filepath.ToSlash(name))
			for i, output := range c.Outputs {
				goldenPath := fmt.Sprint(casePath, ".", output.Extension)
				if doRefresh {
					writeGolden(t, goldenPath, results[i])
					continue
				}

				golden, err := os.ReadFile(goldenPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: reading golden %q: %v", goldenPath, err)
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = diffCompare
				}
				if msg := compare(results[i], string(golden)); msg != "" {
					t.Errorf("mismatch against %q:\n%s", goldenPath, msg)
				}
			}
		})
	}
}

// writeGolden replaces a golden file with the current output, deleting it
// when the output is empty.
func writeGolden(t *testing.T, path, text string) {
	if text == "" {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: deleting golden %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(text), 0o666); err != nil {
		t.Errorf("corpora: writing golden %q: %v", path, err)
	}
}

func diffCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	// Highlight added and removed lines.
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "\033[1;92m" + line + "\033[0m"
		case strings.HasPrefix(line, "-"):
			lines[i] = "\033[1;91m" + line + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

// callerDir returns the directory of the test file that called [Corpus.Run].
func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("corpora: could not determine the test file's directory")
	}
	return filepath.Dir(file)
}
