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

import "fmt"

// UsageError reports a violation of the builder's contract by the visitor:
// unbalanced scopes, selection marks without a chunk to carry them, or
// ambiguous whitespace that was never resolved.
//
// The builder panics with a UsageError rather than returning it: its inputs
// come from trusted upstream components, and no partial output is ever
// produced. API boundaries that accept arbitrary visitors recover it.
type UsageError struct {
	msg string
}

func (e UsageError) Error() string { return "builder: " + e.msg }

func fail(format string, args ...any) {
	panic(UsageError{msg: fmt.Sprintf(format, args...)})
}
