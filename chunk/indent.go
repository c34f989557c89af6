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

package chunk

// Constants for the widths of the various kinds of indentation, in spaces.
const (
	// IndentBlock is the indentation of a block body relative to the
	// statement that introduces it.
	IndentBlock = 2

	// IndentExpression is the indentation of a wrapped expression
	// continuation.
	IndentExpression = 4
)
