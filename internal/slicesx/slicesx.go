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

// Package slicesx contains extensions to Go's package slices.
package slicesx

// Last returns the last element of s, if it has one.
func Last[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var z E
		return z, false
	}
	return s[len(s)-1], true
}

// Pop removes the last element of *s, if it has one, and returns it.
func Pop[S ~[]E, E any](s *S) (E, bool) {
	last, ok := Last(*s)
	if ok {
		*s = (*s)[:len(*s)-1]
	}
	return last, ok
}
