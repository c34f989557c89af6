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

// Span is a cost bearer covering a contiguous range of chunks. If any split
// inside the range fires, the span's cost is added to the layout's total
// cost once. Spans discourage, for example, splitting inside a short method
// chain.
type Span struct {
	start, end int
	cost       int
}

// NewSpan creates a span opening at the given chunk index.
func NewSpan(start, cost int) *Span {
	return &Span{start: start, end: -1, cost: cost}
}

// Close records the index of the last chunk the span covers.
func (s *Span) Close(end int) { s.end = end }

// Start returns the index of the first chunk the span covers.
func (s *Span) Start() int { return s.start }

// End returns the index of the last chunk the span covers, or -1 while the
// span is still open.
func (s *Span) End() int { return s.end }

// Cost returns the cost charged when a split fires inside the span.
func (s *Span) Cost() int { return s.cost }

// Contains returns whether a split at the given chunk index lies inside the
// span. A split at the span's final chunk is not inside it: it separates the
// span from what follows.
func (s *Span) Contains(index int) bool {
	return index >= s.start && index < s.end
}
