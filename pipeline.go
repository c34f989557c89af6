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

package curlyfmt

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pipeline formats batches of independent sources concurrently. Each source
// gets its own builder and rule graph, so no state is shared between them.
//
// A zero Pipeline is usable and formats with default options at the
// machine's parallelism.
type Pipeline struct {
	// Options applies to every source in the batch.
	Options Options

	// MaxParallelism bounds the number of sources formatted at once. Zero or
	// negative means GOMAXPROCS.
	MaxParallelism int
}

// FormatAll formats every request and returns the results in request order.
//
// All requests are attempted even if some fail; the returned error joins the
// per-request errors. Cancelling the context abandons requests not yet
// started.
func (p *Pipeline) FormatAll(ctx context.Context, reqs ...Request) ([]Result, error) {
	par := p.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(0)
	}
	sem := semaphore.NewWeighted(int64(par))

	results := make([]Result, len(reqs))
	errs := make([]error, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			results[i], errs[i] = Format(p.Options, req)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}
