// Copyright 2025 the tagconv authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/zosopen/tagconv/pkg/convert"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes batches, sequentially or in parallel. Requests carry
// no shared mutable state, so parallel execution needs no locking; result
// order matches input order either way.
type Runner struct {
	orch     Orchestrator
	parallel bool
	limit    int
}

// 🏗️ NewRunner creates a runner. A limit of zero means one worker per CPU
// when parallel is set.
func NewRunner(orch Orchestrator, parallel bool, limit int) *Runner {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Runner{orch: orch, parallel: parallel, limit: limit}
}

// 🏃 RunAll executes all requests and returns their results in input order
func (r *Runner) RunAll(ctx context.Context, reqs []Request) []convert.Result {
	if !r.parallel {
		return r.orch.RunBatch(ctx, reqs)
	}
	return r.runParallel(ctx, reqs)
}

// ⚡ runParallel fans requests out across workers. Every failure is already
// captured on its own result, so the group never sees an error and one bad
// item cannot cancel its siblings.
func (r *Runner) runParallel(ctx context.Context, reqs []Request) []convert.Result {
	zerolog.Ctx(ctx).Debug().Int("requests", len(reqs)).Int("workers", r.limit).Msg("running batch in parallel")

	results := make([]convert.Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			results[i] = r.orch.Run(gctx, req)
			return nil
		})
	}
	// No worker returns an error; Wait only joins them.
	_ = g.Wait()

	return results
}
