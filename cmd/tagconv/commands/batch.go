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

package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/zosopen/tagconv/pkg/manifest"
	"github.com/zosopen/tagconv/pkg/operation"
	"github.com/zosopen/tagconv/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🏭 NewBatchCmd creates the batch command
func NewBatchCmd(opts *RootOpts) *cobra.Command {
	var manifestPath string
	var parallel bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every conversion in a manifest",
		Long: `Run all conversions described by a YAML or HCL manifest. Items run
independently: a failing item is reported and the rest keep going. The
exit status is non-zero if any item failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userLog := status.NewUserLogger(ctx)

			m, err := manifest.Load(ctx, manifestPath)
			if err != nil {
				userLog.Failure("loading manifest", err)
				return err
			}

			reqs, err := manifest.Expand(ctx, m)
			if err != nil {
				userLog.Failure("expanding manifest", err)
				return err
			}

			// Output directories are manifest-declared; create them up
			// front so per-item failures are real conversion failures.
			for _, req := range reqs {
				if err := os.MkdirAll(filepath.Dir(req.Output.Path), 0o755); err != nil {
					userLog.Failure("creating output directory", err)
					return errors.Errorf("creating output directory: %w", err)
				}
			}

			orch, err := opts.newOrchestrator()
			if err != nil {
				userLog.Failure("setting up", err)
				return err
			}

			runner := operation.NewRunner(orch, parallel || m.Parallel, m.Workers)
			results := runner.RunAll(ctx, reqs)

			reporter := status.NewReporter(opts.Console, reporterLevel(ctx))
			failed := 0
			for i, res := range results {
				reporter.Report(reqs[i].Input.Path, reqs[i].Target, res)
				if !res.Success {
					failed++
				}
			}
			reporter.Summary(results)

			if failed > 0 {
				return errors.Errorf("%d of %d conversions failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "tagconv.yaml", "manifest file path (.yaml, .yml or .hcl)")
	cmd.Flags().BoolVarP(&parallel, "parallel", "p", false, "run items concurrently even if the manifest does not ask for it")

	return cmd
}
