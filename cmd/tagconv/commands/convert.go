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

// Package commands implements the tagconv subcommands.
package commands

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zosopen/tagconv/pkg/operation"
	"github.com/zosopen/tagconv/pkg/status"
	"github.com/zosopen/tagconv/pkg/stream"
	"github.com/zosopen/tagconv/pkg/tagstore"
	"gitlab.com/tozd/go/errors"
)

// 🔧 RootOpts carries the dependencies shared by all commands
type RootOpts struct {
	// Store is the Tag Store backend for this platform
	Store tagstore.Store
	// Console receives user-facing result lines
	Console io.Writer
	// UntaggedAssume reads the --assume flag after parsing
	UntaggedAssume func() string
}

// newOrchestrator builds the engine from the shared options
func (o *RootOpts) newOrchestrator() (operation.Orchestrator, error) {
	return operation.New(operation.Options{
		Store:          o.Store,
		UntaggedAssume: o.UntaggedAssume(),
	})
}

// describeArg turns a CLI path argument into a descriptor. "-" means the
// process's standard stream.
func describeArg(arg string, stdinSide bool) (stream.Descriptor, error) {
	if arg == "-" {
		path := "/dev/stdout"
		if stdinSide {
			path = "/dev/stdin"
		}
		return stream.Descriptor{Path: path, Kind: stream.KindSpecialStream}, nil
	}
	if stdinSide {
		return stream.Describe(arg)
	}
	// Outputs need not exist yet.
	return stream.NewFile(arg), nil
}

// 🏭 NewConvertCmd creates the convert command
func NewConvertCmd(opts *RootOpts) *cobra.Command {
	var source, target string

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a single file, pipe or stream",
		Long: `Convert one input to the target encoding. The source encoding comes from
the input's code page tag unless --source is given; pipes and streams
always need --source. Use "-" for standard input or output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userLog := status.NewUserLogger(ctx)

			input, err := describeArg(args[0], true)
			if err != nil {
				userLog.Failure("cannot read input", err)
				return err
			}
			output, err := describeArg(args[1], false)
			if err != nil {
				userLog.Failure("cannot open output", err)
				return err
			}

			orch, err := opts.newOrchestrator()
			if err != nil {
				userLog.Failure("setting up", err)
				return err
			}

			res := orch.Run(ctx, operation.Request{
				Input:          input,
				Output:         output,
				SourceOverride: source,
				Target:         target,
			})

			reporter := status.NewReporter(opts.Console, reporterLevel(ctx))
			reporter.Report(args[0], target, res)

			if res.TagErr != nil {
				userLog.Warning("output written but tag could not be set: " + res.TagErr.Message)
			}
			if !res.Success {
				return errors.Errorf("converting %s: %s", args[0], res.Err.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "source encoding (overrides the input's tag)")
	cmd.Flags().StringVarP(&target, "target", "t", "IBM-1047", "target encoding")

	return cmd
}

// reporterLevel mirrors the context logger's level so --debug reaches the
// reporter's structured log too.
func reporterLevel(ctx context.Context) zerolog.Level {
	return zerolog.Ctx(ctx).GetLevel()
}
