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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zosopen/tagconv/pkg/codepage"
	"github.com/zosopen/tagconv/pkg/inspect"
	"github.com/zosopen/tagconv/pkg/status"
	"github.com/zosopen/tagconv/pkg/stream"
)

// 🏭 NewInfoCmd creates the info command
func NewInfoCmd(opts *RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Show the code page tag of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userLog := status.NewUserLogger(ctx)

			d, err := stream.Describe(args[0])
			if err != nil {
				userLog.Failure("cannot inspect path", err)
				return err
			}

			inspector, err := inspect.NewInspector(opts.Store)
			if err != nil {
				userLog.Failure("setting up", err)
				return err
			}

			tag := inspector.Inspect(ctx, d)

			encoding := "untagged"
			if e, ok := codepage.ByCCSID(tag.CCSID); ok {
				encoding = e.Name
			}

			fmt.Fprintf(opts.Console, "%s: kind=%s tag=%s encoding=%s\n", args[0], d.Kind, tag, encoding)
			return nil
		},
	}
}
