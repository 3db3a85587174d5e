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
	"github.com/zosopen/tagconv/pkg/tagstore"
)

// 🏭 NewTagCmd creates the tag command
func NewTagCmd(opts *RootOpts) *cobra.Command {
	var (
		encodingName string
		binary       bool
	)

	cmd := &cobra.Command{
		Use:   "tag <path>",
		Short: "Set the code page tag on a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userLog := status.NewUserLogger(ctx)

			enc, err := codepage.Resolve(encodingName)
			if err != nil {
				userLog.Failure("unknown encoding", err)
				return err
			}

			d, err := stream.Describe(args[0])
			if err != nil {
				userLog.Failure("cannot inspect path", err)
				return err
			}

			writer, err := inspect.NewWriter(opts.Store)
			if err != nil {
				userLog.Failure("setting up", err)
				return err
			}

			tag := tagstore.Tag{CCSID: enc.CCSID, Text: !binary}
			if err := writer.Tag(ctx, d, tag); err != nil {
				userLog.Failure("tagging failed", err)
				return err
			}

			userLog.Success(fmt.Sprintf("%s tagged %s", args[0], tag))
			return nil
		},
	}

	cmd.Flags().StringVarP(&encodingName, "encoding", "e", "", "encoding name or CCSID to tag the file with")
	cmd.Flags().BoolVar(&binary, "binary", false, "mark the tag as binary instead of text")
	_ = cmd.MarkFlagRequired("encoding")

	return cmd
}
