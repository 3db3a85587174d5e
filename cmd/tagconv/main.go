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

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/zosopen/tagconv/cmd/tagconv/commands"
)

func main() {
	ctx := setupLogging(context.Background())

	rootCmd := &cobra.Command{
		Use:   "tagconv",
		Short: "Tag-aware code page conversion for files, pipes and streams",
		Long: `tagconv detects the code page tag of an input, decides whether conversion
is actually necessary, and transcodes between registered 8-bit encodings
(ISO8859-1 and IBM-1047 EBCDIC). Untagged inputs are assumed to already be
in the target encoding and are copied byte-for-byte.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addRootFlags(rootCmd)

	opts := newRootOpts()

	rootCmd.AddCommand(
		commands.NewConvertCmd(opts),
		commands.NewBatchCmd(opts),
		commands.NewInfoCmd(opts),
		commands.NewTagCmd(opts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
