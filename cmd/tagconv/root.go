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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/zosopen/tagconv/cmd/tagconv/commands"
	"github.com/zosopen/tagconv/pkg/tagstore"
)

var (
	// Flags
	debug  bool
	assume string
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&assume, "assume", "", "encoding to assume for untagged inputs (default: the target, no conversion)")
}

// newRootOpts creates the shared dependencies for all commands
func newRootOpts() *commands.RootOpts {
	return &commands.RootOpts{
		Store:          tagstore.NewDefault(),
		Console:        os.Stdout,
		UntaggedAssume: func() string { return assume },
	}
}

// setupLogging configures zerolog and stores it in the context
func setupLogging(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	for _, arg := range os.Args[1:] {
		if arg == "-d" || arg == "--debug" {
			level = zerolog.DebugLevel
		}
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
