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

package status

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎯 UserLogger gives CLI commands a small, friendly message surface,
// separate from the per-result Reporter lines.
type UserLogger struct {
	zlog *zerolog.Logger
}

// 🏭 NewUserLogger creates a user logger from the context's zerolog
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{zlog: zerolog.Ctx(ctx)}
}

// 📝 Info prints an informational message
func (l *UserLogger) Info(msg string) {
	pterm.Info.Println(msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Success prints a success message
func (l *UserLogger) Success(msg string) {
	pterm.Success.Println(msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Warning prints a warning message
func (l *UserLogger) Warning(msg string) {
	pterm.Warning.Println(msg)
	l.zlog.Warn().Msg(msg)
}

// 📝 Failure prints an error message, optionally with its cause
func (l *UserLogger) Failure(msg string, err error) {
	pterm.Error.Println(msg)
	if err != nil {
		pterm.Error.Println(err)
	}
	l.zlog.Error().Err(err).Msg(msg)
}
