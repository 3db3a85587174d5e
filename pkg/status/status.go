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

// Package status renders conversion results for people. The engine only
// returns data; everything user-visible happens here.
package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/zosopen/tagconv/pkg/convert"
)

// 🎨 Display configuration
const (
	nameWidth     = 35 // Base width for input path
	encodingWidth = 24 // Width for the detected→target column
)

// 🎯 Reporter prints one line per conversion and a closing summary
type Reporter struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 NewReporter creates a reporter writing to console
func NewReporter(console io.Writer, level zerolog.Level) *Reporter {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Reporter{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatResult formats a single conversion line
func formatResult(input, target string, res convert.Result) string {
	var symbol string
	var symbolColor color.Attribute
	switch {
	case !res.Success:
		symbol = "✗"
		symbolColor = color.FgRed
	case res.TagErr != nil:
		symbol = "⚠"
		symbolColor = color.FgYellow
	case res.ConversionPerformed:
		symbol = "✓"
		symbolColor = color.FgGreen
	default:
		symbol = "•"
		symbolColor = color.FgCyan
	}

	encodings := fmt.Sprintf("%s → %s", res.EncodingDetected, target)

	var detail string
	switch {
	case !res.Success:
		detail = res.Err.Error()
	case res.ReplacedChars > 0:
		detail = fmt.Sprintf("%d bytes, %d replaced", res.BytesWritten, res.ReplacedChars)
	default:
		detail = fmt.Sprintf("%d bytes", res.BytesWritten)
	}

	return fmt.Sprintf("  %s %s %s %s",
		color.New(symbolColor).Sprint(symbol),
		fmt.Sprintf("%-*s", nameWidth, input),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", encodingWidth, encodings)),
		detail)
}

// 📝 Report prints one conversion result
func (r *Reporter) Report(input, target string, res convert.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.console, formatResult(input, target, res))
	if res.TagErr != nil {
		fmt.Fprintf(r.console, "    %s %s\n",
			color.New(color.FgYellow).Sprint("tag:"), res.TagErr.Message)
	}

	event := r.zlog.Info()
	if !res.Success {
		event = r.zlog.Error()
	}
	event.
		Str("input", input).
		Str("detected", res.EncodingDetected).
		Str("target", target).
		Bool("converted", res.ConversionPerformed).
		Uint64("bytes_read", res.BytesRead).
		Uint64("bytes_written", res.BytesWritten).
		Uint64("replaced", res.ReplacedChars).
		Msg("conversion result")
}

// 📝 Summary prints the batch totals
func (r *Reporter) Summary(results []convert.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var succeeded, failed, tagFailed int
	var bytes, replaced uint64
	for _, res := range results {
		if res.Success {
			succeeded++
		} else {
			failed++
		}
		if res.TagErr != nil {
			tagFailed++
		}
		bytes += res.BytesWritten
		replaced += res.ReplacedChars
	}

	line := fmt.Sprintf("%d converted, %d failed, %d bytes written", succeeded, failed, bytes)
	if replaced > 0 {
		line += fmt.Sprintf(", %d characters replaced", replaced)
	}
	if tagFailed > 0 {
		line += fmt.Sprintf(", %d outputs left untagged", tagFailed)
	}

	headline := color.New(color.Bold, color.FgCyan).Sprint("tagconv")
	fmt.Fprintf(r.console, "\n%s %s\n", headline, color.New(color.Faint).Sprint("• "+line))

	r.zlog.Info().
		Int("succeeded", succeeded).
		Int("failed", failed).
		Uint64("bytes_written", bytes).
		Uint64("replaced", replaced).
		Msg("batch complete")
}
