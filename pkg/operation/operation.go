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

// Package operation sequences a conversion end to end: resolve the source
// encoding, run the stream converter, and tag the output when it is a
// regular file. Batches run with a continue-on-error policy.
package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zosopen/tagconv/pkg/convert"
	"github.com/zosopen/tagconv/pkg/inspect"
	"github.com/zosopen/tagconv/pkg/resolve"
	"github.com/zosopen/tagconv/pkg/stream"
	"github.com/zosopen/tagconv/pkg/tagstore"
	"gitlab.com/tozd/go/errors"
)

// 📄 Request is one conversion to perform
type Request struct {
	// Input and Output locate the streams
	Input  stream.Descriptor
	Output stream.Descriptor
	// SourceOverride names the source encoding explicitly; required when
	// the input is not a regular file
	SourceOverride string
	// Target names the target encoding
	Target string
}

// 🎯 Orchestrator runs conversions
type Orchestrator interface {
	// Run performs a single conversion. Every failure is recorded on the
	// result; Run never panics and never returns an error of its own.
	Run(ctx context.Context, req Request) convert.Result
	// RunBatch performs many conversions independently. Results match the
	// input order, and a failing item never prevents the ones after it.
	RunBatch(ctx context.Context, reqs []Request) []convert.Result
}

// 🔧 Options contains configuration for the orchestrator
type Options struct {
	// Store is the Tag Store collaborator (required)
	Store tagstore.Store
	// UntaggedAssume optionally names the encoding an untagged input is
	// assumed to hold; empty assumes the target (copy, no conversion)
	UntaggedAssume string
	// ChunkSize overrides the converter chunk size
	ChunkSize int
}

// 🏭 New creates an orchestrator with the given options
func New(opts Options) (Orchestrator, error) {
	if opts.Store == nil {
		return nil, errors.Errorf("tag store is required")
	}

	inspector, err := inspect.NewInspector(opts.Store)
	if err != nil {
		return nil, errors.Errorf("creating inspector: %w", err)
	}
	writer, err := inspect.NewWriter(opts.Store)
	if err != nil {
		return nil, errors.Errorf("creating tag writer: %w", err)
	}
	resolver, err := resolve.New(resolve.Options{
		Inspector:      inspector,
		UntaggedAssume: opts.UntaggedAssume,
	})
	if err != nil {
		return nil, errors.Errorf("creating resolver: %w", err)
	}

	return &orchestrator{
		resolver:  resolver,
		converter: convert.New(convert.Options{ChunkSize: opts.ChunkSize}),
		writer:    writer,
	}, nil
}

// 🎮 orchestrator implements the Orchestrator interface
type orchestrator struct {
	resolver  *resolve.Resolver
	converter *convert.Converter
	writer    *inspect.Writer
}

// Run sequences resolve → convert → tag for one request
func (o *orchestrator) Run(ctx context.Context, req Request) convert.Result {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("input", req.Input.Path).Str("output", req.Output.Path).Str("target", req.Target).Msg("running conversion")

	resolution, err := o.resolver.Resolve(ctx, resolve.Query{
		Input:          req.Input,
		SourceOverride: req.SourceOverride,
		Target:         req.Target,
	})
	if err != nil {
		kind := convert.FailureIO
		if errors.Is(err, resolve.ErrUnspecifiedEncoding) {
			kind = convert.FailureUnspecifiedEncoding
		}
		return convert.Result{Err: convert.Failf(kind, err)}
	}

	res := o.convertStreams(ctx, req, resolution)
	res.EncodingDetected = resolution.Detected

	if res.Success && req.Output.Kind == stream.KindRegularFile {
		tag := tagstore.Tag{CCSID: resolution.Target.CCSID, Text: true}
		if err := o.writer.Tag(ctx, req.Output, tag); err != nil {
			// The payload is already durable; record the tag failure
			// without failing the conversion.
			res.TagErr = convert.Failf(convert.FailureTagSet, err)
			logger.Debug().Err(err).Str("output", req.Output.Path).Msg("output written but tagging failed")
		}
	}

	return res
}

// convertStreams opens both ends and runs the converter. The output is
// closed (made durable) before the caller tags it.
func (o *orchestrator) convertStreams(ctx context.Context, req Request, resolution resolve.Resolution) convert.Result {
	in, err := req.Input.Open()
	if err != nil {
		return convert.Result{Err: convert.Failf(convert.FailureIO, err)}
	}
	defer in.Close()

	out, err := req.Output.Create()
	if err != nil {
		return convert.Result{Err: convert.Failf(convert.FailureIO, err)}
	}

	res := o.converter.Convert(ctx, resolution.Source, resolution.Target, in, out)

	if err := out.Close(); err != nil && res.Success {
		res.Success = false
		res.Err = convert.Failf(convert.FailureIO, errors.Errorf("closing %s: %w", req.Output.Path, err))
	}
	return res
}

// RunBatch runs each request independently, in order
func (o *orchestrator) RunBatch(ctx context.Context, reqs []Request) []convert.Result {
	results := make([]convert.Result, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, o.Run(ctx, req))
	}
	return results
}
