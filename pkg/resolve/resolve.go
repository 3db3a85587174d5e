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

// Package resolve decides the effective source encoding of an input and
// whether transcoding to the target is actually necessary.
package resolve

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zosopen/tagconv/pkg/codepage"
	"github.com/zosopen/tagconv/pkg/inspect"
	"github.com/zosopen/tagconv/pkg/stream"
	"github.com/zosopen/tagconv/pkg/tagstore"
	"gitlab.com/tozd/go/errors"
)

// ErrUnspecifiedEncoding means a non-seekable input arrived without an
// explicit source encoding. Pipes and special streams cannot be
// tag-inspected, so there is nothing to fall back to.
var ErrUnspecifiedEncoding = errors.Base("source encoding must be specified for non-file inputs")

// 📄 Query is one resolution request
type Query struct {
	Input          stream.Descriptor
	SourceOverride string // explicit source encoding name; wins over the tag
	Target         string // target encoding name
}

// 📊 Resolution is the outcome: which table to read the input with, and
// whether a transcode pass is needed at all.
type Resolution struct {
	Source          *codepage.Encoding
	Target          *codepage.Encoding
	NeedsConversion bool
	Detected        string // what the inspector saw: a canonical name or "untagged"
}

// 🔧 Options configures a resolver
type Options struct {
	// Inspector resolves tags of regular-file inputs
	Inspector *inspect.Inspector
	// UntaggedAssume names the encoding an untagged input is assumed to
	// hold. Empty keeps the historic behavior: untagged inputs are assumed
	// to already be in the target encoding and are copied byte-for-byte.
	UntaggedAssume string
}

// 🎯 Resolver implements the precedence: explicit override, then file tag,
// then failure for inputs that cannot be inspected.
type Resolver struct {
	inspector      *inspect.Inspector
	untaggedAssume string
}

// 🏭 New creates a resolver
func New(opts Options) (*Resolver, error) {
	if opts.Inspector == nil {
		return nil, errors.Errorf("inspector is required")
	}
	if opts.UntaggedAssume != "" {
		if _, err := codepage.Resolve(opts.UntaggedAssume); err != nil {
			return nil, errors.Errorf("validating untagged-assume encoding: %w", err)
		}
	}
	return &Resolver{
		inspector:      opts.Inspector,
		untaggedAssume: opts.UntaggedAssume,
	}, nil
}

// 🎯 Resolve determines the effective source encoding for the query.
// The comparison deciding NeedsConversion is by canonical registry
// identity, so alias spellings of the same encoding never trigger a
// conversion pass.
func (r *Resolver) Resolve(ctx context.Context, q Query) (Resolution, error) {
	logger := zerolog.Ctx(ctx)

	target, err := codepage.Resolve(q.Target)
	if err != nil {
		return Resolution{}, errors.Errorf("resolving target encoding: %w", err)
	}

	res := Resolution{Target: target}

	switch {
	case q.SourceOverride != "":
		src, err := codepage.Resolve(q.SourceOverride)
		if err != nil {
			return Resolution{}, errors.Errorf("resolving source override: %w", err)
		}
		res.Source = src
		res.Detected = src.Name

	case q.Input.Kind == stream.KindRegularFile:
		tag := r.inspector.Inspect(ctx, q.Input)
		src, name := r.fromTag(ctx, tag, target)
		res.Source = src
		res.Detected = name

	default:
		return Resolution{}, errors.Errorf("%s %s: %w", q.Input.Kind, q.Input.Path, ErrUnspecifiedEncoding)
	}

	res.NeedsConversion = !res.Source.Same(target)

	logger.Debug().
		Str("input", q.Input.Path).
		Str("detected", res.Detected).
		Str("source", res.Source.Name).
		Str("target", target.Name).
		Bool("needs_conversion", res.NeedsConversion).
		Msg("resolved encodings")

	return res, nil
}

// fromTag maps a tag to a source encoding. A CCSID outside the registry is
// treated the same as no tag at all.
func (r *Resolver) fromTag(ctx context.Context, tag tagstore.Tag, target *codepage.Encoding) (*codepage.Encoding, string) {
	if !tag.IsUntagged() {
		if src, ok := codepage.ByCCSID(tag.CCSID); ok {
			return src, src.Name
		}
		zerolog.Ctx(ctx).Debug().Int("ccsid", tag.CCSID).Msg("unrecognized ccsid, treating as untagged")
	}

	if r.untaggedAssume != "" {
		src, err := codepage.Resolve(r.untaggedAssume)
		if err == nil {
			return src, "untagged"
		}
	}
	return target, "untagged"
}
