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

// Package inspect wraps the Tag Store behind the two call shapes the engine
// needs: a best-effort tag query that never fails the caller, and a tag
// write whose failure is surfaced distinctly from conversion failures.
package inspect

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zosopen/tagconv/pkg/stream"
	"github.com/zosopen/tagconv/pkg/tagstore"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Inspector resolves the tag of an input. Tag absence is a normal
// outcome, never an error: query failures and unsupported input kinds both
// come back as the untagged tag.
type Inspector struct {
	store tagstore.Store
}

// 🏭 NewInspector creates an inspector over the given store
func NewInspector(store tagstore.Store) (*Inspector, error) {
	if store == nil {
		return nil, errors.Errorf("tag store is required")
	}
	return &Inspector{store: store}, nil
}

// 🔍 Inspect returns the tag of the input, or the untagged tag when the
// input is not a regular file or the query fails.
func (i *Inspector) Inspect(ctx context.Context, d stream.Descriptor) tagstore.Tag {
	logger := zerolog.Ctx(ctx)

	if d.Kind != stream.KindRegularFile {
		logger.Debug().Str("path", d.Path).Stringer("kind", d.Kind).Msg("input kind is not taggable, treating as untagged")
		return tagstore.Untagged
	}

	tag, err := i.store.QueryTag(ctx, d.Path)
	if err != nil {
		logger.Debug().Err(err).Str("path", d.Path).Msg("tag query failed, treating as untagged")
		return tagstore.Untagged
	}

	logger.Debug().Str("path", d.Path).Stringer("tag", tag).Msg("inspected tag")
	return tag
}

// ✏️ Writer applies tags to conversion outputs
type Writer struct {
	store tagstore.Store
}

// 🏭 NewWriter creates a writer over the given store
func NewWriter(store tagstore.Store) (*Writer, error) {
	if store == nil {
		return nil, errors.Errorf("tag store is required")
	}
	return &Writer{store: store}, nil
}

// ✏️ Tag writes the tag to a regular-file output and reads it back to
// verify the store honored it. The output bytes are already durable when
// this runs, so failures here must stay distinguishable from conversion
// failures.
func (w *Writer) Tag(ctx context.Context, d stream.Descriptor, tag tagstore.Tag) error {
	if d.Kind != stream.KindRegularFile {
		return errors.Errorf("cannot tag %s %s: only regular files carry tags", d.Kind, d.Path)
	}

	if err := w.store.SetTag(ctx, d.Path, tag); err != nil {
		return errors.Errorf("setting tag on %s: %w", d.Path, err)
	}

	// Read back, matching the native chtag behavior of verifying the tag
	// actually took on the filesystem.
	got, err := w.store.QueryTag(ctx, d.Path)
	if err != nil {
		return errors.Errorf("verifying tag on %s: %w", d.Path, err)
	}
	if got.CCSID != tag.CCSID {
		return errors.Errorf("tag verification failed on %s: set ccsid=%d, read back %s", d.Path, tag.CCSID, got)
	}

	zerolog.Ctx(ctx).Debug().Str("path", d.Path).Stringer("tag", tag).Msg("tagged output")
	return nil
}
