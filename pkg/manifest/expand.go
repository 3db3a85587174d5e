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

package manifest

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/zosopen/tagconv/pkg/operation"
	"github.com/zosopen/tagconv/pkg/stream"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Expand resolves every input pattern of every conversion into concrete
// requests. Output files land in the conversion's output directory under
// the input's base name plus the optional suffix. Request order follows
// manifest order, then glob match order.
func Expand(ctx context.Context, m *Manifest) ([]operation.Request, error) {
	logger := zerolog.Ctx(ctx)

	var reqs []operation.Request
	for i, c := range m.Conversions {
		for _, pattern := range c.Inputs {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, errors.Errorf("conversion %d: bad input pattern %q: %w", i, pattern, err)
			}
			if len(matches) == 0 {
				return nil, errors.Errorf("conversion %d: input pattern %q matched nothing", i, pattern)
			}

			for _, match := range matches {
				input, err := stream.Describe(match)
				if err != nil {
					return nil, errors.Errorf("conversion %d: describing input %s: %w", i, match, err)
				}

				output := stream.NewFile(filepath.Join(c.OutputDir, filepath.Base(match)+c.Suffix))
				reqs = append(reqs, operation.Request{
					Input:          input,
					Output:         output,
					SourceOverride: c.Source,
					Target:         c.Target,
				})
			}
		}
	}

	logger.Debug().Int("requests", len(reqs)).Msg("expanded manifest")
	return reqs, nil
}
