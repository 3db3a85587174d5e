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

package tagstore

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 💾 Memory is a process-local Store. It backs platforms without a native
// tag facility and doubles as the test collaborator.
type Memory struct {
	mu   sync.RWMutex
	tags map[string]Tag
}

// 🏭 NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{tags: map[string]Tag{}}
}

// Name returns the backend name
func (m *Memory) Name() string {
	return "memory"
}

// 🔍 QueryTag returns the stored tag, or Untagged for unknown paths
func (m *Memory) QueryTag(ctx context.Context, path string) (Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tag, ok := m.tags[path]
	if !ok {
		return Untagged, nil
	}
	return tag, nil
}

// ✏️ SetTag stores the tag for a path
func (m *Memory) SetTag(ctx context.Context, path string, tag Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("path", path).Stringer("tag", tag).Msg("setting in-memory tag")
	m.tags[path] = tag
	return nil
}
