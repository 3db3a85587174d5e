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

// Package stream describes conversion inputs and outputs: a path plus the
// kind of file system object behind it. Kind decides whether the object can
// carry a code page tag at all.
package stream

import (
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 📊 Kind classifies a path by the file system object behind it
type Kind int

const (
	KindUnknown       Kind = iota
	KindRegularFile        // taggable, seekable
	KindNamedPipe          // FIFO; cannot carry a tag
	KindSpecialStream      // character/block device, socket, /dev/stdin
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindRegularFile:
		return "regular file"
	case KindNamedPipe:
		return "named pipe"
	case KindSpecialStream:
		return "special stream"
	default:
		return "unknown"
	}
}

// 📄 Descriptor locates one input or output
type Descriptor struct {
	Path string // file system path
	Kind Kind   // object kind, from Describe or preset by the caller
}

// 🔍 Describe stats a path and classifies it. The path must exist; outputs
// that do not exist yet are regular files by construction and should be
// built with NewFile instead.
func Describe(path string) (Descriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Descriptor{}, errors.Errorf("stating %s: %w", path, err)
	}

	d := Descriptor{Path: path}
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		d.Kind = KindRegularFile
	case mode&os.ModeNamedPipe != 0:
		d.Kind = KindNamedPipe
	case mode&(os.ModeDevice|os.ModeCharDevice|os.ModeSocket) != 0:
		d.Kind = KindSpecialStream
	default:
		return Descriptor{}, errors.Errorf("unsupported file type %s for %s", mode.Type(), path)
	}
	return d, nil
}

// 🏭 NewFile builds a regular-file descriptor without stating the path,
// for outputs that will be created.
func NewFile(path string) Descriptor {
	return Descriptor{Path: path, Kind: KindRegularFile}
}

// 📖 Open opens the descriptor for reading
func (d Descriptor) Open() (io.ReadCloser, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", d.Path, err)
	}
	return f, nil
}

// ✏️ Create opens the descriptor for writing. Regular files are created or
// truncated; pipes and special streams are opened in place.
func (d Descriptor) Create() (io.WriteCloser, error) {
	var f *os.File
	var err error
	if d.Kind == KindRegularFile {
		f, err = os.Create(d.Path)
	} else {
		f, err = os.OpenFile(d.Path, os.O_WRONLY, 0)
	}
	if err != nil {
		return nil, errors.Errorf("creating %s: %w", d.Path, err)
	}
	return f, nil
}
