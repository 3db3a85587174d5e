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

//go:build linux

package tagstore

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/unix"
)

// xattrName holds the tag as "<ccsid>;t" or "<ccsid>;b", mirroring the
// ccsid+txtflag pair a native chtag carries.
const xattrName = "user.tagconv.tag"

// 🗄️ Xattr is a Store backed by user extended attributes. It emulates
// native file tagging on filesystems that support user xattrs.
type Xattr struct{}

// 🏭 NewXattr creates an xattr-backed store
func NewXattr() *Xattr {
	return &Xattr{}
}

// Name returns the backend name
func (x *Xattr) Name() string {
	return "xattr"
}

// 🔍 QueryTag reads the tag attribute. A missing attribute is a normal
// untagged file, not an error.
func (x *Xattr) QueryTag(ctx context.Context, path string) (Tag, error) {
	buf := make([]byte, 32)
	n, err := unix.Getxattr(path, xattrName, buf)
	if err != nil {
		if err == unix.ENODATA {
			return Untagged, nil
		}
		return Untagged, errors.Errorf("reading tag attribute of %s: %w", path, err)
	}
	tag, err := parseXattrTag(string(buf[:n]))
	if err != nil {
		return Untagged, errors.Errorf("parsing tag attribute of %s: %w", path, err)
	}
	return tag, nil
}

// ✏️ SetTag writes the tag attribute
func (x *Xattr) SetTag(ctx context.Context, path string, tag Tag) error {
	zerolog.Ctx(ctx).Debug().Str("path", path).Stringer("tag", tag).Msg("setting xattr tag")

	if err := unix.Setxattr(path, xattrName, []byte(formatXattrTag(tag)), 0); err != nil {
		return errors.Errorf("writing tag attribute of %s: %w", path, err)
	}
	return nil
}

func formatXattrTag(tag Tag) string {
	flag := "b"
	if tag.Text {
		flag = "t"
	}
	return strconv.Itoa(tag.CCSID) + ";" + flag
}

func parseXattrTag(value string) (Tag, error) {
	ccsidPart, flagPart, ok := strings.Cut(value, ";")
	if !ok {
		return Untagged, errors.Errorf("malformed tag value %q", value)
	}
	ccsid, err := strconv.Atoi(ccsidPart)
	if err != nil {
		return Untagged, errors.Errorf("malformed ccsid in tag value %q: %w", value, err)
	}
	return Tag{CCSID: ccsid, Text: flagPart == "t"}, nil
}

// 🏭 NewDefault returns the native store for this platform
func NewDefault() Store {
	return NewXattr()
}
