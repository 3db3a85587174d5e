// Package tagstore defines the Tag Store collaborator: the capability to
// query and set a code page tag on a named regular file. The engine never
// calls a Store on pipes or special streams.
package tagstore

import (
	"context"
	"fmt"
)

// 🏷️ Tag is the encoding metadata attached to a file: a CCSID plus a
// text/binary flag. CCSID 0 means the file is untagged.
type Tag struct {
	CCSID int  // coded character set id; 0 = untagged
	Text  bool // text flag; false for binary payloads
}

// Untagged is the tag of a file with no encoding metadata.
var Untagged = Tag{}

// 🔍 IsUntagged reports whether the tag carries no encoding metadata
func (t Tag) IsUntagged() bool {
	return t.CCSID == 0
}

// 📝 String returns a string representation of the tag
func (t Tag) String() string {
	if t.IsUntagged() {
		return "untagged"
	}
	flag := "binary"
	if t.Text {
		flag = "text"
	}
	return fmt.Sprintf("ccsid=%d (%s)", t.CCSID, flag)
}

// Store is the primary interface for tag metadata backends. Every call is
// independent and idempotent; implementations must be safe for concurrent
// use against different paths.
type Store interface {
	// Name returns the name of the backend (e.g. "xattr")
	Name() string
	// QueryTag reads the tag of a regular file. A file without a tag
	// yields Untagged and no error; errors are reserved for failed
	// queries (permissions, unsupported filesystem, I/O).
	QueryTag(ctx context.Context, path string) (Tag, error)
	// SetTag writes the tag of a regular file
	SetTag(ctx context.Context, path string, tag Tag) error
}
