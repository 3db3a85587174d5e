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

// Package codepage maps code page names and CCSIDs to byte tables.
package codepage

import (
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// 🔢 Well-known CCSID values
const (
	CCSIDUntagged = 0    // no encoding metadata present
	CCSIDISO88591 = 819  // ASCII/ISO8859-1
	CCSIDIBM1047  = 1047 // EBCDIC
)

// 📖 Encoding is one registered code page: a canonical name, its CCSID,
// and a bidirectional byte table. Values handed out by the registry are
// shared; equality is canonical identity via Same, never name spelling.
type Encoding struct {
	Name    string // canonical name, e.g. "ISO8859-1"
	CCSID   int
	aliases []string
	table   encoding.Encoding
}

// 🏭 New creates an encoding entry backed by the given byte table
func New(name string, ccsid int, table encoding.Encoding, aliases ...string) *Encoding {
	return &Encoding{
		Name:    name,
		CCSID:   ccsid,
		aliases: aliases,
		table:   table,
	}
}

// 🔄 NewDecoder returns a fresh decoder (table bytes → UTF-8).
// Decoders are stateful and must not be shared between conversions.
func (e *Encoding) NewDecoder() *encoding.Decoder {
	return e.table.NewDecoder()
}

// 🔄 NewEncoder returns a fresh encoder (UTF-8 → table bytes)
func (e *Encoding) NewEncoder() *encoding.Encoder {
	return e.table.NewEncoder()
}

// 🔍 Same reports whether two entries name the same code page
func (e *Encoding) Same(other *Encoding) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.CCSID == other.CCSID
}

// 📝 String returns the canonical name
func (e *Encoding) String() string {
	return e.Name
}

var (
	// 🗺️ registry holds all registered encodings, keyed by normalized
	// name and alias. Mutated only at init time.
	registry = map[string]*Encoding{}

	// 🗺️ byCCSID indexes the same entries by CCSID
	byCCSID = map[int]*Encoding{}

	// ordered keeps registration order for Names
	ordered []*Encoding
)

// 📝 Register adds an encoding to the registry. It fails if any name or
// alias collides with an existing entry.
func Register(e *Encoding) error {
	keys := append([]string{e.Name}, e.aliases...)
	for _, k := range keys {
		if prev, ok := registry[normalize(k)]; ok {
			return errors.Errorf("encoding name %q already registered to %s", k, prev.Name)
		}
	}
	if prev, ok := byCCSID[e.CCSID]; ok {
		return errors.Errorf("CCSID %d already registered to %s", e.CCSID, prev.Name)
	}
	for _, k := range keys {
		registry[normalize(k)] = e
	}
	byCCSID[e.CCSID] = e
	ordered = append(ordered, e)
	return nil
}

// 🎯 Resolve looks up an encoding by name or alias. Lookup is
// case-insensitive and ignores "-", "_" and spaces, so "ibm1047",
// "IBM-1047" and "cp1047" all resolve to the same entry.
func Resolve(name string) (*Encoding, error) {
	e, ok := registry[normalize(name)]
	if !ok {
		return nil, errors.Errorf("unknown encoding %q (registered: %s)", name, strings.Join(Names(), ", "))
	}
	return e, nil
}

// 🎯 ByCCSID looks up an encoding by its CCSID
func ByCCSID(ccsid int) (*Encoding, bool) {
	e, ok := byCCSID[ccsid]
	return e, ok
}

// 📋 Names returns the canonical names of all registered encodings, in
// registration order.
func Names() []string {
	names := make([]string, 0, len(ordered))
	for _, e := range ordered {
		names = append(names, e.Name)
	}
	return names
}

// normalize folds case and separator characters so alias spellings collapse
// to one key.
func normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer("-", "", "_", "", " ", "").Replace(name)
	return name
}

func init() {
	for _, e := range []*Encoding{
		New("ISO8859-1", CCSIDISO88591, charmap.ISO8859_1, "latin1", "latin-1", "ascii", "819"),
		New("IBM-1047", CCSIDIBM1047, charmap.CodePage1047, "ibm1047", "cp1047", "ebcdic", "1047"),
	} {
		if err := Register(e); err != nil {
			panic(err)
		}
	}
}
