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

package convert

import "fmt"

// 📊 FailureKind classifies why a conversion (or its tagging step) failed
type FailureKind string

const (
	// FailureUnspecifiedEncoding: a non-seekable input arrived without an
	// explicit source encoding.
	FailureUnspecifiedEncoding FailureKind = "unspecified_encoding"
	// FailureIO: an open/read/write failed. Fatal to the request.
	FailureIO FailureKind = "io"
	// FailureTagSet: the output bytes were written correctly but the tag
	// could not be applied. Never flips Success.
	FailureTagSet FailureKind = "tag_set"
)

// ❌ Failure is one recorded failure
type Failure struct {
	Kind    FailureKind
	Message string
}

// 📝 Error formats a failure
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// 🏭 Failf builds a failure from a wrapped error chain
func Failf(kind FailureKind, err error) *Failure {
	return &Failure{Kind: kind, Message: err.Error()}
}

// 📊 Result is the outcome of one conversion. It is created fresh per
// request, owned by the caller, and never mutated after the conversion
// completes.
type Result struct {
	// Success is false only when the conversion itself failed; a tag-set
	// failure on correctly written bytes leaves it true.
	Success bool
	// BytesRead / BytesWritten count the raw stream traffic
	BytesRead    uint64
	BytesWritten uint64
	// EncodingDetected is what resolution saw: a canonical encoding name,
	// or "untagged"
	EncodingDetected string
	// ConversionPerformed is false on the byte-for-byte copy path
	ConversionPerformed bool
	// ReplacedChars counts substitute characters emitted for unmappable
	// input; replacements are never errors
	ReplacedChars uint64
	// Err is set when the request failed
	Err *Failure
	// TagErr is set when the payload was written but tagging it failed
	TagErr *Failure
}
