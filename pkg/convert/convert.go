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

// Package convert performs the byte transformation: a raw chunked copy when
// source and target are the same code page, or a streaming transcode with
// counted substitutions when they differ.
package convert

import (
	"context"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/zosopen/tagconv/pkg/codepage"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// defaultChunkSize bounds per-chunk memory; conversion state carries across
// chunks, so the value only affects throughput.
const defaultChunkSize = 32 * 1024

// 🔧 Options configures a converter
type Options struct {
	// ChunkSize overrides the read chunk size (bytes). Zero keeps the
	// default.
	ChunkSize int
}

// 🔄 Converter transforms streams between registered code pages. A
// converter holds no per-call state and is safe to reuse across requests;
// each Convert call instantiates its own buffers and codec state.
type Converter struct {
	chunkSize int
}

// 🏭 New creates a converter
func New(opts Options) *Converter {
	size := opts.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	return &Converter{chunkSize: size}
}

// 🔄 Convert reads the input, transcodes it from source to target, and
// writes the result. When source and target are the same code page the
// bytes are copied verbatim with no decode pass, so payloads that merely
// look text-like cannot be corrupted. Output bytes and all statistics are
// deterministic for fixed inputs.
func (c *Converter) Convert(ctx context.Context, source, target *codepage.Encoding, r io.Reader, w io.Writer) Result {
	logger := zerolog.Ctx(ctx)

	res := Result{EncodingDetected: source.Name}

	var err error
	if source.Same(target) {
		err = c.copy(ctx, r, w, &res)
	} else {
		res.ConversionPerformed = true
		err = c.transcode(ctx, source, target, r, w, &res)
	}
	if err != nil {
		res.Err = Failf(FailureIO, err)
		logger.Debug().Err(err).Msg("conversion failed")
		return res
	}

	res.Success = true
	logger.Debug().
		Uint64("bytes_read", res.BytesRead).
		Uint64("bytes_written", res.BytesWritten).
		Uint64("replaced", res.ReplacedChars).
		Bool("converted", res.ConversionPerformed).
		Msg("conversion complete")
	return res
}

// copy moves bytes verbatim in bounded chunks
func (c *Converter) copy(ctx context.Context, r io.Reader, w io.Writer, res *Result) error {
	buf := make([]byte, c.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("copy cancelled: %w", err)
		}

		n, rerr := r.Read(buf)
		if n > 0 {
			res.BytesRead += uint64(n)
			if _, werr := w.Write(buf[:n]); werr != nil {
				return errors.Errorf("writing chunk: %w", werr)
			}
			res.BytesWritten += uint64(n)
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return errors.Errorf("reading chunk: %w", rerr)
		}
	}
}

// transcode decodes each chunk into characters and re-encodes them into
// the target table. Bytes left undecoded at a chunk boundary are carried
// into the next chunk, so boundaries always align with codec state even
// for future multi-byte tables.
func (c *Converter) transcode(ctx context.Context, source, target *codepage.Encoding, r io.Reader, w io.Writer, res *Result) error {
	decoder := source.NewDecoder()
	encoder := target.NewEncoder()

	buf := make([]byte, c.chunkSize)
	scratch := make([]byte, c.chunkSize*utf8.UTFMax)
	var carry []byte

	emit := func(chunk []byte, atEOF bool) error {
		text, rest, err := decodeChunk(decoder, scratch, carry, chunk, atEOF)
		if err != nil {
			return errors.Errorf("decoding from %s: %w", source.Name, err)
		}
		carry = rest

		out, replaced, err := encodeChunk(encoder, scratch, text, atEOF)
		if err != nil {
			return errors.Errorf("encoding to %s: %w", target.Name, err)
		}
		res.ReplacedChars += replaced

		if len(out) > 0 {
			if _, err := w.Write(out); err != nil {
				return errors.Errorf("writing chunk: %w", err)
			}
			res.BytesWritten += uint64(len(out))
		}
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("transcode cancelled: %w", err)
		}

		n, rerr := r.Read(buf)
		if n > 0 {
			res.BytesRead += uint64(n)
			if err := emit(buf[:n], false); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			// Flush any bytes held over from the final chunk boundary.
			return emit(nil, true)
		}
		if rerr != nil {
			return errors.Errorf("reading chunk: %w", rerr)
		}
	}
}

// decodeChunk runs the decoder over carry+chunk, returning the decoded
// UTF-8 text and the tail bytes that need more input to decode.
func decodeChunk(decoder *encoding.Decoder, scratch, carry, chunk []byte, atEOF bool) (text, rest []byte, err error) {
	src := chunk
	if len(carry) > 0 {
		src = append(append(make([]byte, 0, len(carry)+len(chunk)), carry...), chunk...)
	}

	var out []byte
	for {
		nDst, nSrc, terr := decoder.Transform(scratch, src, atEOF)
		out = append(out, scratch[:nDst]...)
		src = src[nSrc:]

		switch terr {
		case nil:
			return out, nil, nil
		case transform.ErrShortSrc:
			// Incomplete code unit at the boundary; decode it with the
			// next chunk.
			return out, append([]byte(nil), src...), nil
		case transform.ErrShortDst:
			continue
		default:
			return nil, nil, terr
		}
	}
}

// encodeChunk runs the encoder over decoded text. Characters the target
// table cannot represent are replaced with the table's substitute byte and
// counted; they never abort the operation.
func encodeChunk(encoder *encoding.Encoder, scratch, text []byte, atEOF bool) (out []byte, replaced uint64, err error) {
	for len(text) > 0 {
		nDst, nSrc, terr := encoder.Transform(scratch, text, atEOF)
		out = append(out, scratch[:nDst]...)
		text = text[nSrc:]

		switch {
		case terr == nil:
			return out, replaced, nil
		case terr == transform.ErrShortDst:
			continue
		case terr == transform.ErrShortSrc:
			// Decoders emit whole runes, so this only means an empty
			// tail; nothing left to encode until more input arrives.
			return out, replaced, nil
		default:
			// Unmappable character (or a replacement rune produced by the
			// decode side). Substitute and keep going.
			out = append(out, substituteByte(terr))
			replaced++
			_, size := utf8.DecodeRune(text)
			text = text[size:]
		}
	}
	return out, replaced, nil
}

// substituteByte picks the substitute for an unmappable character: the
// target repertoire's own replacement byte when the encoder reports one,
// ASCII SUB otherwise.
func substituteByte(err error) byte {
	var repertoire interface{ Replacement() byte }
	if errors.As(err, &repertoire) {
		return repertoire.Replacement()
	}
	return byte(encoding.ASCIISub)
}
