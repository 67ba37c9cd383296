// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vbyte implements the variable-length unsigned integers used by HDT
// dictionary sections.
//
// Each byte carries 7 value bits, least-significant group first. The high
// bit is a continuation flag: when set, more bytes follow. The same encoding
// is used for header fields and for the shared prefix lengths of front-coded
// strings.
package vbyte

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-hdt/errs"
)

// MaxLen is the maximum number of bytes of an encoded 64-bit value.
const MaxLen = binary.MaxVarintLen64

// Read decodes the value starting at buf[off]. It returns the value and the
// number of bytes consumed.
func Read(buf []byte, off int) (uint64, int, error) {
	if off < 0 || off >= len(buf) {
		return 0, 0, fmt.Errorf("%w: varint offset %d, buffer length %d", errs.ErrOutOfBounds, off, len(buf))
	}

	v, n := binary.Uvarint(buf[off:])
	switch {
	case n == 0:
		return 0, 0, fmt.Errorf("%w: no terminating byte at offset %d", errs.ErrMalformedVarint, off)
	case n < 0:
		return 0, 0, fmt.Errorf("%w: value at offset %d overflows 64 bits", errs.ErrMalformedVarint, off)
	}
	return v, n, nil
}

// ReadFrom decodes a single value from r. The raw encoded bytes are returned
// as well since header checksums are computed over them.
func ReadFrom(r io.ByteReader) (uint64, []byte, error) {
	raw := make([]byte, 0, MaxLen)
	var v uint64
	for i := 0; i < MaxLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, raw, fmt.Errorf("%w: reading varint: %w", errs.ErrTruncatedInput, io.ErrUnexpectedEOF)
			}
			return 0, raw, fmt.Errorf("reading varint: %w", err)
		}
		raw = append(raw, b)

		if b < 0x80 {
			// The tenth byte may only contribute the single top bit.
			if i == MaxLen-1 && b > 1 {
				return 0, raw, fmt.Errorf("%w: value overflows 64 bits", errs.ErrMalformedVarint)
			}
			return v | uint64(b)<<(7*i), raw, nil
		}
		v |= uint64(b&0x7f) << (7 * i)
	}
	return 0, raw, fmt.Errorf("%w: value overflows 64 bits", errs.ErrMalformedVarint)
}

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}
