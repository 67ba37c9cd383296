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

package pfc

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/ianlewis/go-hdt/errs"
	"github.com/ianlewis/go-hdt/vbyte"
)

// stringAt returns the zero terminated string starting at data[off] without
// its terminator, and the number of bytes it occupies including the
// terminator.
func stringAt(data []byte, off int) ([]byte, int, error) {
	if off < 0 || off >= len(data) {
		return nil, 0, fmt.Errorf("%w: string offset %d, data length %d", errs.ErrOutOfBounds, off, len(data))
	}
	n := bytes.IndexByte(data[off:], 0)
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: unterminated string at offset %d", errs.ErrOutOfBounds, off)
	}
	return data[off : off+n], n + 1, nil
}

// blockScanner decodes the strings of a single block in order. Its usage
// follows bufio.Scanner.
type blockScanner struct {
	// data is the string data truncated to the end of the block.
	data []byte
	pos  int

	// limit is the number of strings in the block.
	limit int
	n     int

	cur    []byte
	shared int

	// validate enables UTF-8 checks of each reconstructed string.
	validate bool

	err error
}

// Scan advances to the next string. It returns false at the end of the block
// or on error.
func (sc *blockScanner) Scan() bool {
	if sc.err != nil || sc.n >= sc.limit || sc.pos >= len(sc.data) {
		return false
	}

	if sc.n == 0 {
		str, size, err := stringAt(sc.data, sc.pos)
		if err != nil {
			sc.err = err
			return false
		}
		sc.cur = append(sc.cur[:0], str...)
		sc.shared = 0
		sc.pos += size
	} else {
		shared, n, err := vbyte.Read(sc.data, sc.pos)
		if err != nil {
			sc.err = err
			return false
		}
		if shared > uint64(len(sc.cur)) {
			sc.err = fmt.Errorf("%w: shared prefix length %d at offset %d exceeds previous string length %d",
				errs.ErrOutOfBounds, shared, sc.pos, len(sc.cur))
			return false
		}
		sc.pos += n

		suffix, size, err := stringAt(sc.data, sc.pos)
		if err != nil {
			sc.err = err
			return false
		}
		sc.cur = append(sc.cur[:shared], suffix...)
		sc.shared = int(shared)
		sc.pos += size
	}

	// A suffix can split a multi-byte character so only the whole string is
	// checked.
	if sc.validate && !utf8.Valid(sc.cur) {
		sc.err = fmt.Errorf("%w: string %d of block is not valid UTF-8", errs.ErrInvalidEncoding, sc.n)
		return false
	}

	sc.n++
	return true
}

// Bytes returns the current string. The slice is only valid until the next
// call to Scan.
func (sc *blockScanner) Bytes() []byte {
	return sc.cur
}

// Shared returns the length of the prefix the current string shares with
// the previous one.
func (sc *blockScanner) Shared() int {
	return sc.shared
}

// Index returns the position of the current string in the block.
func (sc *blockScanner) Index() int {
	return sc.n - 1
}

// Err returns the first error encountered by Scan.
func (sc *blockScanner) Err() error {
	return sc.err
}
