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

// Package readutil contains helpers for reading length-prefixed data.
package readutil

import (
	"errors"
	"io"
)

// MaxInt is the largest value of an int.
const MaxInt = int(^uint(0) >> 1)

// chunkSize bounds how much ReadN allocates ahead of the data actually read.
const chunkSize = 1 << 20

// ReadN reads exactly n bytes from r. The buffer grows with the data actually
// read so a corrupt length cannot force a large allocation up front. A short
// read returns [io.ErrUnexpectedEOF].
func ReadN(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, 0, min(n, chunkSize))
	for len(buf) < n {
		m := min(n-len(buf), chunkSize)
		buf = append(buf, make([]byte, m)...)
		if _, err := io.ReadFull(r, buf[len(buf)-m:]); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return buf, nil
}
