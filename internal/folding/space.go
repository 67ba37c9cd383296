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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

type spaceState int

const (
	// leading is the state before the first non-space rune.
	leading spaceState = iota

	// inText is the state after a non-space rune.
	inText

	// inSpace is the state inside a whitespace run following text.
	inSpace
)

// SpaceFolder is a [transform.Transformer] that removes leading and trailing
// whitespace and replaces every internal whitespace run with a single ASCII
// space.
type SpaceFolder struct {
	state spaceState
}

// Transform implements [transform.Transformer.Transform].
func (f *SpaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			if f.state == inText {
				f.state = inSpace
			}
			nSrc += size
			continue
		}

		// Invalid bytes are copied as they are.
		out := src[nSrc : nSrc+size]
		need := len(out)
		if f.state == inSpace {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if f.state == inSpace {
			dst[nDst] = ' '
			nDst++
		}
		nDst += copy(dst[nDst:], out)
		nSrc += size
		f.state = inText
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *SpaceFolder) Reset() {
	f.state = leading
}
