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
	"sort"
)

// noBlock is returned by locateBlock when the needle sorts before the first
// string of every block.
const noBlock = -1

// IDToString returns the string with the given id, or the empty string if
// id is 0 or greater than NumStrings.
func (s *Section) IDToString(id uint64) string {
	str, _ := s.Extract(id)
	return str
}

// Extract returns the string with the given id. The boolean is false if id
// is 0 or greater than NumStrings.
func (s *Section) Extract(id uint64) (string, bool) {
	if id == 0 || id > s.numStrings {
		return "", false
	}

	block := int((id - 1) / s.blockSize)
	local := int((id - 1) % s.blockSize)

	sc := s.scanBlock(block)
	for sc.Scan() {
		if sc.Index() == local {
			return string(sc.Bytes()), true
		}
	}
	return "", false
}

// StringToID returns the id of str, or 0 if the section does not contain it.
func (s *Section) StringToID(str string) uint64 {
	needle := []byte(str)

	block, exact := s.locateBlock(needle)
	switch {
	case exact:
		return uint64(block)*s.blockSize + 1
	case block == noBlock:
		return 0
	}

	local := s.locateInBlock(block, needle)
	if local == 0 {
		return 0
	}
	return uint64(block)*s.blockSize + uint64(local) + 1
}

// locateBlock binary searches the first strings of the blocks. It returns
// the block starting with needle and true, or else the last block starting
// with a string less than needle and false.
func (s *Section) locateBlock(needle []byte) (int, bool) {
	i, found := sort.Find(s.numBlocks, func(b int) int {
		return bytes.Compare(needle, s.firstString(b))
	})
	if found {
		return i, true
	}
	if i == 0 {
		return noBlock, false
	}
	return i - 1, false
}

// locateInBlock returns the position of needle in block, or 0 if the block
// does not hold it. The first string of the block sorts before needle.
func (s *Section) locateInBlock(block int, needle []byte) int {
	sc := s.scanBlock(block)
	if !sc.Scan() {
		return 0
	}

	// matched is the length of the prefix the current string shares with
	// needle.
	matched := commonPrefix(sc.Bytes(), needle, 0)
	for sc.Scan() {
		if sc.Shared() < matched {
			// The string differs from its predecessor inside the matched
			// prefix, so it and every following string sort after needle.
			return 0
		}

		cur := sc.Bytes()
		matched = commonPrefix(cur, needle, matched)
		if matched == len(needle) && matched == len(cur) {
			return sc.Index()
		}
	}
	return 0
}

// commonPrefix returns the length of the common prefix of a and b, which
// are known to agree on their first from bytes.
func commonPrefix(a, b []byte, from int) int {
	n := min(len(a), len(b))
	i := from
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
