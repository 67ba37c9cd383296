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
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"unsafe"

	"github.com/ianlewis/go-hdt/errs"
	"github.com/ianlewis/go-hdt/internal/checksum"
	"github.com/ianlewis/go-hdt/internal/readutil"
	"github.com/ianlewis/go-hdt/sequence"
	"github.com/ianlewis/go-hdt/vbyte"
)

// SectionType is the type byte of a plain front coding section.
const SectionType = 0x02

// Section is a read-only plain front coding dictionary section.
type Section struct {
	numStrings   uint64
	blockSize    uint64
	packedLength uint64
	numBlocks    int

	// index holds the offset of each block in store.
	index *sequence.Sequence
	store []byte
}

// Read reads and validates a section from r. If r is not an [io.ByteReader]
// it is buffered, and the buffer may read past the end of the section.
func Read(r io.Reader) (*Section, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		b := bufio.NewReader(r)
		br, r = b, b
	}

	marker, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: reading section type: %w", errs.ErrTruncatedInput, err)
	}
	hdr := []byte{marker}

	var fields [3]uint64
	for i, name := range []string{"string count", "packed length", "block size"} {
		v, raw, err := vbyte.ReadFrom(br)
		if err != nil {
			return nil, fmt.Errorf("reading section %s: %w", name, err)
		}
		fields[i] = v
		hdr = append(hdr, raw...)
	}
	numStrings, packedLength, blockSize := fields[0], fields[1], fields[2]

	crc, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: reading section header crc8: %w", errs.ErrTruncatedInput, err)
	}
	if err := checksum.VerifyCRC8("section header", hdr, crc); err != nil {
		return nil, err
	}
	if marker != SectionType {
		return nil, fmt.Errorf("%w: section type %#02x, want %#02x", errs.ErrInvalidSection, marker, SectionType)
	}

	if packedLength > uint64(readutil.MaxInt) {
		return nil, fmt.Errorf("%w: packed length %d", errs.ErrOutOfBounds, packedLength)
	}
	// Every string takes at least its terminator.
	if numStrings > packedLength {
		return nil, fmt.Errorf("%w: %d strings in %d bytes", errs.ErrInvalidSection, numStrings, packedLength)
	}
	if numStrings > 0 && blockSize == 0 {
		return nil, fmt.Errorf("%w: block size 0", errs.ErrInvalidSection)
	}

	index, err := sequence.Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading block index: %w", err)
	}

	store, err := readutil.ReadN(r, int(packedLength))
	if err != nil {
		return nil, fmt.Errorf("%w: reading section data: %w", errs.ErrTruncatedInput, err)
	}
	var sum [4]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return nil, fmt.Errorf("%w: reading section data crc32c: %w", errs.ErrTruncatedInput, err)
	}
	if err := checksum.VerifyCRC32C("section data", store, binary.LittleEndian.Uint32(sum[:])); err != nil {
		return nil, err
	}

	s := &Section{
		numStrings:   numStrings,
		blockSize:    blockSize,
		packedLength: packedLength,
		index:        index,
		store:        store,
	}
	if numStrings > 0 {
		s.numBlocks = int((numStrings-1)/blockSize) + 1
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// validate checks the block index against the header and decodes every
// block once so that later lookups cannot fail.
func (s *Section) validate() error {
	switch n := s.index.Len(); {
	case n == s.numBlocks:
	case n == s.numBlocks+1:
		// Terminal entry marking the end of the data.
		if last := s.index.At(n - 1); last != s.packedLength {
			return fmt.Errorf("%w: terminal block offset %d, packed length %d", errs.ErrInvalidSection, last, s.packedLength)
		}
	default:
		return fmt.Errorf("%w: %d block offsets for %d blocks", errs.ErrInvalidSection, n, s.numBlocks)
	}

	if s.numBlocks == 0 {
		if s.packedLength != 0 {
			return fmt.Errorf("%w: %d bytes of data without strings", errs.ErrInvalidSection, s.packedLength)
		}
		return nil
	}
	if first := s.index.At(0); first != 0 {
		return fmt.Errorf("%w: first block offset %d", errs.ErrInvalidSection, first)
	}

	for b := range s.numBlocks {
		start := s.index.At(b)
		if start >= s.packedLength {
			return fmt.Errorf("%w: block %d offset %d, packed length %d", errs.ErrOutOfBounds, b, start, s.packedLength)
		}
		end := s.packedLength
		if b+1 < s.numBlocks {
			end = s.index.At(b + 1)
		}
		if end > s.packedLength {
			return fmt.Errorf("%w: block %d offset %d, packed length %d", errs.ErrOutOfBounds, b+1, end, s.packedLength)
		}
		if end <= start {
			return fmt.Errorf("%w: block %d ends at %d before it starts at %d", errs.ErrInvalidSection, b, end, start)
		}

		sc := s.scanBlock(b)
		sc.validate = true
		for sc.Scan() {
			// Scanning checks each string.
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("block %d: %w", b, err)
		}
		if got, want := sc.Index()+1, s.blockLen(b); got != want {
			return fmt.Errorf("%w: block %d holds %d strings, want %d", errs.ErrInvalidSection, b, got, want)
		}
		if sc.pos != int(end) {
			return fmt.Errorf("%w: block %d ends at %d, next block starts at %d", errs.ErrInvalidSection, b, sc.pos, end)
		}
	}
	return nil
}

// blockLen returns the number of strings in block b.
func (s *Section) blockLen(b int) int {
	if b == s.numBlocks-1 {
		return int(s.numStrings - uint64(b)*s.blockSize)
	}
	return int(s.blockSize)
}

// blockEnd returns the offset just past the last string of block b.
func (s *Section) blockEnd(b int) int {
	if b+1 < s.numBlocks {
		return int(s.index.At(b + 1))
	}
	return int(s.packedLength)
}

func (s *Section) scanBlock(b int) *blockScanner {
	return &blockScanner{
		data:  s.store[:s.blockEnd(b)],
		pos:   int(s.index.At(b)),
		limit: s.blockLen(b),
	}
}

// firstString returns the string block b starts with.
func (s *Section) firstString(b int) []byte {
	start := s.index.At(b)
	data := s.store[start:s.blockEnd(b)]
	return data[:bytes.IndexByte(data, 0)]
}

// NumStrings returns the number of strings in the section. Valid ids are 1
// to NumStrings.
func (s *Section) NumStrings() uint64 {
	return s.numStrings
}

// BlockSize returns the number of strings per block.
func (s *Section) BlockSize() uint64 {
	return s.blockSize
}

// PackedLength returns the size of the string data in bytes.
func (s *Section) PackedLength() uint64 {
	return s.packedLength
}

// NumBlocks returns the number of blocks.
func (s *Section) NumBlocks() int {
	return s.numBlocks
}

// SizeInBytes returns the approximate memory held by the section.
func (s *Section) SizeInBytes() int {
	return int(unsafe.Sizeof(*s)) + len(s.store) + s.index.SizeInBytes()
}

// All returns an iterator over the ids and strings of the section in order.
func (s *Section) All() iter.Seq2[uint64, string] {
	return func(yield func(uint64, string) bool) {
		id := uint64(1)
		for b := range s.numBlocks {
			sc := s.scanBlock(b)
			for sc.Scan() {
				if !yield(id, string(sc.Bytes())) {
					return
				}
				id++
			}
		}
	}
}
