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

// Package sequence implements HDT sequences (log arrays): read-only arrays of
// unsigned integers stored with a fixed number of bits per entry.
//
// Entries are packed contiguously, least-significant bit first, into 64-bit
// little-endian words, so an entry may straddle two words.
//
// On disk a sequence comes in six parts:
//  1. The type byte, which is always 1 (log array).
//  2. The number of bits per entry, a single byte between 0 and 64.
//  3. The number of entries, a varint.
//  4. A CRC-8/CCITT checksum of parts 1 to 3.
//  5. The packed entries, ceil(bits*entries/8) bytes.
//  6. A 4 byte little-endian CRC-32C checksum of part 5.
package sequence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/ianlewis/go-hdt/errs"
	"github.com/ianlewis/go-hdt/internal/checksum"
	"github.com/ianlewis/go-hdt/internal/readutil"
	"github.com/ianlewis/go-hdt/vbyte"
)

// TypeLog is the type byte of a log array sequence.
const TypeLog = 1

// MaxBitsPerEntry is the maximum entry width.
const MaxBitsPerEntry = 64

// Sequence is an immutable array of fixed bit width unsigned integers.
type Sequence struct {
	words        []uint64
	entries      int
	bitsPerEntry int
}

// BitsFor returns the number of bits needed to store values up to and
// including maxValue.
func BitsFor(maxValue uint64) int {
	return bits.Len64(maxValue)
}

// New packs values into a new Sequence using bitsPerEntry bits per value.
func New(values []uint64, bitsPerEntry int) (*Sequence, error) {
	if bitsPerEntry < 0 || bitsPerEntry > MaxBitsPerEntry {
		return nil, fmt.Errorf("%w: %d bits per entry", errs.ErrOutOfBounds, bitsPerEntry)
	}

	s := &Sequence{
		words:        make([]uint64, numWords(len(values), bitsPerEntry)),
		entries:      len(values),
		bitsPerEntry: bitsPerEntry,
	}
	for i, v := range values {
		if BitsFor(v) > bitsPerEntry {
			return nil, fmt.Errorf("%w: value %d at %d does not fit in %d bits", errs.ErrOutOfBounds, v, i, bitsPerEntry)
		}
		s.set(i, v)
	}
	return s, nil
}

// Len returns the number of entries.
func (s *Sequence) Len() int {
	return s.entries
}

// BitsPerEntry returns the width of an entry in bits.
func (s *Sequence) BitsPerEntry() int {
	return s.bitsPerEntry
}

// SizeInBytes returns the size of the packed entries in memory.
func (s *Sequence) SizeInBytes() int {
	return len(s.words) * 8
}

// Get returns the i-th entry.
func (s *Sequence) Get(i int) (uint64, error) {
	if i < 0 || i >= s.entries {
		return 0, fmt.Errorf("%w: sequence index %d, length %d", errs.ErrOutOfBounds, i, s.entries)
	}
	return s.At(i), nil
}

// At returns the i-th entry without checking i. It panics when i is out of
// range; use Get when i is not known to be valid.
func (s *Sequence) At(i int) uint64 {
	if s.bitsPerEntry == 0 {
		return 0
	}

	bit := uint64(i) * uint64(s.bitsPerEntry)
	word, shift := bit/64, bit%64

	v := s.words[word] >> shift
	if shift+uint64(s.bitsPerEntry) > 64 {
		v |= s.words[word+1] << (64 - shift)
	}
	return v & s.mask()
}

func (s *Sequence) set(i int, v uint64) {
	if s.bitsPerEntry == 0 {
		return
	}

	bit := uint64(i) * uint64(s.bitsPerEntry)
	word, shift := bit/64, bit%64

	s.words[word] |= v << shift
	if shift+uint64(s.bitsPerEntry) > 64 {
		s.words[word+1] |= v >> (64 - shift)
	}
}

func (s *Sequence) mask() uint64 {
	if s.bitsPerEntry == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<s.bitsPerEntry - 1
}

// MarshalBinary returns the on-disk representation of the sequence.
func (s *Sequence) MarshalBinary() ([]byte, error) {
	b := []byte{TypeLog, byte(s.bitsPerEntry)}
	b = vbyte.Append(b, uint64(s.entries))
	b = append(b, checksum.CRC8(b))

	payload := make([]byte, len(s.words)*8)
	for i, w := range s.words {
		binary.LittleEndian.PutUint64(payload[i*8:], w)
	}
	payload = payload[:payloadSize(s.entries, s.bitsPerEntry)]

	b = append(b, payload...)
	return binary.LittleEndian.AppendUint32(b, checksum.CRC32C(payload)), nil
}

// Read reads a sequence from r. If r is not an [io.ByteReader] it is
// buffered, and the buffer may read past the end of the sequence.
func Read(r io.Reader) (*Sequence, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		b := bufio.NewReader(r)
		br, r = b, b
	}

	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: reading sequence header: %w", errs.ErrTruncatedInput, err)
	}
	entries, raw, err := vbyte.ReadFrom(br)
	if err != nil {
		return nil, fmt.Errorf("reading sequence entry count: %w", err)
	}
	crc, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: reading sequence header crc8: %w", errs.ErrTruncatedInput, err)
	}

	if err := checksum.VerifyCRC8("sequence header", append(hdr[:], raw...), crc); err != nil {
		return nil, err
	}
	if hdr[0] != TypeLog {
		return nil, fmt.Errorf("%w: sequence type %d, want %d", errs.ErrInvalidSection, hdr[0], TypeLog)
	}
	bitsPerEntry := int(hdr[1])
	if bitsPerEntry > MaxBitsPerEntry {
		return nil, fmt.Errorf("%w: %d bits per entry", errs.ErrOutOfBounds, bitsPerEntry)
	}
	if entries > uint64(readutil.MaxInt-64) || (bitsPerEntry > 0 && entries > uint64(readutil.MaxInt-64)/uint64(bitsPerEntry)) {
		return nil, fmt.Errorf("%w: %d sequence entries", errs.ErrOutOfBounds, entries)
	}

	payload, err := readutil.ReadN(r, payloadSize(int(entries), bitsPerEntry))
	if err != nil {
		return nil, fmt.Errorf("%w: reading sequence data: %w", errs.ErrTruncatedInput, err)
	}
	var sum [4]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return nil, fmt.Errorf("%w: reading sequence data crc32c: %w", errs.ErrTruncatedInput, err)
	}
	if err := checksum.VerifyCRC32C("sequence data", payload, binary.LittleEndian.Uint32(sum[:])); err != nil {
		return nil, err
	}

	s := &Sequence{
		words:        make([]uint64, numWords(int(entries), bitsPerEntry)),
		entries:      int(entries),
		bitsPerEntry: bitsPerEntry,
	}
	// The last word is stored truncated to its used bytes.
	padded := make([]byte, len(s.words)*8)
	copy(padded, payload)
	for i := range s.words {
		s.words[i] = binary.LittleEndian.Uint64(padded[i*8:])
	}
	return s, nil
}

func numWords(entries, bitsPerEntry int) int {
	return (entries*bitsPerEntry + 63) / 64
}

func payloadSize(entries, bitsPerEntry int) int {
	return (entries*bitsPerEntry + 7) / 8
}
