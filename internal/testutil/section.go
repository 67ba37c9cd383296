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

// Package testutil builds dictionary sections and section files for tests.
package testutil

import (
	"encoding/binary"
	"slices"
	"testing"

	"github.com/ianlewis/go-hdt/internal/checksum"
	"github.com/ianlewis/go-hdt/sequence"
	"github.com/ianlewis/go-hdt/vbyte"
)

// SectionType is the plain front coding section type byte.
const SectionType = 0x02

type MakeSectionOptions struct {
	// BlockSize is the number of strings per block. Defaults to 8.
	BlockSize int

	// TerminalOffset appends the packed length to the block offsets, as the
	// HDT reference tools do.
	TerminalOffset bool
}

func (o *MakeSectionOptions) GetBlockSize() int {
	if o == nil || o.BlockSize == 0 {
		return 8
	}
	return o.BlockSize
}

func (o *MakeSectionOptions) GetTerminalOffset() bool {
	return o != nil && o.TerminalOffset
}

// RawSection holds the fields of an encoded section. It is used to build
// sections that are structurally invalid but carry valid checksums.
type RawSection struct {
	// Type is the section type byte.
	Type byte

	NumStrings uint64

	// PackedLength is the packed length written to the header.
	PackedLength uint64

	BlockSize uint64

	// Offsets are the block offsets.
	Offsets []uint64

	// Data is the string data.
	Data []byte
}

// EncodeRaw builds front coded string data and block offsets for strs
// without encoding a section.
func EncodeRaw(t *testing.T, strs []string, opts *MakeSectionOptions) *RawSection {
	t.Helper()

	if !slices.IsSorted(strs) {
		t.Fatalf("strings are not sorted: %q", strs)
	}

	blockSize := opts.GetBlockSize()
	raw := &RawSection{
		Type:       SectionType,
		NumStrings: uint64(len(strs)),
		BlockSize:  uint64(blockSize),
	}
	for i, s := range strs {
		if i%blockSize == 0 {
			raw.Offsets = append(raw.Offsets, uint64(len(raw.Data)))
			raw.Data = append(raw.Data, s...)
		} else {
			shared := sharedPrefix(strs[i-1], s)
			raw.Data = vbyte.Append(raw.Data, uint64(shared))
			raw.Data = append(raw.Data, s[shared:]...)
		}
		raw.Data = append(raw.Data, 0)
	}
	if opts.GetTerminalOffset() {
		raw.Offsets = append(raw.Offsets, uint64(len(raw.Data)))
	}
	raw.PackedLength = uint64(len(raw.Data))

	return raw
}

// Bytes encodes the section with valid checksums.
func (r *RawSection) Bytes(t *testing.T) []byte {
	t.Helper()

	b := []byte{r.Type}
	b = vbyte.Append(b, r.NumStrings)
	b = vbyte.Append(b, r.PackedLength)
	b = vbyte.Append(b, r.BlockSize)
	b = append(b, checksum.CRC8(b))

	var maxOffset uint64
	for _, o := range r.Offsets {
		maxOffset = max(maxOffset, o)
	}
	index, err := sequence.New(r.Offsets, sequence.BitsFor(maxOffset))
	if err != nil {
		t.Fatal(err)
	}
	ib, err := index.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	b = append(b, ib...)

	b = append(b, r.Data...)
	return binary.LittleEndian.AppendUint32(b, checksum.CRC32C(r.Data))
}

// MakeSection encodes the sorted strings strs as a section.
func MakeSection(t *testing.T, strs []string, opts *MakeSectionOptions) []byte {
	t.Helper()
	return EncodeRaw(t, strs, opts).Bytes(t)
}

func sharedPrefix(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
