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

// Package pfc implements reading HDT dictionary sections stored with plain
// front coding.
//
// A section maps a sorted set of UTF-8 strings to the ids 1 to N. The strings
// are grouped into blocks of a fixed number of strings. The first string of a
// block is stored whole and each following string is stored as the length of
// the prefix it shares with its predecessor, a varint, followed by the rest
// of the string. Every string is terminated by a zero byte. A packed index
// holds the byte offset of each block so that any block can be decoded
// without decoding its predecessors.
//
// A section comes in eight parts:
//  1. The section type byte (0x02).
//  2. The number of strings, a varint.
//  3. The length of the string data in bytes, a varint.
//  4. The number of strings per block, a varint.
//  5. A CRC-8/CCITT checksum of parts 1 to 4.
//  6. The block offsets, a [sequence.Sequence].
//  7. The string data.
//  8. A 4 byte little-endian CRC-32C checksum of the string data.
//
// Sections are fully validated when read. A [Section] is immutable and safe
// for concurrent use.
package pfc
