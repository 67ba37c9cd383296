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

// Package checksum implements the checksums used by HDT: CRC-8/CCITT for
// headers and CRC-32C for payloads.
package checksum

import (
	"fmt"
	"hash/crc32"

	"github.com/sigurn/crc8"

	"github.com/ianlewis/go-hdt/errs"
)

var (
	crc8Table   = crc8.MakeTable(crc8.CRC8)
	crc32cTable = crc32.MakeTable(crc32.Castagnoli)
)

// CRC8 returns the CRC-8/CCITT checksum (polynomial 0x07, zero initial value)
// of data.
func CRC8(data []byte) uint8 {
	return crc8.Checksum(data, crc8Table)
}

// CRC32C returns the CRC-32C (Castagnoli) checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// VerifyCRC8 returns an error wrapping [errs.ErrChecksumMismatch] when the
// checksum of data is not want. what names the checked field.
func VerifyCRC8(what string, data []byte, want uint8) error {
	if got := CRC8(data); got != want {
		return fmt.Errorf("%w: %s crc8: stored %#02x, computed %#02x", errs.ErrChecksumMismatch, what, want, got)
	}
	return nil
}

// VerifyCRC32C returns an error wrapping [errs.ErrChecksumMismatch] when the
// checksum of data is not want. what names the checked field.
func VerifyCRC32C(what string, data []byte, want uint32) error {
	if got := CRC32C(data); got != want {
		return fmt.Errorf("%w: %s crc32c: stored %#08x, computed %#08x", errs.ErrChecksumMismatch, what, want, got)
	}
	return nil
}
