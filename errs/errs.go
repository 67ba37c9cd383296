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

// Package errs defines the errors returned when reading HDT dictionary data.
//
// Every error wraps ErrHDT. Callers should test for a specific kind with
// [errors.Is]; the returned errors carry additional context such as the
// field or checksum that failed.
package errs

import (
	"errors"
	"fmt"
)

// ErrHDT is the parent error for all errors in this module.
var ErrHDT = errors.New("hdt")

var (
	// ErrTruncatedInput indicates that the input ended before a fixed-size or
	// length-prefixed field was fully read.
	ErrTruncatedInput = fmt.Errorf("%w: truncated input", ErrHDT)

	// ErrMalformedVarint indicates a varint without a terminating byte or one
	// that overflows 64 bits.
	ErrMalformedVarint = fmt.Errorf("%w: malformed varint", ErrHDT)

	// ErrChecksumMismatch indicates that a stored checksum does not match the
	// checksum of the data it covers.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrHDT)

	// ErrInvalidEncoding indicates a decoded string that is not valid UTF-8.
	ErrInvalidEncoding = fmt.Errorf("%w: invalid encoding", ErrHDT)

	// ErrOutOfBounds indicates an offset, index or value outside of its valid
	// range.
	ErrOutOfBounds = fmt.Errorf("%w: out of bounds", ErrHDT)

	// ErrInvalidSection indicates data that is well-formed at the byte level
	// but structurally inconsistent, e.g. an unknown type byte or a block
	// index that does not agree with the section header.
	ErrInvalidSection = fmt.Errorf("%w: invalid section", ErrHDT)
)
