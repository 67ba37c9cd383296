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

package checksum

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-hdt/errs"
)

// The check values are the standard catalogue values for the input
// "123456789".
var checkInput = []byte("123456789")

func TestCRC8(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(uint8(0xf4), CRC8(checkInput)); diff != "" {
		t.Fatalf("CRC8 (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(uint8(0x00), CRC8(nil)); diff != "" {
		t.Fatalf("CRC8(nil) (-want, +got):\n%s", diff)
	}
}

func TestCRC32C(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff(uint32(0xe3069283), CRC32C(checkInput)); diff != "" {
		t.Fatalf("CRC32C (-want, +got):\n%s", diff)
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	if err := VerifyCRC8("header", checkInput, 0xf4); err != nil {
		t.Errorf("VerifyCRC8: %v", err)
	}
	if err := VerifyCRC8("header", checkInput, 0xf5); !errors.Is(err, errs.ErrChecksumMismatch) {
		t.Errorf("VerifyCRC8: expected %v, got %v", errs.ErrChecksumMismatch, err)
	}
	if err := VerifyCRC32C("data", checkInput, 0xe3069283); err != nil {
		t.Errorf("VerifyCRC32C: %v", err)
	}
	if err := VerifyCRC32C("data", checkInput, 0); !errors.Is(err, errs.ErrChecksumMismatch) {
		t.Errorf("VerifyCRC32C: expected %v, got %v", errs.ErrChecksumMismatch, err)
	}
}
