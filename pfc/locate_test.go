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
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-hdt/internal/testutil"
)

var terms = []string{
	"",
	"\"1999\"^^<http://www.w3.org/2001/XMLSchema#gYear>",
	"\"Café\"@fr",
	"\"Cafê\"@fr",
	"_:b0",
	"_:b1",
	"_:b10",
	"http://dbpedia.org/resource/Berlin",
	"http://dbpedia.org/resource/Bern",
	"http://dbpedia.org/resource/Bonn",
	"http://example.org/",
	"http://example.org/a",
	"http://example.org/ab",
	"http://example.org/abc",
	"http://example.org/b",
	"http://xmlns.com/foaf/0.1/knows",
	"http://xmlns.com/foaf/0.1/name",
	"日本",
	"日本語",
	"日本酒",
}

func TestSection_Fruits(t *testing.T) {
	t.Parallel()

	for _, blockSize := range []int{1, 2, 3, 4, 8} {
		t.Run(fmt.Sprintf("block size %d", blockSize), func(t *testing.T) {
			t.Parallel()

			s := mustRead(t, fruits, &testutil.MakeSectionOptions{BlockSize: blockSize})

			ids := map[string]uint64{
				"apple":   1,
				"applet":  2,
				"apply":   3,
				"banana":  4,
				"app":     0,
				"":        0,
				"aardvar": 0,
				"applets": 0,
				"applex":  0,
				"applz":   0,
				"bananas": 0,
				"cherry":  0,
			}
			for str, id := range ids {
				if diff := cmp.Diff(id, s.StringToID(str)); diff != "" {
					t.Errorf("StringToID(%q) (-want, +got):\n%s", str, diff)
				}
			}

			strs := map[uint64]string{
				0: "",
				1: "apple",
				2: "applet",
				3: "apply",
				4: "banana",
				5: "",
			}
			for id, str := range strs {
				if diff := cmp.Diff(str, s.IDToString(id)); diff != "" {
					t.Errorf("IDToString(%d) (-want, +got):\n%s", id, diff)
				}
			}
		})
	}
}

func TestSection_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, blockSize := range []int{1, 2, 3, 5, 8, 16, 32} {
		for _, terminal := range []bool{false, true} {
			t.Run(fmt.Sprintf("block size %d terminal %v", blockSize, terminal), func(t *testing.T) {
				t.Parallel()

				s := mustRead(t, terms, &testutil.MakeSectionOptions{
					BlockSize:      blockSize,
					TerminalOffset: terminal,
				})

				for i, str := range terms {
					id := uint64(i + 1)
					if diff := cmp.Diff(str, s.IDToString(id)); diff != "" {
						t.Errorf("IDToString(%d) (-want, +got):\n%s", id, diff)
					}
					if diff := cmp.Diff(id, s.StringToID(str)); diff != "" {
						t.Errorf("StringToID(%q) (-want, +got):\n%s", str, diff)
					}
					got, ok := s.Extract(id)
					if !ok || got != str {
						t.Errorf("Extract(%d): expected %q true, got %q %v", id, str, got, ok)
					}

					// Strings next to a term in sort order.
					for _, near := range []string{str + "\x00", str + "!", str + "\U0010ffff"} {
						if slices.Contains(terms, near) {
							continue
						}
						if id := s.StringToID(near); id != 0 {
							t.Errorf("StringToID(%q): expected 0, got %d", near, id)
						}
					}
					if len(str) > 0 {
						short := str[:len(str)-1]
						if !slices.Contains(terms, short) {
							if id := s.StringToID(short); id != 0 {
								t.Errorf("StringToID(%q): expected 0, got %d", short, id)
							}
						}
					}
				}

				if _, ok := s.Extract(0); ok {
					t.Errorf("Extract(0): expected false")
				}
				if _, ok := s.Extract(uint64(len(terms) + 1)); ok {
					t.Errorf("Extract(%d): expected false", len(terms)+1)
				}
			})
		}
	}
}

func TestSection_Order(t *testing.T) {
	t.Parallel()

	s := mustRead(t, terms, &testutil.MakeSectionOptions{BlockSize: 4})

	var prev string
	for id, str := range s.All() {
		if id > 1 && str <= prev {
			t.Errorf("IDToString(%d) = %q does not sort after %q", id, str, prev)
		}
		prev = str
	}
}

func TestSection_All(t *testing.T) {
	t.Parallel()

	s := mustRead(t, terms, &testutil.MakeSectionOptions{BlockSize: 3})

	var ids []uint64
	for id := range s.All() {
		ids = append(ids, id)
		if id == 7 {
			break
		}
	}
	if diff := cmp.Diff([]uint64{1, 2, 3, 4, 5, 6, 7}, ids); diff != "" {
		t.Errorf("All (-want, +got):\n%s", diff)
	}
}

func TestSection_BlockBoundary(t *testing.T) {
	t.Parallel()

	var strs []string
	for i := range 23 {
		strs = append(strs, fmt.Sprintf("http://example.org/item/%02d", i))
	}
	s := mustRead(t, strs, &testutil.MakeSectionOptions{BlockSize: 8})

	if diff := cmp.Diff(3, s.NumBlocks()); diff != "" {
		t.Errorf("NumBlocks (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(7, s.blockLen(2)); diff != "" {
		t.Errorf("blockLen(2) (-want, +got):\n%s", diff)
	}
	for _, id := range []uint64{8, 9, 16, 17, 23} {
		if diff := cmp.Diff(strs[id-1], s.IDToString(id)); diff != "" {
			t.Errorf("IDToString(%d) (-want, +got):\n%s", id, diff)
		}
		if diff := cmp.Diff(id, s.StringToID(strs[id-1])); diff != "" {
			t.Errorf("StringToID(%q) (-want, +got):\n%s", strs[id-1], diff)
		}
	}
	if diff := cmp.Diff("", s.IDToString(24)); diff != "" {
		t.Errorf("IDToString(24) (-want, +got):\n%s", diff)
	}
}

func TestSection_Empty(t *testing.T) {
	t.Parallel()

	s := mustRead(t, nil, nil)

	if diff := cmp.Diff(uint64(0), s.StringToID("a")); diff != "" {
		t.Errorf("StringToID (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("", s.IDToString(1)); diff != "" {
		t.Errorf("IDToString (-want, +got):\n%s", diff)
	}
}

func TestLocateBlock(t *testing.T) {
	t.Parallel()

	// Blocks start with "apple" and "apply".
	s := mustRead(t, fruits, &testutil.MakeSectionOptions{BlockSize: 2})

	tests := []struct {
		needle string

		block int
		exact bool
	}{
		{"a", noBlock, false},
		{"apple", 0, true},
		{"applet", 0, false},
		{"applf", 0, false},
		{"apply", 1, true},
		{"banana", 1, false},
		{"zebra", 1, false},
	}

	for _, test := range tests {
		block, exact := s.locateBlock([]byte(test.needle))
		if block != test.block || exact != test.exact {
			t.Errorf("locateBlock(%q): expected %d %v, got %d %v", test.needle, test.block, test.exact, block, exact)
		}
	}
}

func TestSection_Concurrent(t *testing.T) {
	t.Parallel()

	s := mustRead(t, terms, &testutil.MakeSectionOptions{BlockSize: 4})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				for i, str := range terms {
					id := uint64(i + 1)
					if got := s.IDToString(id); got != str {
						t.Errorf("IDToString(%d): expected %q, got %q", id, str, got)
					}
					if got := s.StringToID(str); got != id {
						t.Errorf("StringToID(%q): expected %d, got %d", str, id, got)
					}
				}
			}
		}()
	}
	wg.Wait()
}
