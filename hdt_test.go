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

package hdt

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-hdt/errs"
	"github.com/ianlewis/go-hdt/internal/testutil"
)

var terms = []string{
	"http://example.org/alice",
	"http://example.org/bob",
	"http://example.org/carol",
	"http://xmlns.com/foaf/0.1/knows",
	"http://xmlns.com/foaf/0.1/name",
}

// hdtPrefix stands in for the data preceding a dictionary section in an
// .hdt file.
var hdtPrefix = []byte("$HDT\x01<http://purl.org/HDT/hdt#HDTv1>\x00")

func checkSection(t *testing.T, path string, opts *Options) {
	t.Helper()

	s, err := Open(path, opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff(uint64(len(terms)), s.NumStrings()); diff != "" {
		t.Errorf("NumStrings (-want, +got):\n%s", diff)
	}
	for i, term := range terms {
		if diff := cmp.Diff(term, s.IDToString(uint64(i+1))); diff != "" {
			t.Errorf("IDToString(%d) (-want, +got):\n%s", i+1, diff)
		}
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		compression testutil.Compression
		ext         string
		prefix      []byte
	}{
		{
			name: "plain",
		},
		{
			name:        "gzip",
			compression: testutil.Gzip,
		},
		{
			name:        "dictzip",
			compression: testutil.DictZip,
		},
		{
			name:   "plain offset",
			ext:    ".hdt",
			prefix: hdtPrefix,
		},
		{
			name:        "gzip offset",
			compression: testutil.Gzip,
			ext:         ".hdt.gz",
			prefix:      hdtPrefix,
		},
		{
			name:        "dictzip offset",
			compression: testutil.DictZip,
			ext:         ".hdt.dz",
			prefix:      hdtPrefix,
		},
		{
			name:        "upper case extension",
			compression: testutil.Gzip,
			ext:         ".PFC.GZ",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := testutil.MakeTempFile(t, testutil.MakeSection(t, terms, nil), &testutil.MakeFileOptions{
				Ext:         test.ext,
				Compression: test.compression,
				Prefix:      test.prefix,
			})
			checkSection(t, path, &Options{Offset: int64(len(test.prefix))})
		})
	}
}

func TestOpen_Error(t *testing.T) {
	t.Parallel()

	section := testutil.MakeSection(t, terms, nil)

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing.pfc"), nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("Open: expected %v, got %v", os.ErrNotExist, err)
		}
	})

	t.Run("negative offset", func(t *testing.T) {
		t.Parallel()

		path := testutil.MakeTempFile(t, section, nil)
		_, err := Open(path, &Options{Offset: -1})
		if !errors.Is(err, errNegativeOffset) {
			t.Fatalf("Open: expected %v, got %v", errNegativeOffset, err)
		}
	})

	for _, c := range []testutil.Compression{testutil.None, testutil.Gzip} {
		t.Run("offset past end", func(t *testing.T) {
			t.Parallel()

			path := testutil.MakeTempFile(t, section, &testutil.MakeFileOptions{Compression: c})
			_, err := Open(path, &Options{Offset: int64(len(section) + 1)})
			if !errors.Is(err, errs.ErrTruncatedInput) {
				t.Fatalf("Open: expected %v, got %v", errs.ErrTruncatedInput, err)
			}
		})
	}

	t.Run("wrong offset", func(t *testing.T) {
		t.Parallel()

		path := testutil.MakeTempFile(t, section, &testutil.MakeFileOptions{Prefix: hdtPrefix})
		_, err := Open(path, nil)
		if !errors.Is(err, errs.ErrHDT) {
			t.Fatalf("Open: expected %v, got %v", errs.ErrHDT, err)
		}
	})

	t.Run("not gzip", func(t *testing.T) {
		t.Parallel()

		path := testutil.MakeTempFile(t, section, &testutil.MakeFileOptions{Ext: ".pfc.gz"})
		if _, err := Open(path, nil); err == nil {
			t.Fatalf("Open: expected error")
		}
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	b := append(bytes.Clone(hdtPrefix), testutil.MakeSection(t, terms, nil)...)
	opts := &Options{Offset: int64(len(hdtPrefix))}

	tests := map[string]io.Reader{
		"seeker":     bytes.NewReader(b),
		"not seeker": struct{ io.Reader }{bytes.NewReader(b)},
	}
	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := Read(r, opts)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if diff := cmp.Diff(uint64(3), s.StringToID("http://example.org/carol")); diff != "" {
				t.Errorf("StringToID (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestOpenAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	section := testutil.MakeSection(t, terms, nil)

	var expected []string
	for _, c := range []testutil.Compression{testutil.None, testutil.Gzip, testutil.DictZip} {
		expected = append(expected, testutil.MakeTempFile(t, section, &testutil.MakeFileOptions{
			Dir:         dir,
			Compression: c,
		}))
	}

	sub := filepath.Join(dir, "objects")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatal(err)
	}
	expected = append(expected, testutil.MakeTempFile(t, section, &testutil.MakeFileOptions{Dir: sub}))

	// Not a section file.
	testutil.MakeTempFile(t, section, &testutil.MakeFileOptions{Dir: dir, Ext: ".txt"})
	// Corrupt section.
	testutil.MakeTempFile(t, section[:len(section)-1], &testutil.MakeFileOptions{Dir: dir, Name: "corrupt"})

	sections, errList := OpenAll(dir)
	if len(errList) != 1 || !errors.Is(errList[0], errs.ErrTruncatedInput) {
		t.Errorf("OpenAll: expected a single %v, got %v", errs.ErrTruncatedInput, errList)
	}

	var paths []string
	for path, s := range sections {
		paths = append(paths, path)
		if diff := cmp.Diff(terms[0], s.IDToString(1)); diff != "" {
			t.Errorf("%s: IDToString(1) (-want, +got):\n%s", path, diff)
		}
	}
	if diff := cmp.Diff(expected, paths, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("OpenAll paths (-want, +got):\n%s", diff)
	}
}
