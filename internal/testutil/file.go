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

package testutil

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// Compression selects how MakeTempFile writes its file.
type Compression int

const (
	// None writes the data as is.
	None Compression = iota

	// Gzip compresses the data with gzip.
	Gzip

	// DictZip compresses the data with dictzip.
	DictZip
)

type MakeFileOptions struct {
	// Ext is an optional file extension. Defaults to '.pfc.gz' for Gzip,
	// '.pfc.dz' for DictZip and '.pfc' otherwise.
	Ext string

	// Compression is the compression of the file.
	Compression Compression

	// Prefix is written before the data, e.g. to place a section inside a
	// larger file.
	Prefix []byte

	// Dir is the directory of the file. Defaults to a new temporary
	// directory.
	Dir string

	// Name is the file name without extension. Defaults to 'section'.
	Name string
}

func (o *MakeFileOptions) GetExt() string {
	if o != nil {
		if o.Ext != "" {
			return o.Ext
		}
		switch o.Compression {
		case Gzip:
			return ".pfc.gz"
		case DictZip:
			return ".pfc.dz"
		}
	}
	return ".pfc"
}

// MakeTempFile writes data to a file, by default in a temporary directory
// that is removed when the test completes. It returns the path of the file.
func MakeTempFile(t *testing.T, data []byte, opts *MakeFileOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeFileOptions{}
	}

	dir := opts.Dir
	if dir == "" {
		dir = t.TempDir()
	}
	name := opts.Name
	if name == "" {
		name = "section"
	}

	path := filepath.Join(dir, name+opts.GetExt())
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var w io.WriteCloser
	switch opts.Compression {
	case Gzip:
		w = gzip.NewWriter(f)
	case DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		w = z
	default:
		w = nopCloser{f}
	}

	if _, err := w.Write(opts.Prefix); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
