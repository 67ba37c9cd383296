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
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
	log "github.com/sirupsen/logrus"

	"github.com/ianlewis/go-hdt/errs"
	"github.com/ianlewis/go-hdt/pfc"
)

var errNegativeOffset = errors.New("negative offset")

// sectionExts are the extensions of files opened by OpenAll.
var sectionExts = []string{".pfc", ".pfc.gz", ".pfc.dz"}

// Options are options for reading sections.
type Options struct {
	// Offset is the byte offset of the section. For compressed files the
	// offset is in the decompressed data.
	Offset int64
}

// GetOffset returns the section offset.
func (o *Options) GetOffset() int64 {
	if o == nil {
		return 0
	}
	return o.Offset
}

// OpenAll opens all section files under a directory. Section files have the
// extension .pfc, optionally followed by .gz or .dz. This function will
// return all successfully opened sections keyed by path along with any errors
// that occurred.
func OpenAll(path string) (map[string]*pfc.Section, []error) {
	sections := map[string]*pfc.Section{}
	var errList []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errList = append(errList, err)
			return nil
		}
		if info.IsDir() || !isSectionFile(info.Name()) {
			return nil
		}
		s, err := Open(path, nil)
		if err != nil {
			errList = append(errList, err)
			return nil
		}
		sections[path] = s
		return nil
	}); err != nil {
		errList = append(errList, err)
		return nil, errList
	}
	return sections, errList
}

func isSectionFile(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range sectionExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Open reads the section in the file at path. Files ending in .gz are
// decompressed with gzip and files ending in .dz with dictzip.
func Open(path string, opts *Options) (*pfc.Section, error) {
	offset := opts.GetOffset()
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", errNegativeOffset, offset)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		log.Debugf("reading %q as gzip", path)
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("error opening %q: %w", path, err)
		}
		defer z.Close()
		r = z
	case ".dz":
		log.Debugf("reading %q as dictzip", path)
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("error opening %q: %w", path, err)
		}
		// dictzip supports random access so the offset is not read through.
		r = io.NewSectionReader(z, offset, math.MaxInt64-offset)
		offset = 0
	default:
		r = f
	}

	s, err := Read(r, &Options{Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return s, nil
}

// Read reads a section from r. The section starts at the offset given by
// opts relative to the current position of r.
func Read(r io.Reader, opts *Options) (*pfc.Section, error) {
	offset := opts.GetOffset()
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", errNegativeOffset, offset)
	}

	if offset > 0 {
		log.Debugf("skipping %d bytes to the section", offset)
		if sk, ok := r.(io.Seeker); ok {
			if _, err := sk.Seek(offset, io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("seeking to offset %d: %w", offset, err)
			}
		} else if n, err := io.CopyN(io.Discard, r, offset); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: offset %d past the end of the input at %d", errs.ErrTruncatedInput, offset, n)
			}
			return nil, fmt.Errorf("skipping to offset %d: %w", offset, err)
		}
	}

	s, err := pfc.Read(r)
	if err != nil {
		return nil, err
	}
	log.Debugf("read section: %d strings, %d blocks of %d, %d bytes of data",
		s.NumStrings(), s.NumBlocks(), s.BlockSize(), s.PackedLength())
	return s, nil
}
