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

// Package folding normalizes terms typed by users before they are looked up
// in a dictionary section. Sections compare strings byte by byte so a term
// only matches when it is encoded exactly as it was stored.
package folding

import (
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options select the normalizations applied by Term.
type Options struct {
	// FoldSpace trims leading and trailing whitespace and replaces internal
	// whitespace runs with a single ASCII space.
	FoldSpace bool

	// NFC converts the term to Unicode Normalization Form C.
	NFC bool
}

// Transformer returns a transformer applying the normalizations in opts.
func Transformer(opts *Options) transform.Transformer {
	var ts []transform.Transformer
	if opts != nil && opts.FoldSpace {
		ts = append(ts, &SpaceFolder{})
	}
	if opts != nil && opts.NFC {
		ts = append(ts, norm.NFC)
	}
	if len(ts) == 0 {
		return transform.Nop
	}
	return transform.Chain(ts...)
}

// Term returns term with the normalizations in opts applied.
func Term(term string, opts *Options) (string, error) {
	s, _, err := transform.String(Transformer(opts), term)
	return s, err
}
