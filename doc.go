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

// Package hdt implements a library for reading the front coded dictionary
// sections of HDT (Header, Dictionary, Triples) RDF files in pure Go.
//
// An HDT dictionary maps RDF terms to integer ids. It is made of several
// sections, each a sorted list of strings compressed with plain front coding.
// The format of a section is described by the [pfc] package.
//
// Sections can be opened from files holding a single section or from larger
// files, such as a complete .hdt file, given the offset of the section:
//  1. Plain files are read directly.
//  2. Files ending in .gz are compressed with gzip.
//  3. Files ending in .dz are compressed using the dictzip format.
//
// More info on the HDT format can be found at this URL:
// https://www.rdfhdt.org/hdt-binary-format/
package hdt
