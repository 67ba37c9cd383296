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

package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-hdt"
	"github.com/ianlewis/go-hdt/pfc"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print information about sections",
		ArgsUsage: "PATH...",
		Description: "Prints the string count, block layout and size of each section. " +
			"Directories are searched for .pfc, .pfc.gz and .pfc.dz files.",
		Flags:        sectionFlags(),
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("%w: no section paths", ErrFlagParse)
			}

			sections := map[string]*pfc.Section{}
			var errList []error
			for _, path := range c.Args().Slice() {
				fi, err := os.Stat(path)
				if err != nil {
					errList = append(errList, err)
					continue
				}
				if fi.IsDir() {
					found, openErrs := hdt.OpenAll(path)
					for p, s := range found {
						sections[p] = s
					}
					errList = append(errList, openErrs...)
					continue
				}
				s, err := openSection(c, path)
				if err != nil {
					errList = append(errList, err)
					continue
				}
				sections[path] = s
			}

			for _, err := range errList {
				fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err)
			}

			paths := make([]string, 0, len(sections))
			for p := range sections {
				paths = append(paths, p)
			}
			sort.Strings(paths)

			tbl := table.New("Path", "Strings", "Blocks", "Block Size", "Data", "Memory").WithWriter(c.App.Writer)
			for _, p := range paths {
				s := sections[p]
				tbl.AddRow(p, s.NumStrings(), s.NumBlocks(), s.BlockSize(), s.PackedLength(), s.SizeInBytes())
			}
			tbl.Print()

			return errors.Join(errList...)
		},
	}
}
