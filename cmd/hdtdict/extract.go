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
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:         "extract",
		Usage:        "print the terms with the given ids",
		ArgsUsage:    "PATH ID...",
		Description:  "Prints the term with each id. Ids start at 1.",
		Flags:        sectionFlags(),
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("%w: expected a section path and ids", ErrFlagParse)
			}

			var ids []uint64
			for _, arg := range c.Args().Tail() {
				id, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("%w: invalid id %q: %w", ErrFlagParse, arg, err)
				}
				ids = append(ids, id)
			}

			s, err := openSection(c, c.Args().First())
			if err != nil {
				return err
			}

			var missing []uint64
			for _, id := range ids {
				str, ok := s.Extract(id)
				if !ok {
					missing = append(missing, id)
					continue
				}
				if _, err := fmt.Fprintf(c.App.Writer, "%d\t%s\n", id, str); err != nil {
					return fmt.Errorf("printing term: %w", err)
				}
			}

			if len(missing) > 0 {
				return fmt.Errorf("%w: ids %v, section has %d terms", ErrNotFound, missing, s.NumStrings())
			}
			return nil
		},
	}
}
