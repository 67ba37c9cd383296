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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-hdt/internal/folding"
)

func locateCommand() *cli.Command {
	return &cli.Command{
		Name:      "locate",
		Usage:     "print the ids of terms",
		ArgsUsage: "PATH TERM...",
		Description: "Prints the id of each term, or 0 if the section does not contain it. " +
			"Terms are matched byte for byte unless normalized with --nfc or --fold-space.",
		Flags: append(sectionFlags(),
			&cli.BoolFlag{
				Name:               "nfc",
				Usage:              "convert terms to Unicode Normalization Form C",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "fold-space",
				Usage:              "trim terms and fold whitespace runs to a single space",
				DisableDefaultText: true,
			},
		),
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("%w: expected a section path and terms", ErrFlagParse)
			}

			s, err := openSection(c, c.Args().First())
			if err != nil {
				return err
			}

			opts := &folding.Options{
				NFC:       c.Bool("nfc"),
				FoldSpace: c.Bool("fold-space"),
			}

			var missing int
			for _, term := range c.Args().Tail() {
				normalized, err := folding.Term(term, opts)
				if err != nil {
					return fmt.Errorf("normalizing %q: %w", term, err)
				}

				id := s.StringToID(normalized)
				if id == 0 {
					missing++
				}
				if _, err := fmt.Fprintf(c.App.Writer, "%d\t%s\n", id, normalized); err != nil {
					return fmt.Errorf("printing id: %w", err)
				}
			}

			if missing > 0 {
				return fmt.Errorf("%w: %d of %d terms", ErrNotFound, missing, c.NArg()-1)
			}
			return nil
		},
	}
}
