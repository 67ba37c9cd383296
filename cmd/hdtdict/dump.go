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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "print all terms of a section",
		ArgsUsage: "PATH",
		Flags: append(sectionFlags(),
			&cli.IntFlag{
				Name:    "limit",
				Usage:   "print at most `N` terms",
				Aliases: []string{"n"},
			},
		),
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected a single section path", ErrFlagParse)
			}
			limit := c.Int("limit")
			if limit < 0 {
				return fmt.Errorf("%w: negative limit %d", ErrFlagParse, limit)
			}

			s, err := openSection(c, c.Args().First())
			if err != nil {
				return err
			}

			tbl := table.New("ID", "Term").WithWriter(c.App.Writer)
			for id, str := range s.All() {
				if limit > 0 && id > uint64(limit) {
					break
				}
				tbl.AddRow(id, str)
			}
			tbl.Print()
			return nil
		},
	}
}
