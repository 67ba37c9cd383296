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
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-hdt"
	"github.com/ianlewis/go-hdt/pfc"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeNotFound is the exit code when a term or id is not in the
	// section.
	ExitCodeNotFound

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrHdtdict is a parent error for all command errors.
var ErrHdtdict = errors.New("hdtdict")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrHdtdict)

// ErrNotFound indicates a term or id is not in the section.
var ErrNotFound = fmt.Errorf("%w: not found", ErrHdtdict)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// sectionFlags returns the flags of commands that read a section.
func sectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:    "offset",
			Usage:   "read the section starting at byte `N` of the (decompressed) file",
			Aliases: []string{"o"},
		},
	}
}

// openSection opens the section file at path using the command's flags.
func openSection(c *cli.Context, path string) (*pfc.Section, error) {
	return hdt.Open(path, &hdt.Options{
		Offset: c.Int64("offset"),
	})
}

func usageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrNotFound):
		return ExitCodeNotFound
	default:
		return ExitCodeUnknownError
	}
}

func newHdtdictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Read HDT dictionary sections.",
		Description: strings.Join([]string{
			"HDT front coded dictionary section utility written in Go.",
			"http://github.com/ianlewis/go-hdt",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "print debug logs",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			infoCommand(),
			locateCommand(),
			extractCommand(),
			dumpCommand(),
		},
	}
}
