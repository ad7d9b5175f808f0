// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-jmdict"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError
)

// ErrJMdict is a parent error for all command errors.
var ErrJMdict = errors.New("jmdict2sqlite")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrJMdict)

var copyrightNames = []string{
	"2021 Google LLC",
	"2024 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but the root command takes file arguments.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	versionInfo.Name = c.App.Name
	_, err := fmt.Fprintln(c.App.Writer, versionInfo.String())
	return err
}

func newJMdictApp() *cli.App {
	return &cli.App{
		Name:      filepath.Base(os.Args[0]),
		Usage:     "Convert a JMdict dictionary into an SQLite database.",
		ArgsUsage: "INPUT OUTPUT",
		Description: strings.Join([]string{
			"Reads the JMdict XML document INPUT and writes a new SQLite database",
			"to OUTPUT. INPUT may be compressed with gzip (.gz) or dictzip (.dz).",
			"OUTPUT must not exist.",
			"http://github.com/ianlewis/go-jmdict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "license",
				Usage: "license `TEXT` stored in the database metadata",
			},
			&cli.StringSliceFlag{
				Name:    "lang",
				Usage:   "only include glosses in `LANG` (repeatable)",
				Aliases: []string{"l"},
			},
			&cli.BoolFlag{
				Name:               "escape-html",
				Usage:              "HTML escape text in entry details",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log `LEVEL` (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log `FORMAT` (text, json)",
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
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				check(cli.ShowAppHelp(c))
				return nil
			}

			if c.Bool("version") {
				return printVersion(c)
			}

			if c.NArg() != 2 {
				check(cli.ShowAppHelp(c))
				return nil
			}

			return convert(c)
		},
		Commands: []*cli.Command{
			newQueryCommand(),
			newInfoCommand(),
		},
	}
}

// convert runs the conversion for the root command.
func convert(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger := newLogger(c.App.ErrWriter, cfg.LogLevel, cfg.LogFormat)

	input := c.Args().Get(0)
	output := c.Args().Get(1)

	w := c.App.Writer
	fmt.Fprintf(w, "Input:  %s\n", input)
	fmt.Fprintf(w, "Output: %s\n", output)

	res, err := jmdict.Convert(c.Context, input, output, &jmdict.Options{
		License:        cfg.License,
		GlossLanguages: cfg.GlossLanguages,
		EscapeHTML:     cfg.EscapeHTML,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrJMdict, err)
	}

	tbl := table.New("Entries", "Count").WithWriter(w)
	tbl.AddRow("Read", res.Entries)
	tbl.AddRow("Converted", res.Converted)
	tbl.AddRow("Not converted", res.NotConverted)
	tbl.Print()

	return nil
}
