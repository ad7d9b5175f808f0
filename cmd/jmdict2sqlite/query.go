// Copyright 2021 Google LLC
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
	"fmt"
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-jmdict/internal/folding"
	"github.com/ianlewis/go-jmdict/store"
)

func newQueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Look up a word in a database.",
		ArgsUsage: "STORE WORD",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "html",
				Usage:              "print entry details as HTML",
				DisableDefaultText: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("%w: query takes STORE and WORD arguments", ErrFlagParse)
			}

			s, err := store.Open(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJMdict, err)
			}
			defer s.Close()

			word := folding.Query(c.Args().Get(1))
			rows, err := s.Lookup(c.Context, word)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJMdict, err)
			}

			w := c.App.Writer
			if len(rows) == 0 {
				fmt.Fprintf(w, "%s: no entries found\n", word)
				return nil
			}

			for _, row := range rows {
				fmt.Fprintln(w, row.Words)
				if row.Freq != "" {
					fmt.Fprintf(w, "[%s]\n", row.Freq)
				}

				details := row.Details
				if !c.Bool("html") {
					details = html2text.HTML2Text(details)
				}
				fmt.Fprintln(w, strings.TrimSpace(details))
				fmt.Fprintln(w)
			}

			return nil
		},
	}
}
