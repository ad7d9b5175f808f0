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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-jmdict/store"
)

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print database metadata.",
		ArgsUsage: "STORE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: info takes a STORE argument", ErrFlagParse)
			}

			s, err := store.Open(c.Args().First())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJMdict, err)
			}
			defer s.Close()

			meta, err := s.Meta(c.Context)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJMdict, err)
			}
			count, err := s.Count(c.Context)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJMdict, err)
			}

			tbl := table.New("Key", "Value").WithWriter(c.App.Writer)
			for _, m := range meta {
				tbl.AddRow(m.Key, m.Value)
			}
			tbl.AddRow("entries", count)
			tbl.Print()

			return nil
		},
	}
}
