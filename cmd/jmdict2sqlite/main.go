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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// run runs the app and returns the process exit code. An interrupted run
// prints "Aborted" and is not treated as a failure.
func run(ctx context.Context, app *cli.App, args []string) int {
	err := app.RunContext(ctx, args)
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(app.Writer, "Aborted")
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		fmt.Fprintf(app.ErrWriter, "%s: %v\n", app.Name, err)
		return ExitCodeFlagParseError
	default:
		fmt.Fprintf(app.ErrWriter, "%s: %v\n", app.Name, err)
		return ExitCodeUnknownError
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newJMdictApp()
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	code := run(ctx, app, os.Args)
	stop()
	os.Exit(code)
}
