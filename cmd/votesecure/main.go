// Copyright 2026 Blink Labs Software
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
	"io"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/blinklabs-io/votesecure/cmd/common"
)

// Set at build time
var version = "devel"

func newApp(out io.Writer, logOutput io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "votesecure"
	app.Usage = "run and inspect the VoteSecure lock script off-chain"
	app.Version = version
	app.Writer = out
	app.ErrWriter = logOutput
	app.Flags = common.GlobalFlags()
	app.Before = func(c *cli.Context) error {
		return common.Setup(c, logOutput)
	}
	app.Commands = []cli.Command{
		verifyCommand(),
		inspectCommand(),
		identityCommand(),
		fixtureCommand(),
	}
	return app
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
