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
	"errors"
	"fmt"
	"io"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/blinklabs-io/votesecure/cmd/common"
	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/lockscript"
)

var errMismatch = errors.New("verdict does not match the expected status")

func verifyCommand() cli.Command {
	return cli.Command{
		Name:      "verify",
		Usage:     "run the lock script against fixture files",
		ArgsUsage: "<fixture-file> [<fixture-file>...]",
		Action: func(c *cli.Context) error {
			if len(c.Args()) == 0 {
				return errors.New("at least one fixture file is required")
			}
			cfg, err := common.GetConfig(c)
			if err != nil {
				return err
			}
			engine := cfg.NewEngine()
			failed := 0
			for _, path := range c.Args() {
				f, err := common.ReadFixtureFile(path)
				if err != nil {
					return err
				}
				if !reportVerdict(c.App.Writer, engine, f) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d fixture(s): %w", failed, errMismatch)
			}
			return nil
		},
	}
}

// reportVerdict runs one fixture and prints the outcome. It reports whether
// the verdict matched the expected status
func reportVerdict(w io.Writer, engine *lockscript.Engine, f *host.Fixture) bool {
	err := engine.Verify(&f.Snapshot)
	code := lockscript.StatusCode(err)
	match := code == f.Expected
	status := "ok"
	if !match {
		status = "MISMATCH"
	}
	fmt.Fprintf(
		w,
		"%s\t%s\tcode=%d (%s)\texpected=%d (%s)\n",
		status,
		f.Name,
		code,
		lockscript.ErrorCode(code),
		f.Expected,
		lockscript.ErrorCode(f.Expected),
	)
	if err != nil {
		fmt.Fprintf(w, "\t%s\n", err)
	}
	return match
}
