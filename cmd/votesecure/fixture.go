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

	cli "gopkg.in/urfave/cli.v1"

	"github.com/blinklabs-io/votesecure/cmd/common"
	"github.com/blinklabs-io/votesecure/internal/fixturestore"
	"github.com/blinklabs-io/votesecure/lockscript"
)

// withStore opens the fixture database for the duration of fn
func withStore(
	c *cli.Context,
	fn func(*common.Config, *fixturestore.Store) error,
) error {
	cfg, err := common.GetConfig(c)
	if err != nil {
		return err
	}
	store, err := cfg.OpenStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func fixtureCommand() cli.Command {
	return cli.Command{
		Name:  "fixture",
		Usage: "manage transaction fixtures in the fixture database",
		Subcommands: []cli.Command{
			{
				Name:      "import",
				Usage:     "store fixture files",
				ArgsUsage: "<fixture-file> [<fixture-file>...]",
				Action: func(c *cli.Context) error {
					if len(c.Args()) == 0 {
						return errors.New("at least one fixture file is required")
					}
					return withStore(c, func(_ *common.Config, store *fixturestore.Store) error {
						for _, path := range c.Args() {
							f, err := common.ReadFixtureFile(path)
							if err != nil {
								return err
							}
							id, err := store.Put(f)
							if err != nil {
								return err
							}
							fmt.Fprintf(c.App.Writer, "%x\t%s\n", id, f.Name)
						}
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "list stored fixtures",
				Action: func(c *cli.Context) error {
					return withStore(c, func(_ *common.Config, store *fixturestore.Store) error {
						entries, err := store.List()
						if err != nil {
							return err
						}
						for _, e := range entries {
							fmt.Fprintf(
								c.App.Writer,
								"%x\t%s\texpected=%d (%s)\n",
								e.Id,
								e.Name,
								e.Expected,
								lockscript.ErrorCode(e.Expected),
							)
						}
						return nil
					})
				},
			},
			{
				Name:      "verify",
				Usage:     "run the lock script against stored fixtures, all of them by default",
				ArgsUsage: "[<name>...]",
				Action: func(c *cli.Context) error {
					return withStore(c, func(cfg *common.Config, store *fixturestore.Store) error {
						names := []string(c.Args())
						if len(names) == 0 {
							entries, err := store.List()
							if err != nil {
								return err
							}
							for _, e := range entries {
								names = append(names, e.Name)
							}
						}
						engine := cfg.NewEngine()
						failed := 0
						for _, name := range names {
							f, ok, err := store.GetByName(name)
							if err != nil {
								return err
							}
							if !ok {
								return fmt.Errorf("fixture %q not found", name)
							}
							if !reportVerdict(c.App.Writer, engine, f) {
								failed++
							}
						}
						if failed > 0 {
							return fmt.Errorf("%d fixture(s): %w", failed, errMismatch)
						}
						return nil
					})
				},
			},
			{
				Name:      "export",
				Usage:     "write a stored fixture to a file",
				ArgsUsage: "<name> <fixture-file>",
				Action: func(c *cli.Context) error {
					if len(c.Args()) != 2 {
						return errors.New("expected <name> <fixture-file>")
					}
					return withStore(c, func(_ *common.Config, store *fixturestore.Store) error {
						f, ok, err := store.GetByName(c.Args().Get(0))
						if err != nil {
							return err
						}
						if !ok {
							return fmt.Errorf("fixture %q not found", c.Args().Get(0))
						}
						return common.WriteFixtureFile(c.Args().Get(1), f)
					})
				},
			},
			{
				Name:      "delete",
				Usage:     "remove a stored fixture",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if len(c.Args()) != 1 {
						return errors.New("expected a single fixture name")
					}
					return withStore(c, func(_ *common.Config, store *fixturestore.Store) error {
						return store.Delete(c.Args().First())
					})
				},
			},
		},
	}
}
