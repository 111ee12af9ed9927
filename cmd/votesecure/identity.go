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
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/blinklabs-io/votesecure/cmd/common"
	"github.com/blinklabs-io/votesecure/record"
	"github.com/blinklabs-io/votesecure/signature"
)

var testnetFlag = cli.BoolFlag{
	Name:  "testnet",
	Usage: "use the testnet address prefix",
}

func addressPrefix(c *cli.Context) string {
	if c.Bool(testnetFlag.Name) {
		return record.AddressPrefixTestnet
	}
	return record.AddressPrefixMainnet
}

func decodeHexArg(c *cli.Context, name string, size int) ([]byte, error) {
	if len(c.Args()) != 1 {
		return nil, fmt.Errorf("expected a single %s argument", name)
	}
	data, err := hex.DecodeString(strings.TrimPrefix(c.Args().First(), "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if size > 0 && len(data) != size {
		return nil, fmt.Errorf("%s must be %d bytes, have %d", name, size, len(data))
	}
	return data, nil
}

func identityCommand() cli.Command {
	return cli.Command{
		Name:  "identity",
		Usage: "derive identity hashes, addresses and code hashes",
		Subcommands: []cli.Command{
			{
				Name:      "derive",
				Usage:     "derive the identity hash and addresses of a compressed public key",
				ArgsUsage: "<pubkey-hex>",
				Action: func(c *cli.Context) error {
					pub, err := decodeHexArg(c, "public key", record.PublicKeySize)
					if err != nil {
						return err
					}
					cfg, err := common.GetConfig(c)
					if err != nil {
						return err
					}
					id := signature.IdentityHash(cfg.Provider, pub)
					fmt.Fprintf(c.App.Writer, "identity: %s\n", id)
					fmt.Fprintf(c.App.Writer, "mainnet:  %s\n", id.Address(record.AddressPrefixMainnet))
					fmt.Fprintf(c.App.Writer, "testnet:  %s\n", id.Address(record.AddressPrefixTestnet))
					return nil
				},
			},
			{
				Name:      "address",
				Usage:     "render an identity hash as a full-format address",
				ArgsUsage: "<identity-hex>",
				Flags:     []cli.Flag{testnetFlag},
				Action: func(c *cli.Context) error {
					data, err := decodeHexArg(c, "identity", record.IdentityHashSize)
					if err != nil {
						return err
					}
					id := record.NewIdentityHash(data)
					fmt.Fprintln(c.App.Writer, id.Address(addressPrefix(c)))
					return nil
				},
			},
			{
				Name:      "decode",
				Usage:     "extract the identity hash from a full-format address",
				ArgsUsage: "<address>",
				Action: func(c *cli.Context) error {
					if len(c.Args()) != 1 {
						return errors.New("expected a single address argument")
					}
					prefix, id, err := record.IdentityFromAddress(c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "prefix:   %s\n", prefix)
					fmt.Fprintf(c.App.Writer, "identity: %s\n", id)
					return nil
				},
			},
			{
				Name:      "code-hash",
				Usage:     "compute the code hash of a lock script binary",
				ArgsUsage: "<binary>",
				Action: func(c *cli.Context) error {
					if len(c.Args()) != 1 {
						return errors.New("expected a single binary path")
					}
					data, err := os.ReadFile(c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, record.Blake2b256Hash(data))
					return nil
				},
			},
		},
	}
}
