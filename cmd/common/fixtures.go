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

package common

import (
	"fmt"
	"os"

	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/internal/fixturestore"
)

// ReadFixtureFile loads a CBOR fixture file
func ReadFixtureFile(path string) (*host.Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := host.DecodeFixture(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFixtureFile stores a fixture in its CBOR form
func WriteFixtureFile(path string, f *host.Fixture) error {
	data := f.Cbor()
	if data == nil {
		var err error
		data, err = f.Encode()
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}

// OpenStore opens the fixture database named by the global flags
func (cfg *Config) OpenStore() (*fixturestore.Store, error) {
	return fixturestore.Open(
		cfg.DatabasePath,
		fixturestore.WithLogger(cfg.Logger),
	)
}
