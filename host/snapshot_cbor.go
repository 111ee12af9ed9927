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

package host

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/votesecure/cbor"
)

const FixtureVersion = 1

var ErrNotFixture = errors.New("data is not a CBOR fixture")

var _ cbor.DecodeStoreCborInterface = (*Fixture)(nil)

// Fixture is a named snapshot with the verdict expected for it. Fixtures are
// stored and exchanged as CBOR
type Fixture struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Version  uint
	Name     string
	Expected int8
	Snapshot Snapshot
}

// Id returns the Blake2b-256 hash of the fixture encoding
func (f *Fixture) Id() ([32]byte, error) {
	data := f.Cbor()
	if data == nil {
		var err error
		data, err = f.Encode()
		if err != nil {
			return [32]byte{}, err
		}
	}
	return blake2b.Sum256(data), nil
}

func (f *Fixture) Encode() ([]byte, error) {
	type tFixture Fixture
	tmp := tFixture(*f)
	if tmp.Version == 0 {
		tmp.Version = FixtureVersion
	}
	return cbor.Encode(&tmp)
}

func (f *Fixture) UnmarshalCBOR(data []byte) error {
	type tFixture Fixture
	var tmp tFixture
	if err := cbor.DecodeExact(data, &tmp); err != nil {
		return err
	}
	if tmp.Version != FixtureVersion {
		return fmt.Errorf("unsupported fixture version %d", tmp.Version)
	}
	*f = Fixture(tmp)
	f.SetCbor(data)
	return nil
}

func DecodeFixture(data []byte) (*Fixture, error) {
	if !cbor.IsArray(data) {
		return nil, ErrNotFixture
	}
	var ret Fixture
	if err := ret.UnmarshalCBOR(data); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &ret, nil
}
