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

package cbor_test

import (
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/blinklabs-io/votesecure/cbor"
)

type decodeTestDefinition struct {
	CborHex   string
	Object    any
	BytesRead int
}

var decodeTests = []decodeTestDefinition{
	// Simple list of numbers
	{
		CborHex: "83010203",
		Object:  []any{uint64(1), uint64(2), uint64(3)},
	},
	// Multiple CBOR objects
	{
		CborHex:   "81018102",
		Object:    []any{uint64(1)},
		BytesRead: 2,
	},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeTests {
		cborData, err := hex.DecodeString(test.CborHex)
		if err != nil {
			t.Fatalf("failed to decode CBOR hex: %s", err)
		}
		var dest any
		bytesRead, err := cbor.Decode(cborData, &dest)
		if err != nil {
			t.Fatalf("failed to decode CBOR: %s", err)
		}
		if test.BytesRead > 0 {
			if bytesRead != test.BytesRead {
				t.Fatalf("expected to read %d bytes, read %d instead", test.BytesRead, bytesRead)
			}
		}
		if !reflect.DeepEqual(dest, test.Object) {
			t.Fatalf("CBOR did not decode to expected object\n  got: %#v\n  wanted: %#v", dest, test.Object)
		}
	}
}

func TestDecodeExactTrailingData(t *testing.T) {
	cborData, _ := hex.DecodeString("81018102")
	var dest []uint64
	if err := cbor.DecodeExact(cborData, &dest); err == nil {
		t.Fatal("expected error for trailing data")
	}
	if err := cbor.DecodeExact(cborData[:2], &dest); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(dest) != 1 || dest[0] != 1 {
		t.Fatalf("unexpected decode result: %v", dest)
	}
}

func TestDecodeStructAsArray(t *testing.T) {
	cborData, _ := hex.DecodeString("82074201ff")
	var dest testArrayStruct
	if _, err := cbor.Decode(cborData, &dest); err != nil {
		t.Fatalf("failed to decode CBOR: %s", err)
	}
	if dest.A != 7 || hex.EncodeToString(dest.B) != "01ff" {
		t.Fatalf("unexpected decode result: %#v", dest)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	type small struct {
		A uint64 `cbor:"a"`
	}
	// {"a": 1, "z": 2}
	cborData, _ := hex.DecodeString("a2616101617a02")
	var dest small
	if _, err := cbor.Decode(cborData, &dest); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecodeStoreCbor(t *testing.T) {
	var d cbor.DecodeStoreCbor
	orig := []byte{0x83, 0x01, 0x02, 0x03}
	d.SetCbor(orig)
	orig[0] = 0x00
	if d.Cbor()[0] != 0x83 {
		t.Fatal("stored CBOR aliases the caller's buffer")
	}
	d.SetCbor(nil)
	if d.Cbor() != nil {
		t.Fatal("expected stored CBOR to be cleared")
	}
}
