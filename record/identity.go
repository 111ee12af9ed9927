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

package record

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	AddressPrefixMainnet = "ckb"
	AddressPrefixTestnet = "ckt"

	// Full address format tag
	addressFormatFull = 0x00
	// Script hash type "type"
	addressHashTypeType = 0x01
)

// Code hash of the default secp256k1/blake160 lock, whose args are the
// 20-byte identity hash
var secp256k1Blake160CodeHash = [32]byte{
	0x9b, 0xd7, 0xe0, 0x6f, 0x3e, 0xcf, 0x4b, 0xe0,
	0xf2, 0xfc, 0xd2, 0x18, 0x8b, 0x23, 0xf1, 0xb9,
	0xfc, 0xc8, 0x8e, 0x5d, 0x4b, 0x65, 0xa8, 0x63,
	0x7b, 0x17, 0x72, 0x3b, 0xbd, 0xa3, 0xcc, 0xe8,
}

var ErrNotBech32m = errors.New("address checksum is not bech32m")

// IdentityHash is the first 20 bytes of the hash of a compressed public key
type IdentityHash [IdentityHashSize]byte

func NewIdentityHash(data []byte) IdentityHash {
	i := IdentityHash{}
	copy(i[:], data)
	return i
}

func (i IdentityHash) String() string {
	return hex.EncodeToString(i[:])
}

func (i IdentityHash) Bytes() []byte {
	return i[:]
}

func (i IdentityHash) IsZero() bool {
	return i == IdentityHash{}
}

func (i IdentityHash) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// Address renders the identity as a full-format bech32m address of the
// default secp256k1/blake160 lock with the given prefix
func (i IdentityHash) Address(prefix string) string {
	payload := make([]byte, 0, 1+len(secp256k1Blake160CodeHash)+1+IdentityHashSize)
	payload = append(payload, addressFormatFull)
	payload = append(payload, secp256k1Blake160CodeHash[:]...)
	payload = append(payload, addressHashTypeType)
	payload = append(payload, i[:]...)
	convData, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.EncodeM(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32m: %s", err))
	}
	return encoded
}

// IdentityFromAddress extracts the identity hash from a full-format address
// produced by Address
func IdentityFromAddress(addr string) (string, IdentityHash, error) {
	// Full addresses exceed the 90 character limit of bech32.DecodeGeneric,
	// so the checksum variant is checked by encoding the data again
	prefix, data, err := bech32.DecodeNoLimit(addr)
	if err != nil {
		return "", IdentityHash{}, err
	}
	encoded, err := bech32.EncodeM(prefix, data)
	if err != nil {
		return "", IdentityHash{}, err
	}
	if encoded != strings.ToLower(addr) {
		return "", IdentityHash{}, ErrNotBech32m
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", IdentityHash{}, err
	}
	expectedLen := 1 + len(secp256k1Blake160CodeHash) + 1 + IdentityHashSize
	if len(payload) != expectedLen {
		return "", IdentityHash{}, fmt.Errorf(
			"unexpected address payload length %d",
			len(payload),
		)
	}
	if payload[0] != addressFormatFull {
		return "", IdentityHash{}, fmt.Errorf("unsupported address format %#x", payload[0])
	}
	if [32]byte(payload[1:33]) != secp256k1Blake160CodeHash ||
		payload[33] != addressHashTypeType {
		return "", IdentityHash{}, fmt.Errorf("address does not use the default lock")
	}
	return prefix, NewIdentityHash(payload[34:]), nil
}
