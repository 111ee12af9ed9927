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
	"fmt"

	blake2b "github.com/minio/blake2b-simd"
)

// Personalization of the default ledger hash
var ckbHashPersonalization = []byte("ckb-default-hash")

// Blake2b256Hash returns the default ledger hash of data: Blake2b-256 with the
// "ckb-default-hash" personalization. Code hashes, lock hashes and
// transaction digests all use it
func Blake2b256Hash(data []byte) Digest {
	h, err := blake2b.New(&blake2b.Config{
		Size:   DigestSize,
		Person: ckbHashPersonalization,
	})
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error creating Blake2b-256 hash: %s", err),
		)
	}
	h.Write(data)
	return Digest(h.Sum(nil))
}

// Blake160Hash returns the first 20 bytes of Blake2b256Hash, the lock args of
// the default secp256k1 lock for a compressed public key
func Blake160Hash(data []byte) IdentityHash {
	h := Blake2b256Hash(data)
	return NewIdentityHash(h[:IdentityHashSize])
}
