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

package signature

import (
	"github.com/blinklabs-io/votesecure/record"
)

// LegacyProvider reproduces the placeholder primitives of the first deployed
// lock script so its verdicts can be compared against this engine.
//
// WARNING: it is not a cryptographic provider. Hash copies its input into a
// zero-padded 32-byte buffer and Verify accepts any well-formed, non-zero
// signature without checking it. Never use it to validate real transactions.
type LegacyProvider struct{}

var _ Provider = LegacyProvider{}

func (LegacyProvider) Hash(data []byte) [32]byte {
	var ret [32]byte
	copy(ret[:], data)
	return ret
}

func (LegacyProvider) Verify(pubKey []byte, sig []byte, digest [32]byte) bool {
	if len(pubKey) != record.PublicKeySize || len(sig) != record.SignatureSize {
		return false
	}
	if pubKey[0] != 0x02 && pubKey[0] != 0x03 {
		return false
	}
	for _, b := range sig {
		if b != 0 {
			return true
		}
	}
	return false
}
