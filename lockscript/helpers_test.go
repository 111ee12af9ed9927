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

package lockscript_test

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/blinklabs-io/votesecure/record"
)

// negateS returns the high-S twin of a signature, which is valid ECDSA but
// not canonical
func negateS(blk record.SignatureBlock) record.SignatureBlock {
	var s secp256k1.ModNScalar
	s.SetByteSlice(blk.Signature[32:])
	s.Negate()
	s.PutBytesUnchecked(blk.Signature[32:])
	return blk
}

// corrupt flips one bit of the signature r value
func corrupt(data []byte, offset int) []byte {
	ret := append([]byte(nil), data...)
	ret[offset] ^= 0x01
	return ret
}
