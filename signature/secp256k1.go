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
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/blinklabs-io/votesecure/record"
)

// Secp256k1Provider hashes with the personalized ledger Blake2b-256 and
// verifies compact (r || s) ECDSA signatures over secp256k1 with compressed
// public keys. Identities are therefore the default lock args of the key
type Secp256k1Provider struct{}

var _ Provider = Secp256k1Provider{}

func NewSecp256k1Provider() Secp256k1Provider {
	return Secp256k1Provider{}
}

func (Secp256k1Provider) Hash(data []byte) [32]byte {
	return record.Blake2b256Hash(data)
}

func (Secp256k1Provider) Verify(pubKey []byte, sig []byte, digest [32]byte) bool {
	if len(pubKey) != record.PublicKeySize || len(sig) != record.SignatureSize {
		return false
	}
	pk, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return false
	}
	// Only the low-S form is accepted so a signature has a single encoding
	if s.IsOverHalfOrder() {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], pk)
}

// Sign produces a compact 64-byte signature of digest
func Sign(key *secp256k1.PrivateKey, digest [32]byte) [record.SignatureSize]byte {
	// SignCompact prefixes the recovery code
	compact := ecdsa.SignCompact(key, digest[:], true)
	var ret [record.SignatureSize]byte
	copy(ret[:], compact[1:])
	return ret
}

// SignBlock produces a signature block for digest
func SignBlock(key *secp256k1.PrivateKey, digest [32]byte) record.SignatureBlock {
	var blk record.SignatureBlock
	copy(blk.PublicKey[:], key.PubKey().SerializeCompressed())
	blk.Signature = Sign(key, digest)
	return blk
}

// ParsePrivateKey reads a 32-byte secp256k1 private key
func ParsePrivateKey(data []byte) (*secp256k1.PrivateKey, error) {
	if len(data) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("invalid private key size: %d", len(data))
	}
	return secp256k1.PrivKeyFromBytes(data), nil
}
