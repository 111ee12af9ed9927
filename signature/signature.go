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

// Package signature provides the hashing and signature verification
// primitives the lock script depends on
package signature

import (
	"github.com/blinklabs-io/votesecure/record"
)

// Provider is the cryptographic capability consumed by the lock script
type Provider interface {
	// Hash returns a 32-byte collision resistant digest
	Hash(data []byte) [32]byte
	// Verify reports whether sig is a valid signature of digest by pubKey.
	// Malformed keys or signatures are reported as invalid
	Verify(pubKey []byte, sig []byte, digest [32]byte) bool
}

// IdentityHash derives the 20-byte identity of a public key
func IdentityHash(p Provider, pubKey []byte) record.IdentityHash {
	h := p.Hash(pubKey)
	return record.NewIdentityHash(h[:record.IdentityHashSize])
}

// VerifyBlock checks that a signature block belongs to the expected identity
// and signs digest. The identity binding is checked first
func VerifyBlock(
	p Provider,
	blk record.SignatureBlock,
	expected record.IdentityHash,
	digest [32]byte,
) error {
	if expected.IsZero() {
		return ErrIdentityMismatch
	}
	if IdentityHash(p, blk.PublicKey[:]) != expected {
		return ErrIdentityMismatch
	}
	if !p.Verify(blk.PublicKey[:], blk.Signature[:], digest) {
		return ErrSignatureInvalid
	}
	return nil
}
