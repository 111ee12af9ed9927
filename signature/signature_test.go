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

package signature_test

import (
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/votesecure/internal/test"
	"github.com/blinklabs-io/votesecure/record"
	"github.com/blinklabs-io/votesecure/signature"
)

func testKey(t *testing.T, label string) *secp256k1.PrivateKey {
	t.Helper()
	seed := blake2b.Sum256([]byte(label))
	key, err := signature.ParsePrivateKey(seed[:])
	require.NoError(t, err)
	return key
}

func TestSecp256k1Verify(t *testing.T) {
	p := signature.NewSecp256k1Provider()
	key := testKey(t, "signer")
	pub := key.PubKey().SerializeCompressed()
	digest := p.Hash([]byte("transaction"))
	sig := signature.Sign(key, digest)

	assert.True(t, p.Verify(pub, sig[:], digest))

	otherDigest := p.Hash([]byte("other transaction"))
	assert.False(t, p.Verify(pub, sig[:], otherDigest))

	otherPub := testKey(t, "other").PubKey().SerializeCompressed()
	assert.False(t, p.Verify(otherPub, sig[:], digest))

	// Malformed inputs are invalid rather than errors
	assert.False(t, p.Verify(pub[:32], sig[:], digest))
	assert.False(t, p.Verify(pub, sig[:63], digest))
	assert.False(t, p.Verify(make([]byte, 33), sig[:], digest))
	assert.False(t, p.Verify(pub, make([]byte, 64), digest))
	overflow := make([]byte, 64)
	for i := range overflow {
		overflow[i] = 0xff
	}
	assert.False(t, p.Verify(pub, overflow, digest))
}

func TestSecp256k1RejectsHighS(t *testing.T) {
	p := signature.NewSecp256k1Provider()
	key := testKey(t, "signer")
	pub := key.PubKey().SerializeCompressed()
	digest := p.Hash([]byte("transaction"))
	sig := signature.Sign(key, digest)

	var s secp256k1.ModNScalar
	s.SetByteSlice(sig[32:])
	require.False(t, s.IsOverHalfOrder(), "signer must produce low-S")
	s.Negate()
	highS := sig
	s.PutBytesUnchecked(highS[32:])
	assert.False(t, p.Verify(pub, highS[:], digest))
}

func TestIdentityHash(t *testing.T) {
	p := signature.NewSecp256k1Provider()
	pub := testKey(t, "signer").PubKey().SerializeCompressed()
	h := record.Blake2b256Hash(pub)
	id := signature.IdentityHash(p, pub)
	assert.Equal(t, h[:20], id[:])
}

// The identity of a key equals the args of its default lock
func TestIdentityHashLockArgs(t *testing.T) {
	key, err := signature.ParsePrivateKey(
		test.DecodeHexString("d00c06bfd800d27397002dca6fb0993d5ba6399b4238b2f29ee9deb97593d2bc"),
	)
	require.NoError(t, err)
	pub := key.PubKey().SerializeCompressed()
	assert.Equal(
		t,
		"03fe6c6d09d1a0f70255cddf25c5ed57d41b5c08822ae710dc10f8c88290e0acdf",
		hex.EncodeToString(pub),
	)
	id := signature.IdentityHash(signature.NewSecp256k1Provider(), pub)
	assert.Equal(t, "c8328aabcd9b9e8e64fbc566c4385c3bdeb219d7", id.String())
}

func TestVerifyBlock(t *testing.T) {
	p := signature.NewSecp256k1Provider()
	key := testKey(t, "signer")
	digest := p.Hash([]byte("transaction"))
	blk := signature.SignBlock(key, digest)
	id := signature.IdentityHash(p, blk.PublicKey[:])

	require.NoError(t, signature.VerifyBlock(p, blk, id, digest))

	err := signature.VerifyBlock(p, blk, test.IdentityFromLabel("someone"), digest)
	require.ErrorIs(t, err, signature.ErrIdentityMismatch)

	err = signature.VerifyBlock(p, blk, record.IdentityHash{}, digest)
	require.ErrorIs(t, err, signature.ErrIdentityMismatch)

	err = signature.VerifyBlock(p, blk, id, p.Hash([]byte("other")))
	require.ErrorIs(t, err, signature.ErrSignatureInvalid)
}

func TestParsePrivateKey(t *testing.T) {
	_, err := signature.ParsePrivateKey(make([]byte, 31))
	require.Error(t, err)
}

// The legacy provider reproduces a known defect: any well-formed non-zero
// signature is accepted. This documents the bug, it is not a contract
func TestLegacyProviderAcceptsGarbage(t *testing.T) {
	p := signature.LegacyProvider{}
	pub := append([]byte{0x02}, make([]byte, 32)...)
	garbage := make([]byte, 64)
	garbage[63] = 1
	digest := p.Hash([]byte("anything"))
	assert.True(t, p.Verify(pub, garbage, digest))

	assert.False(t, p.Verify(pub, make([]byte, 64), digest))
	assert.False(t, p.Verify(append([]byte{0x04}, pub[1:]...), garbage, digest))
	assert.False(t, p.Verify(pub[:32], garbage, digest))

	// Hash is a zero-padded copy, so the identity is the key prefix
	id := signature.IdentityHash(p, pub)
	assert.Equal(t, pub[:20], id[:])
	short := p.Hash([]byte{1, 2, 3})
	assert.Equal(t, [32]byte{1, 2, 3}, short)
}
