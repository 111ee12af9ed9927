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
)

const (
	PublicKeySize      = 33
	SignatureSize      = 64
	SignatureBlockSize = PublicKeySize + SignatureSize
	InviteWitnessSize  = 2 * SignatureBlockSize
	// Size of the buffer witnesses are loaded into
	WitnessCapacity = 32 * 1024
)

// SignatureBlock is a compressed public key followed by a compact signature
type SignatureBlock struct {
	PublicKey [PublicKeySize]byte
	Signature [SignatureSize]byte
}

// ParseSignatureBlock reads the first block of data. Trailing bytes are
// ignored
func ParseSignatureBlock(data []byte) (SignatureBlock, error) {
	if len(data) < SignatureBlockSize {
		return SignatureBlock{}, fmt.Errorf(
			"%w: signature block needs %d bytes, have %d",
			ErrTruncated,
			SignatureBlockSize,
			len(data),
		)
	}
	var ret SignatureBlock
	copy(ret.PublicKey[:], data[:PublicKeySize])
	copy(ret.Signature[:], data[PublicKeySize:SignatureBlockSize])
	return ret, nil
}

func (s SignatureBlock) Encode() []byte {
	ret := make([]byte, 0, SignatureBlockSize)
	ret = append(ret, s.PublicKey[:]...)
	ret = append(ret, s.Signature[:]...)
	return ret
}

// InviteWitness carries the voter signature followed by the invite issuer
// signature
type InviteWitness struct {
	Voter  SignatureBlock
	Issuer SignatureBlock
}

func ParseInviteWitness(data []byte) (InviteWitness, error) {
	if len(data) < InviteWitnessSize {
		return InviteWitness{}, fmt.Errorf(
			"%w: invite witness needs %d bytes, have %d",
			ErrTruncated,
			InviteWitnessSize,
			len(data),
		)
	}
	voter, err := ParseSignatureBlock(data)
	if err != nil {
		return InviteWitness{}, err
	}
	issuer, err := ParseSignatureBlock(data[SignatureBlockSize:])
	if err != nil {
		return InviteWitness{}, err
	}
	return InviteWitness{Voter: voter, Issuer: issuer}, nil
}

func (w InviteWitness) Encode() []byte {
	return append(w.Voter.Encode(), w.Issuer.Encode()...)
}

// ThresholdWitness is [count:1] followed by count signature blocks
type ThresholdWitness struct {
	Blocks []SignatureBlock
}

// ThresholdCount returns the declared signature count of a threshold witness.
// An empty witness declares zero signatures
func ThresholdCount(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	return int(data[0])
}

func ParseThresholdWitness(data []byte) (ThresholdWitness, error) {
	count := ThresholdCount(data)
	if len(data) == 0 {
		return ThresholdWitness{}, nil
	}
	need := 1 + count*SignatureBlockSize
	if len(data) < need {
		return ThresholdWitness{}, fmt.Errorf(
			"%w: threshold witness declares %d signatures (%d bytes), have %d bytes",
			ErrTruncated,
			count,
			need,
			len(data),
		)
	}
	ret := ThresholdWitness{
		Blocks: make([]SignatureBlock, 0, count),
	}
	for i := range count {
		blk, err := ParseSignatureBlock(data[1+i*SignatureBlockSize:])
		if err != nil {
			return ThresholdWitness{}, err
		}
		ret.Blocks = append(ret.Blocks, blk)
	}
	return ret, nil
}

func (w ThresholdWitness) Encode() ([]byte, error) {
	if len(w.Blocks) > 255 {
		return nil, fmt.Errorf("%w: %d signature blocks", ErrInvalidField, len(w.Blocks))
	}
	ret := make([]byte, 1, 1+len(w.Blocks)*SignatureBlockSize)
	ret[0] = uint8(len(w.Blocks)) //nolint:gosec
	for _, blk := range w.Blocks {
		ret = append(ret, blk.Encode()...)
	}
	return ret, nil
}
