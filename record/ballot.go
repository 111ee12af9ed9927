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
	"encoding/binary"
	"fmt"
)

const (
	ballotVoterOffset     = recordHeaderSize
	ballotSequenceOffset  = ballotVoterOffset + IdentityHashSize
	ballotTimestampOffset = ballotSequenceOffset + 4
	ballotPayloadOffset   = ballotTimestampOffset + 8

	BallotHeaderSize  = ballotSequenceOffset
	BallotPayloadSize = 256
	VoterBallotSize   = ballotPayloadOffset + BallotPayloadSize
)

// VoterBallot is a single ballot submission. Revotes create new ballots
type VoterBallot struct {
	EventId   EventId
	Voter     IdentityHash
	Sequence  uint32
	Timestamp uint64
	Payload   [BallotPayloadSize]byte
}

func ParseVoterBallot(data []byte) (*VoterBallot, error) {
	if err := checkKind(data, KindVoterBallot); err != nil {
		return nil, err
	}
	if len(data) < VoterBallotSize {
		return nil, fmt.Errorf(
			"%w: voter ballot needs %d bytes, have %d",
			ErrTruncated,
			VoterBallotSize,
			len(data),
		)
	}
	if len(data) > VoterBallotSize {
		return nil, fmt.Errorf(
			"%w: voter ballot of %d bytes, capacity %d",
			ErrOversized,
			len(data),
			VoterBallotSize,
		)
	}
	b := &VoterBallot{
		EventId:   NewEventId(data[1:ballotVoterOffset]),
		Voter:     NewIdentityHash(data[ballotVoterOffset:ballotSequenceOffset]),
		Sequence:  binary.LittleEndian.Uint32(data[ballotSequenceOffset:]),
		Timestamp: binary.LittleEndian.Uint64(data[ballotTimestampOffset:]),
	}
	copy(b.Payload[:], data[ballotPayloadOffset:])
	return b, nil
}

func (b *VoterBallot) Encode() []byte {
	ret := make([]byte, VoterBallotSize)
	ret[0] = byte(KindVoterBallot)
	copy(ret[1:ballotVoterOffset], b.EventId[:])
	copy(ret[ballotVoterOffset:ballotSequenceOffset], b.Voter[:])
	binary.LittleEndian.PutUint32(ret[ballotSequenceOffset:], b.Sequence)
	binary.LittleEndian.PutUint64(ret[ballotTimestampOffset:], b.Timestamp)
	copy(ret[ballotPayloadOffset:], b.Payload[:])
	return ret
}

// EscrowFundCapacity bounds the data of an escrow fund cell
const EscrowFundCapacity = 256

// EncodeEscrowFund produces the data of an escrow fund cell, which carries
// nothing beyond the record header
func EncodeEscrowFund(eventId EventId) []byte {
	ret := make([]byte, recordHeaderSize)
	ret[0] = byte(KindEscrowFund)
	copy(ret[1:], eventId[:])
	return ret
}
