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
	resultTotalVotesOffset = recordHeaderSize
	resultSigCountOffset   = resultTotalVotesOffset + 4
	resultTallyLenOffset   = resultSigCountOffset + 1
	resultTallyOffset      = resultTallyLenOffset + 2

	ResultFixedSize = resultSigCountOffset + 1
	// Size of the buffer result records are loaded into
	ResultCapacity = 4096
)

// ResultCell is the published tally of an event
type ResultCell struct {
	EventId    EventId
	TotalVotes uint32
	Tally      []byte
	Signatures []SignatureBlock
}

func ParseResultCell(data []byte) (*ResultCell, error) {
	if err := checkKind(data, KindResult); err != nil {
		return nil, err
	}
	if len(data) > ResultCapacity {
		return nil, fmt.Errorf(
			"%w: result of %d bytes, capacity %d",
			ErrOversized,
			len(data),
			ResultCapacity,
		)
	}
	if len(data) < resultTallyOffset {
		return nil, fmt.Errorf(
			"%w: result needs %d bytes, have %d",
			ErrTruncated,
			resultTallyOffset,
			len(data),
		)
	}
	r := &ResultCell{
		EventId:    NewEventId(data[1:resultTotalVotesOffset]),
		TotalVotes: binary.LittleEndian.Uint32(data[resultTotalVotesOffset:]),
	}
	sigCount := int(data[resultSigCountOffset])
	tallyLen := int(binary.LittleEndian.Uint16(data[resultTallyLenOffset:]))
	expected := resultTallyOffset + tallyLen + sigCount*SignatureBlockSize
	if len(data) != expected {
		return nil, fmt.Errorf(
			"%w: result declares %d bytes, have %d",
			ErrTruncated,
			expected,
			len(data),
		)
	}
	r.Tally = append([]byte(nil), data[resultTallyOffset:resultTallyOffset+tallyLen]...)
	sigs := data[resultTallyOffset+tallyLen:]
	for i := range sigCount {
		blk, err := ParseSignatureBlock(sigs[i*SignatureBlockSize:])
		if err != nil {
			return nil, err
		}
		r.Signatures = append(r.Signatures, blk)
	}
	return r, nil
}

func (r *ResultCell) Encode() ([]byte, error) {
	if len(r.Signatures) > 255 {
		return nil, fmt.Errorf("%w: %d signatures", ErrInvalidField, len(r.Signatures))
	}
	if len(r.Tally) > 0xffff {
		return nil, fmt.Errorf("%w: tally of %d bytes", ErrInvalidField, len(r.Tally))
	}
	size := resultTallyOffset + len(r.Tally) + len(r.Signatures)*SignatureBlockSize
	if size > ResultCapacity {
		return nil, fmt.Errorf(
			"%w: result of %d bytes, capacity %d",
			ErrOversized,
			size,
			ResultCapacity,
		)
	}
	ret := make([]byte, resultTallyOffset, size)
	ret[0] = byte(KindResult)
	copy(ret[1:resultTotalVotesOffset], r.EventId[:])
	binary.LittleEndian.PutUint32(ret[resultTotalVotesOffset:], r.TotalVotes)
	ret[resultSigCountOffset] = uint8(len(r.Signatures)) //nolint:gosec
	binary.LittleEndian.PutUint16(ret[resultTallyLenOffset:], uint16(len(r.Tally))) //nolint:gosec
	ret = append(ret, r.Tally...)
	for _, sig := range r.Signatures {
		ret = append(ret, sig.Encode()...)
	}
	return ret, nil
}
