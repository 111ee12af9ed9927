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
)

const (
	EventIdSize      = 32
	IdentityHashSize = 20
	DigestSize       = 32

	// Every record starts with [kind:1][event_id:32]
	recordHeaderSize = 1 + EventIdSize
)

var (
	ErrTruncated    = errors.New("record truncated")
	ErrOversized    = errors.New("record exceeds buffer capacity")
	ErrWrongKind    = errors.New("unexpected record kind")
	ErrInvalidField = errors.New("invalid record field")
)

// Kind is the discriminator byte stored at offset 0 of every record and of
// the script args
type Kind uint8

const (
	KindEscrowFund  Kind = 0
	KindMetadata    Kind = 1
	KindVoterBallot Kind = 2
	KindResult      Kind = 3
)

func (k Kind) Valid() bool {
	return k <= KindResult
}

func (k Kind) String() string {
	switch k {
	case KindEscrowFund:
		return "EventFund"
	case KindMetadata:
		return "Metadata"
	case KindVoterBallot:
		return "VoterBallot"
	case KindResult:
		return "Result"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind maps a kind name (as printed by String) or its numeric tag to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "EventFund", "eventfund", "fund", "0":
		return KindEscrowFund, nil
	case "Metadata", "metadata", "1":
		return KindMetadata, nil
	case "VoterBallot", "voterballot", "ballot", "2":
		return KindVoterBallot, nil
	case "Result", "result", "3":
		return KindResult, nil
	}
	return 0, fmt.Errorf("unknown record kind %q", s)
}

type EventId [EventIdSize]byte

func NewEventId(data []byte) EventId {
	e := EventId{}
	copy(e[:], data)
	return e
}

func (e EventId) String() string {
	return hex.EncodeToString(e[:])
}

func (e EventId) Bytes() []byte {
	return e[:]
}

func (e EventId) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

// Digest is a 32-byte hash, most commonly the transaction digest that
// signatures commit to
type Digest [DigestSize]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// PeekKind returns the kind tag of a record without parsing it
func PeekKind(data []byte) (Kind, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("%w: empty record", ErrTruncated)
	}
	return Kind(data[0]), nil
}

// PeekEventId returns the event identifier of a record without parsing it
func PeekEventId(data []byte) (EventId, error) {
	if len(data) < recordHeaderSize {
		return EventId{}, fmt.Errorf(
			"%w: need %d bytes for record header, have %d",
			ErrTruncated,
			recordHeaderSize,
			len(data),
		)
	}
	return NewEventId(data[1:recordHeaderSize]), nil
}

// Matches reports whether the record carries the given kind and event id.
// Records too short to carry a header never match
func Matches(data []byte, kind Kind, eventId EventId) bool {
	if len(data) < recordHeaderSize {
		return false
	}
	if Kind(data[0]) != kind {
		return false
	}
	return EventId(data[1:recordHeaderSize]) == eventId
}

// Capacity returns the largest data a record of the kind may carry, or 0 for
// an unknown kind
func Capacity(kind Kind) int {
	switch kind {
	case KindEscrowFund:
		return EscrowFundCapacity
	case KindMetadata:
		return MetadataCapacity
	case KindVoterBallot:
		return VoterBallotSize
	case KindResult:
		return ResultCapacity
	default:
		return 0
	}
}

// CheckCapacity rejects record data larger than the capacity of its kind
func CheckCapacity(data []byte, kind Kind) error {
	if limit := Capacity(kind); len(data) > limit {
		return fmt.Errorf(
			"%w: %s record of %d bytes, capacity %d",
			ErrOversized,
			kind,
			len(data),
			limit,
		)
	}
	return nil
}

func checkKind(data []byte, expected Kind) error {
	k, err := PeekKind(data)
	if err != nil {
		return err
	}
	if k != expected {
		return fmt.Errorf("%w: expected %s, found %s", ErrWrongKind, expected, k)
	}
	return nil
}
