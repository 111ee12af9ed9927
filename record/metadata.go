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
	metadataOrganizerOffset     = 33
	metadataVotingStartOffset   = 53
	metadataVotingEndOffset     = 61
	metadataAuditEndOffset      = 69
	metadataEligibilityOffset   = 77
	metadataMaxRevotesOffset    = 78
	metadataRequiredSigsOffset  = 79
	metadataKAnonymityOffset    = 80
	metadataFrontendCodeOffset  = 82
	metadataSignersOffset       = 114
	MetadataFixedSize           = metadataFrontendCodeOffset
	MetadataMinSize             = metadataSignersOffset
	MaxAuthorizedSigners        = 10
	metadataEligibilityDataBase = metadataSignersOffset + MaxAuthorizedSigners*IdentityHashSize
	// Size of the buffer metadata records are loaded into
	MetadataCapacity = 1024

	// MaxRevotesUnlimited disables the revote limit
	MaxRevotesUnlimited = 255
)

type EligibilityMode uint8

const (
	EligibilityPublic      EligibilityMode = 0
	EligibilityInviteKey   EligibilityMode = 1
	EligibilityCuratedList EligibilityMode = 2
)

func (m EligibilityMode) String() string {
	switch m {
	case EligibilityPublic:
		return "Public"
	case EligibilityInviteKey:
		return "InviteKey"
	case EligibilityCuratedList:
		return "CuratedList"
	default:
		return fmt.Sprintf("EligibilityMode(%d)", uint8(m))
	}
}

// Metadata is the immutable description of a voting event
type Metadata struct {
	EventId             EventId
	Organizer           IdentityHash
	VotingStart         uint64
	VotingEnd           uint64
	AuditEndTime        uint64
	Eligibility         EligibilityMode
	MaxRevotes          uint8
	RequiredSignatures  uint8
	KAnonymityThreshold uint16
	FrontendCodeHash    [32]byte
	AuthorizedSigners   []IdentityHash
	EligibilityData     []byte
}

func ParseMetadata(data []byte) (*Metadata, error) {
	if err := checkKind(data, KindMetadata); err != nil {
		return nil, err
	}
	if len(data) < MetadataMinSize {
		return nil, fmt.Errorf(
			"%w: metadata needs %d bytes, have %d",
			ErrTruncated,
			MetadataMinSize,
			len(data),
		)
	}
	if len(data) > MetadataCapacity {
		return nil, fmt.Errorf(
			"%w: metadata of %d bytes, capacity %d",
			ErrOversized,
			len(data),
			MetadataCapacity,
		)
	}
	m := &Metadata{
		EventId:             NewEventId(data[1:metadataOrganizerOffset]),
		Organizer:           NewIdentityHash(data[metadataOrganizerOffset:metadataVotingStartOffset]),
		VotingStart:         binary.LittleEndian.Uint64(data[metadataVotingStartOffset:]),
		VotingEnd:           binary.LittleEndian.Uint64(data[metadataVotingEndOffset:]),
		AuditEndTime:        binary.LittleEndian.Uint64(data[metadataAuditEndOffset:]),
		Eligibility:         EligibilityMode(data[metadataEligibilityOffset]),
		MaxRevotes:          data[metadataMaxRevotesOffset],
		RequiredSignatures:  data[metadataRequiredSigsOffset],
		KAnonymityThreshold: binary.LittleEndian.Uint16(data[metadataKAnonymityOffset:]),
	}
	copy(m.FrontendCodeHash[:], data[metadataFrontendCodeOffset:metadataSignersOffset])
	if m.Eligibility > EligibilityCuratedList {
		return nil, fmt.Errorf(
			"%w: unknown eligibility mode %d",
			ErrInvalidField,
			m.Eligibility,
		)
	}
	if m.VotingStart > m.VotingEnd || m.VotingEnd > m.AuditEndTime {
		return nil, fmt.Errorf(
			"%w: schedule not ordered (start=%d end=%d audit_end=%d)",
			ErrInvalidField,
			m.VotingStart,
			m.VotingEnd,
			m.AuditEndTime,
		)
	}
	tail := data[metadataSignersOffset:]
	signerBytes := tail
	if len(tail) > MaxAuthorizedSigners*IdentityHashSize {
		signerBytes = tail[:MaxAuthorizedSigners*IdentityHashSize]
		m.EligibilityData = append(
			[]byte(nil),
			data[metadataEligibilityDataBase:]...,
		)
	} else if len(tail)%IdentityHashSize != 0 {
		return nil, fmt.Errorf(
			"%w: signer list of %d bytes is not a multiple of %d",
			ErrTruncated,
			len(tail),
			IdentityHashSize,
		)
	}
	for i := 0; i+IdentityHashSize <= len(signerBytes); i += IdentityHashSize {
		signer := NewIdentityHash(signerBytes[i : i+IdentityHashSize])
		// Empty slots are padding and never authorize anyone
		if signer.IsZero() {
			continue
		}
		m.AuthorizedSigners = append(m.AuthorizedSigners, signer)
	}
	return m, nil
}

// Encode produces the on-chain layout. When eligibility data is present the
// signer list is zero-padded to its full 10 slots
func (m *Metadata) Encode() ([]byte, error) {
	if len(m.AuthorizedSigners) > MaxAuthorizedSigners {
		return nil, fmt.Errorf(
			"%w: %d authorized signers, maximum %d",
			ErrInvalidField,
			len(m.AuthorizedSigners),
			MaxAuthorizedSigners,
		)
	}
	size := metadataSignersOffset + len(m.AuthorizedSigners)*IdentityHashSize
	if len(m.EligibilityData) > 0 {
		size = metadataEligibilityDataBase + len(m.EligibilityData)
	}
	if size > MetadataCapacity {
		return nil, fmt.Errorf(
			"%w: metadata of %d bytes, capacity %d",
			ErrOversized,
			size,
			MetadataCapacity,
		)
	}
	ret := make([]byte, size)
	ret[0] = byte(KindMetadata)
	copy(ret[1:metadataOrganizerOffset], m.EventId[:])
	copy(ret[metadataOrganizerOffset:metadataVotingStartOffset], m.Organizer[:])
	binary.LittleEndian.PutUint64(ret[metadataVotingStartOffset:], m.VotingStart)
	binary.LittleEndian.PutUint64(ret[metadataVotingEndOffset:], m.VotingEnd)
	binary.LittleEndian.PutUint64(ret[metadataAuditEndOffset:], m.AuditEndTime)
	ret[metadataEligibilityOffset] = byte(m.Eligibility)
	ret[metadataMaxRevotesOffset] = m.MaxRevotes
	ret[metadataRequiredSigsOffset] = m.RequiredSignatures
	binary.LittleEndian.PutUint16(ret[metadataKAnonymityOffset:], m.KAnonymityThreshold)
	copy(ret[metadataFrontendCodeOffset:metadataSignersOffset], m.FrontendCodeHash[:])
	for i, signer := range m.AuthorizedSigners {
		off := metadataSignersOffset + i*IdentityHashSize
		copy(ret[off:off+IdentityHashSize], signer[:])
	}
	if len(m.EligibilityData) > 0 {
		copy(ret[metadataEligibilityDataBase:], m.EligibilityData)
	}
	return ret, nil
}

func (m *Metadata) RevotesUnlimited() bool {
	return m.MaxRevotes == MaxRevotesUnlimited
}

// IsAuthorizedSigner searches at most MaxAuthorizedSigners entries. Zero
// entries are padding and never authorize anyone
func (m *Metadata) IsAuthorizedSigner(id IdentityHash) bool {
	if id.IsZero() {
		return false
	}
	for i, signer := range m.AuthorizedSigners {
		if i >= MaxAuthorizedSigners {
			break
		}
		if signer == id {
			return true
		}
	}
	return false
}

// InVotingWindow reports voting_start <= now <= voting_end
func (m *Metadata) InVotingWindow(now uint64) bool {
	return now >= m.VotingStart && now <= m.VotingEnd
}

// AuditEnded reports now >= audit_end_time
func (m *Metadata) AuditEnded(now uint64) bool {
	return now >= m.AuditEndTime
}
