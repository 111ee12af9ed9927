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
	"errors"
	"fmt"
)

const (
	ScriptArgsMinSize   = recordHeaderSize
	ScriptArgsVoterSize = recordHeaderSize + IdentityHashSize
	// Size of the buffer the args are loaded into
	ScriptArgsCapacity = 64
)

var ErrInvalidArgs = errors.New("invalid script args")

// ScriptArgs is the lock script argument record:
// [kind:1][event_id:32][voter_identity:20 (optional)]
type ScriptArgs struct {
	Kind    Kind
	EventId EventId
	// Voter is all zero when the args do not carry a voter identity
	Voter    IdentityHash
	HasVoter bool
}

func ParseScriptArgs(data []byte) (ScriptArgs, error) {
	if len(data) < ScriptArgsMinSize {
		return ScriptArgs{}, fmt.Errorf(
			"%w: need at least %d bytes, have %d",
			ErrInvalidArgs,
			ScriptArgsMinSize,
			len(data),
		)
	}
	if len(data) > ScriptArgsCapacity {
		return ScriptArgs{}, fmt.Errorf(
			"%w: script args of %d bytes, capacity %d",
			ErrOversized,
			len(data),
			ScriptArgsCapacity,
		)
	}
	ret := ScriptArgs{
		Kind:    Kind(data[0]),
		EventId: NewEventId(data[1:recordHeaderSize]),
	}
	if !ret.Kind.Valid() {
		return ScriptArgs{}, fmt.Errorf("%w: unknown kind tag %d", ErrInvalidArgs, data[0])
	}
	switch {
	case len(data) == ScriptArgsMinSize:
	case len(data) >= ScriptArgsVoterSize:
		ret.Voter = NewIdentityHash(data[recordHeaderSize:ScriptArgsVoterSize])
		ret.HasVoter = true
	default:
		return ScriptArgs{}, fmt.Errorf(
			"%w: truncated voter identity (%d bytes)",
			ErrInvalidArgs,
			len(data)-recordHeaderSize,
		)
	}
	return ret, nil
}

func (a ScriptArgs) Encode() []byte {
	size := ScriptArgsMinSize
	if a.HasVoter {
		size = ScriptArgsVoterSize
	}
	ret := make([]byte, size)
	ret[0] = byte(a.Kind)
	copy(ret[1:recordHeaderSize], a.EventId[:])
	if a.HasVoter {
		copy(ret[recordHeaderSize:], a.Voter[:])
	}
	return ret
}
