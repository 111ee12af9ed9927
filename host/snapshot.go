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

package host

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/blinklabs-io/votesecure/cbor"
	"github.com/blinklabs-io/votesecure/record"
)

// Cell is a single cell of a snapshot
type Cell struct {
	cbor.StructAsArray
	Capacity uint64
	Lock     []byte
	Data     []byte
}

func NewCell(capacity uint64, lock []byte, data []byte) Cell {
	return Cell{
		Capacity: capacity,
		Lock:     bytes.Clone(lock),
		Data:     bytes.Clone(data),
	}
}

// Snapshot is an in-memory Ledger over a fully assembled transaction. It is
// never modified by the lock script
type Snapshot struct {
	cbor.StructAsArray
	Args     []byte
	Digest   [32]byte
	Inputs   []Cell
	Outputs  []Cell
	CellDeps []Cell
	// Witnesses are indexed like inputs
	Witnesses [][]byte
	// HeaderTimestamps holds the header timestamp associated with each input
	HeaderTimestamps []uint64
}

var _ Ledger = (*Snapshot)(nil)

func (s *Snapshot) ScriptArgs() ([]byte, error) {
	if s.Args == nil {
		return nil, ErrItemMissing
	}
	return bytes.Clone(s.Args), nil
}

func (s *Snapshot) TransactionDigest() ([32]byte, error) {
	return s.Digest, nil
}

func (s *Snapshot) cells(src Source) ([]Cell, error) {
	switch src {
	case SourceInput:
		return s.Inputs, nil
	case SourceOutput:
		return s.Outputs, nil
	case SourceCellDep:
		return s.CellDeps, nil
	default:
		return nil, fmt.Errorf("unknown source %d", src)
	}
}

func (s *Snapshot) LoadCell(src Source, index int, field Field) ([]byte, error) {
	cells, err := s.cells(src)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(cells) {
		return nil, ErrIndexOutOfBound
	}
	cell := cells[index]
	switch field {
	case FieldCapacity:
		ret := make([]byte, 8)
		binary.LittleEndian.PutUint64(ret, cell.Capacity)
		return ret, nil
	case FieldData:
		return bytes.Clone(cell.Data), nil
	case FieldLock:
		return bytes.Clone(cell.Lock), nil
	case FieldLockHash:
		h := record.Blake2b256Hash(cell.Lock)
		return h[:], nil
	case FieldKind:
		if len(cell.Data) == 0 {
			return []byte{}, nil
		}
		return []byte{cell.Data[0]}, nil
	default:
		return nil, fmt.Errorf("unknown field %d", field)
	}
}

func (s *Snapshot) LoadWitness(index int) ([]byte, error) {
	if index < 0 || index >= len(s.Witnesses) {
		return nil, ErrIndexOutOfBound
	}
	if s.Witnesses[index] == nil {
		return nil, ErrItemMissing
	}
	return bytes.Clone(s.Witnesses[index]), nil
}

func (s *Snapshot) HeaderTimestamp(inputIndex int) (uint64, error) {
	if inputIndex < 0 || inputIndex >= len(s.Inputs) {
		return 0, ErrIndexOutOfBound
	}
	if inputIndex >= len(s.HeaderTimestamps) {
		return 0, ErrItemMissing
	}
	return s.HeaderTimestamps[inputIndex], nil
}

// AddInput appends an input cell together with its header timestamp and
// returns its index
func (s *Snapshot) AddInput(cell Cell, headerTimestamp uint64) int {
	// Keep timestamps aligned with inputs
	for len(s.HeaderTimestamps) < len(s.Inputs) {
		s.HeaderTimestamps = append(s.HeaderTimestamps, 0)
	}
	s.Inputs = append(s.Inputs, cell)
	s.HeaderTimestamps = append(s.HeaderTimestamps, headerTimestamp)
	return len(s.Inputs) - 1
}

func (s *Snapshot) AddOutput(cell Cell) int {
	s.Outputs = append(s.Outputs, cell)
	return len(s.Outputs) - 1
}

func (s *Snapshot) AddCellDep(cell Cell) int {
	s.CellDeps = append(s.CellDeps, cell)
	return len(s.CellDeps) - 1
}

// SetWitness stores the witness at index, growing the witness list as needed
func (s *Snapshot) SetWitness(index int, witness []byte) {
	for len(s.Witnesses) <= index {
		s.Witnesses = append(s.Witnesses, nil)
	}
	s.Witnesses[index] = bytes.Clone(witness)
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() (*Snapshot, error) {
	ret := &Snapshot{}
	if err := copier.CopyWithOption(ret, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return ret, nil
}
