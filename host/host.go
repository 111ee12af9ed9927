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

// Package host defines the ledger query interface the lock script uses to
// read the transaction being validated, and an in-memory implementation of it
package host

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfBound signals the end of a collection. Scans treat it as a
	// normal terminator
	ErrIndexOutOfBound = errors.New("index out of bound")
	// ErrItemMissing signals that the index is valid but the requested item
	// (e.g. a witness or header) is not present
	ErrItemMissing = errors.New("item missing")
)

// Source selects which cell collection of the transaction is queried
type Source uint8

const (
	SourceInput   Source = 1
	SourceOutput  Source = 2
	SourceCellDep Source = 3
)

func (s Source) String() string {
	switch s {
	case SourceInput:
		return "input"
	case SourceOutput:
		return "output"
	case SourceCellDep:
		return "cell_dep"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// Field selects which part of a cell is loaded
type Field uint8

const (
	FieldCapacity Field = iota
	FieldData
	FieldLock
	FieldLockHash
	FieldKind
)

func (f Field) String() string {
	switch f {
	case FieldCapacity:
		return "capacity"
	case FieldData:
		return "data"
	case FieldLock:
		return "lock"
	case FieldLockHash:
		return "lock_hash"
	case FieldKind:
		return "kind"
	default:
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
}

// Ledger is the read-only view of one assembled transaction
type Ledger interface {
	// ScriptArgs returns the args of the lock script being executed
	ScriptArgs() ([]byte, error)
	// TransactionDigest returns the digest that witnesses sign
	TransactionDigest() ([32]byte, error)
	// LoadCell returns ErrIndexOutOfBound when index is past the end of src
	LoadCell(src Source, index int, field Field) ([]byte, error)
	// LoadWitness returns ErrIndexOutOfBound when index is past the last witness
	LoadWitness(index int) ([]byte, error)
	// HeaderTimestamp returns the timestamp of the header associated with
	// the input at inputIndex
	HeaderTimestamp(inputIndex int) (uint64, error)
}
