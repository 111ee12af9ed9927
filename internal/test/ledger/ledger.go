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

package test_ledger

import (
	"errors"

	"github.com/blinklabs-io/votesecure/host"
)

// Compile-time check that MockLedger implements host.Ledger
var _ host.Ledger = (*MockLedger)(nil)

// MockLedger is the canonical internal mock used by tests. It delegates to
// Snapshot unless the matching XxxFunc is set, which lets tests inject host
// faults into an otherwise valid transaction. Calls counts every LoadCell
// call so tests can check that scans stay bounded
type MockLedger struct {
	Snapshot *host.Snapshot
	// ScriptArgsFunc optionally overrides the script args lookup
	ScriptArgsFunc func() ([]byte, error)
	// TransactionDigestFunc optionally overrides the digest lookup
	TransactionDigestFunc func() ([32]byte, error)
	// LoadCellFunc optionally overrides cell lookups
	LoadCellFunc func(host.Source, int, host.Field) ([]byte, error)
	// LoadWitnessFunc optionally overrides witness lookups
	LoadWitnessFunc func(int) ([]byte, error)
	// HeaderTimestampFunc optionally overrides header lookups
	HeaderTimestampFunc func(int) (uint64, error)
	Calls               int
}

var errNoSnapshot = errors.New("MockLedger.Snapshot not configured")

func (m *MockLedger) ScriptArgs() ([]byte, error) {
	if m.ScriptArgsFunc != nil {
		return m.ScriptArgsFunc()
	}
	if m.Snapshot == nil {
		return nil, errNoSnapshot
	}
	return m.Snapshot.ScriptArgs()
}

func (m *MockLedger) TransactionDigest() ([32]byte, error) {
	if m.TransactionDigestFunc != nil {
		return m.TransactionDigestFunc()
	}
	if m.Snapshot == nil {
		return [32]byte{}, errNoSnapshot
	}
	return m.Snapshot.TransactionDigest()
}

func (m *MockLedger) LoadCell(
	src host.Source,
	index int,
	field host.Field,
) ([]byte, error) {
	m.Calls++
	if m.LoadCellFunc != nil {
		return m.LoadCellFunc(src, index, field)
	}
	if m.Snapshot == nil {
		return nil, errNoSnapshot
	}
	return m.Snapshot.LoadCell(src, index, field)
}

func (m *MockLedger) LoadWitness(index int) ([]byte, error) {
	if m.LoadWitnessFunc != nil {
		return m.LoadWitnessFunc(index)
	}
	if m.Snapshot == nil {
		return nil, errNoSnapshot
	}
	return m.Snapshot.LoadWitness(index)
}

func (m *MockLedger) HeaderTimestamp(inputIndex int) (uint64, error) {
	if m.HeaderTimestampFunc != nil {
		return m.HeaderTimestampFunc(inputIndex)
	}
	if m.Snapshot == nil {
		return 0, errNoSnapshot
	}
	return m.Snapshot.HeaderTimestamp(inputIndex)
}

// EndlessCells returns a LoadCellFunc that never reports the end of a
// collection, always returning data
func EndlessCells(data []byte) func(host.Source, int, host.Field) ([]byte, error) {
	return func(host.Source, int, host.Field) ([]byte, error) {
		ret := make([]byte, len(data))
		copy(ret, data)
		return ret, nil
	}
}
