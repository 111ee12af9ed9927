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

package host_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/record"
)

func testSnapshot() *host.Snapshot {
	s := &host.Snapshot{
		Args:   []byte{0x01, 0x02},
		Digest: blake2b.Sum256([]byte("tx")),
	}
	s.AddInput(host.NewCell(100, []byte("lock-a"), []byte{0x00, 0xaa}), 150)
	s.AddInput(host.NewCell(200, []byte("lock-b"), nil), 151)
	s.AddOutput(host.NewCell(300, []byte("lock-c"), []byte{0x02}))
	s.AddCellDep(host.NewCell(400, nil, []byte{0x01}))
	s.SetWitness(0, []byte("witness-0"))
	s.SetWitness(2, []byte("witness-2"))
	return s
}

func TestSnapshotCells(t *testing.T) {
	s := testSnapshot()

	data, err := s.LoadCell(host.SourceInput, 0, host.FieldData)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xaa}, data)

	capacity, err := s.LoadCell(host.SourceOutput, 0, host.FieldCapacity)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), binary.LittleEndian.Uint64(capacity))

	lockHash, err := s.LoadCell(host.SourceInput, 1, host.FieldLockHash)
	require.NoError(t, err)
	expected := record.Blake2b256Hash([]byte("lock-b"))
	assert.Equal(t, expected[:], lockHash)

	kind, err := s.LoadCell(host.SourceCellDep, 0, host.FieldKind)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, kind)

	kind, err = s.LoadCell(host.SourceInput, 1, host.FieldKind)
	require.NoError(t, err)
	assert.Empty(t, kind)

	_, err = s.LoadCell(host.SourceInput, 2, host.FieldData)
	require.ErrorIs(t, err, host.ErrIndexOutOfBound)
	_, err = s.LoadCell(host.SourceCellDep, -1, host.FieldData)
	require.ErrorIs(t, err, host.ErrIndexOutOfBound)
	_, err = s.LoadCell(host.Source(9), 0, host.FieldData)
	require.Error(t, err)

	// Returned data is a copy
	data[0] = 0xff
	data, err = s.LoadCell(host.SourceInput, 0, host.FieldData)
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), data[0])
}

func TestSnapshotWitnessesAndHeaders(t *testing.T) {
	s := testSnapshot()

	w, err := s.LoadWitness(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("witness-0"), w)
	_, err = s.LoadWitness(1)
	require.ErrorIs(t, err, host.ErrItemMissing)
	_, err = s.LoadWitness(3)
	require.ErrorIs(t, err, host.ErrIndexOutOfBound)

	ts, err := s.HeaderTimestamp(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(151), ts)
	_, err = s.HeaderTimestamp(2)
	require.ErrorIs(t, err, host.ErrIndexOutOfBound)

	args, err := s.ScriptArgs()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, args)
	_, err = (&host.Snapshot{}).ScriptArgs()
	require.ErrorIs(t, err, host.ErrItemMissing)
}

func TestSnapshotClone(t *testing.T) {
	s := testSnapshot()
	c, err := s.Clone()
	require.NoError(t, err)
	assert.Equal(t, s.Digest, c.Digest)
	require.Len(t, c.Inputs, 2)

	// Mutating the clone leaves the original intact
	c.Inputs[0].Data[1] = 0x00
	c.Witnesses[0][0] = 'W'
	c.HeaderTimestamps[0] = 1
	c.AddOutput(host.NewCell(1, nil, nil))
	assert.Equal(t, []byte{0x00, 0xaa}, s.Inputs[0].Data)
	assert.Equal(t, []byte("witness-0"), s.Witnesses[0])
	assert.Equal(t, uint64(150), s.HeaderTimestamps[0])
	assert.Len(t, s.Outputs, 1)
}

func TestFixtureRoundTrip(t *testing.T) {
	f := &host.Fixture{
		Name:     "ballot accepted",
		Expected: -7,
		Snapshot: *testSnapshot(),
	}
	data, err := f.Encode()
	require.NoError(t, err)

	decoded, err := host.DecodeFixture(data)
	require.NoError(t, err)
	assert.Equal(t, uint(host.FixtureVersion), decoded.Version)
	assert.Equal(t, f.Name, decoded.Name)
	assert.Equal(t, f.Expected, decoded.Expected)
	assert.Equal(t, f.Snapshot.Digest, decoded.Snapshot.Digest)
	assert.Equal(t, f.Snapshot.HeaderTimestamps, decoded.Snapshot.HeaderTimestamps)
	assert.Equal(t, data, decoded.Cbor())

	for i := range f.Snapshot.Inputs {
		want, err := f.Snapshot.LoadCell(host.SourceInput, i, host.FieldData)
		require.NoError(t, err)
		got, err := decoded.Snapshot.LoadCell(host.SourceInput, i, host.FieldData)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = decoded.Snapshot.LoadWitness(1)
	require.ErrorIs(t, err, host.ErrItemMissing)

	// The id is derived from the stored encoding
	id1, err := f.Id()
	require.NoError(t, err)
	id2, err := decoded.Id()
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestFixtureErrors(t *testing.T) {
	f := &host.Fixture{Version: 2, Name: "future"}
	data, err := f.Encode()
	require.NoError(t, err)
	_, err = host.DecodeFixture(data)
	require.Error(t, err)

	good, err := (&host.Fixture{Name: "ok"}).Encode()
	require.NoError(t, err)
	_, err = host.DecodeFixture(append(good, 0x00))
	require.Error(t, err)

	_, err = host.DecodeFixture([]byte{0xff})
	require.ErrorIs(t, err, host.ErrNotFixture)
	_, err = host.DecodeFixture(nil)
	require.ErrorIs(t, err, host.ErrNotFixture)
}
