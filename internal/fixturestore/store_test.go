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

package fixturestore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/internal/fixturestore"
	"github.com/blinklabs-io/votesecure/internal/test/scenario"
	"github.com/blinklabs-io/votesecure/lockscript"
	"github.com/blinklabs-io/votesecure/record"
)

func openStore(t *testing.T) *fixturestore.Store {
	t.Helper()
	s, err := fixturestore.Open(filepath.Join(t.TempDir(), "fixtures.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func voteFixture(name string) *host.Fixture {
	ev := scenario.NewEvent(name)
	v1 := scenario.NewParty("v1")
	return &host.Fixture{
		Name:     name,
		Expected: int8(lockscript.CodeSuccess),
		Snapshot: *ev.Vote(v1, 0, 150).SignedBy(v1).Snapshot(),
	}
}

func TestStorePutGet(t *testing.T) {
	s := openStore(t)
	f := voteFixture("vote")
	id, err := s.Put(f)
	require.NoError(t, err)

	got, ok, err := s.Get(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "vote", got.Name)
	gotId, err := got.Id()
	require.NoError(t, err)
	assert.Equal(t, id, gotId)

	// The stored snapshot still validates
	assert.Equal(t, got.Expected, lockscript.Run(&got.Snapshot))

	byName, ok, err := s.GetByName("vote")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, got.Cbor(), byName.Cbor())

	_, ok, err = s.Get([32]byte{1})
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.GetByName("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreList(t *testing.T) {
	s := openStore(t)
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_, err := s.Put(voteFixture(name))
		require.NoError(t, err)
	}
	late := voteFixture("alpha")
	late.Expected = int8(lockscript.CodeRevoteLimitExceeded)
	_, err := s.Put(late)
	require.NoError(t, err)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, int8(lockscript.CodeRevoteLimitExceeded), entries[0].Expected)
	assert.Equal(t, "bravo", entries[1].Name)
	assert.Equal(t, "charlie", entries[2].Name)
}

func TestStoreDelete(t *testing.T) {
	s := openStore(t)
	f := voteFixture("shared")
	id, err := s.Put(f)
	require.NoError(t, err)

	require.NoError(t, s.Delete("shared"))
	_, ok, err := s.Get(id)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Delete("shared"))
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.db")
	s, err := fixturestore.Open(path)
	require.NoError(t, err)
	ev := scenario.NewEvent("reopen")
	_, err = s.Put(&host.Fixture{
		Name:     "metadata-locked",
		Expected: int8(lockscript.CodeMetadataImmutable),
		Snapshot: *ev.Spend(record.KindMetadata, 150).Snapshot(),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = fixturestore.Open(path)
	require.NoError(t, err)
	defer s.Close()
	f, ok, err := s.GetByName("metadata-locked")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f.Expected, lockscript.Run(&f.Snapshot))
}

func TestStoreErrors(t *testing.T) {
	_, err := fixturestore.Open("")
	require.Error(t, err)

	s := openStore(t)
	_, err = s.Put(&host.Fixture{})
	require.ErrorIs(t, err, fixturestore.ErrNameRequired)
}
