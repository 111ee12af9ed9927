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

package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinklabs-io/votesecure/cmd/common"
	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/internal/test/scenario"
	"github.com/blinklabs-io/votesecure/lockscript"
	"github.com/blinklabs-io/votesecure/record"
)

// run executes the CLI and returns its standard and log output
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	app := newApp(&out, &logs)
	err := app.Run(append([]string{"votesecure"}, args...))
	return out.String(), logs.String(), err
}

func writeFixture(t *testing.T, dir string, f *host.Fixture) string {
	t.Helper()
	path := filepath.Join(dir, strings.ReplaceAll(f.Name, " ", "_")+".cbor")
	require.NoError(t, common.WriteFixtureFile(path, f))
	return path
}

func lifecycleFixtures(t *testing.T, dir string) []string {
	t.Helper()
	ev := scenario.NewEvent("cli")
	v1 := scenario.NewParty("v1")
	fixtures := []*host.Fixture{
		{
			Name:     "first ballot",
			Expected: int8(lockscript.CodeSuccess),
			Snapshot: *ev.Vote(v1, 0, 150).SignedBy(v1).Snapshot(),
		},
		{
			Name:     "second ballot",
			Expected: int8(lockscript.CodeRevoteLimitExceeded),
			Snapshot: *ev.Vote(v1, 1, 160).Input(ev.BallotData(v1, 0)).SignedBy(v1).Snapshot(),
		},
		{
			Name:     "cleanup",
			Expected: int8(lockscript.CodeSuccess),
			Snapshot: *ev.Spend(record.KindResult, 350).SignedBy(ev.Organizer).Snapshot(),
		},
	}
	var paths []string
	for _, f := range fixtures {
		paths = append(paths, writeFixture(t, dir, f))
	}
	return paths
}

func TestVerifyCommand(t *testing.T) {
	paths := lifecycleFixtures(t, t.TempDir())
	out, _, err := run(t, append([]string{"verify"}, paths...)...)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "ok\t"))
	assert.Contains(t, out, "code=-7 (RevoteLimitExceeded)")

	// A fixture whose expectation does not hold
	ev := scenario.NewEvent("cli-mismatch")
	wrong := writeFixture(t, t.TempDir(), &host.Fixture{
		Name:     "premature withdrawal",
		Expected: int8(lockscript.CodeSuccess),
		Snapshot: *ev.Spend(record.KindEscrowFund, 250).SignedBy(ev.Organizer).Snapshot(),
	})
	out, _, err = run(t, "verify", wrong)
	require.ErrorIs(t, err, errMismatch)
	assert.Contains(t, out, "MISMATCH\tpremature withdrawal\tcode=-5 (InvalidTiming)")

	_, _, err = run(t, "verify")
	require.Error(t, err)
	_, _, err = run(t, "verify", filepath.Join(t.TempDir(), "missing.cbor"))
	require.Error(t, err)
}

// legacyFixture is an organizer withdrawal signed with garbage, which only
// the legacy verifier accepts
func legacyFixture(t *testing.T) string {
	t.Helper()
	ev := scenario.NewEvent("cli-legacy")
	var blk record.SignatureBlock
	blk.PublicKey[0] = 0x02
	copy(blk.PublicKey[1:], "legacy-organizer")
	blk.Signature[0] = 0x01
	ev.Metadata.Organizer = record.NewIdentityHash(blk.PublicKey[:record.IdentityHashSize])
	return writeFixture(t, t.TempDir(), &host.Fixture{
		Name:     "legacy withdrawal",
		Expected: int8(lockscript.CodeSuccess),
		Snapshot: *ev.Spend(record.KindEscrowFund, 350).Witness(blk.Encode()).Snapshot(),
	})
}

func TestVerifyLegacyCrypto(t *testing.T) {
	path := legacyFixture(t)
	out, _, err := run(t, "verify", path)
	require.ErrorIs(t, err, errMismatch)
	assert.Contains(t, out, "code=-10 (UnauthorizedWithdrawal)")

	out, logs, err := run(t, "--legacy-crypto", "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok\tlegacy withdrawal")
	assert.Contains(t, logs, "legacy placeholder cryptography")

	t.Setenv("VOTESECURE_LEGACY_CRYPTO", "true")
	_, _, err = run(t, "verify", path)
	require.NoError(t, err)
}

func TestLogging(t *testing.T) {
	paths := lifecycleFixtures(t, t.TempDir())
	_, logs, err := run(t, "--log-format", "json", "--log-level", "debug", "verify", paths[0])
	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"transaction accepted"`)
	assert.Contains(t, logs, `"kind":"VoterBallot"`)

	_, logs, err = run(t, "verify", paths[0])
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, _, err = run(t, "--log-format", "xml", "verify", paths[0])
	require.Error(t, err)
	_, _, err = run(t, "--log-level", "loud", "verify", paths[0])
	require.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	ev := scenario.NewEvent("cli-inspect")
	v1 := scenario.NewParty("v1")

	out, _, err := run(t, "inspect", hex.EncodeToString(ev.MetadataData()))
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "Metadata"`)
	assert.Contains(t, out, `"voting_end": 200`)
	assert.Contains(t, out, `"eligibility": "Public"`)
	assert.Contains(t, out, ev.Signers[2].Identity.String())

	out, _, err = run(t, "inspect", "ballot", hex.EncodeToString(ev.BallotData(v1, 4)))
	require.NoError(t, err)
	assert.Contains(t, out, `"sequence": 4`)
	assert.Contains(t, out, v1.Identity.String())

	out, _, err = run(t, "inspect", "result", "0x"+hex.EncodeToString(ev.ResultData(9)))
	require.NoError(t, err)
	assert.Contains(t, out, `"total_votes": 9`)

	out, _, err = run(t, "inspect", hex.EncodeToString(ev.FundData()))
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "EventFund"`)

	args := record.ScriptArgs{
		Kind:     record.KindVoterBallot,
		EventId:  ev.Id(),
		Voter:    v1.Identity,
		HasVoter: true,
	}
	out, _, err = run(t, "inspect", "args", hex.EncodeToString(args.Encode()))
	require.NoError(t, err)
	assert.Contains(t, out, `"voter": "`+v1.Identity.String()+`"`)

	_, _, err = run(t, "inspect", "metadata", hex.EncodeToString(ev.FundData()))
	require.ErrorIs(t, err, record.ErrWrongKind)
	_, _, err = run(t, "inspect", "zz")
	require.Error(t, err)
	_, _, err = run(t, "inspect", "args", "00")
	require.ErrorIs(t, err, record.ErrInvalidArgs)
}

func TestIdentityCommands(t *testing.T) {
	p := scenario.NewParty("cli-identity")
	out, _, err := run(t, "identity", "derive", hex.EncodeToString(p.PubKey))
	require.NoError(t, err)
	assert.Contains(t, out, "identity: "+p.Identity.String())
	mainnet := p.Identity.Address(record.AddressPrefixMainnet)
	assert.Contains(t, out, mainnet)

	out, _, err = run(t, "identity", "address", "--testnet", p.Identity.String())
	require.NoError(t, err)
	testnet := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(testnet, "ckt1"))

	out, _, err = run(t, "identity", "decode", testnet)
	require.NoError(t, err)
	assert.Contains(t, out, "prefix:   ckt")
	assert.Contains(t, out, "identity: "+p.Identity.String())

	_, _, err = run(t, "identity", "derive", "0203")
	require.Error(t, err)

	binary := filepath.Join(t.TempDir(), "lock.bin")
	require.NoError(t, os.WriteFile(binary, []byte("lock script"), 0o600))
	out, _, err = run(t, "identity", "code-hash", binary)
	require.NoError(t, err)
	assert.Equal(
		t,
		"030f82a556b3d35eac4d9e4616e6af6a8cf3a9faa02d0a8df3563d8cc60b2a25",
		strings.TrimSpace(out),
	)

	empty := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	out, _, err = run(t, "identity", "code-hash", empty)
	require.NoError(t, err)
	assert.Equal(
		t,
		"44f4c69744d5f8c55d642062949dcae49bc4e7ef43d388c5a12f42b5633d163e",
		strings.TrimSpace(out),
	)
}

// The derived address is the default lock address of the key
func TestIdentityDeriveLockAddress(t *testing.T) {
	out, _, err := run(
		t,
		"identity",
		"derive",
		"03fe6c6d09d1a0f70255cddf25c5ed57d41b5c08822ae710dc10f8c88290e0acdf",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "identity: c8328aabcd9b9e8e64fbc566c4385c3bdeb219d7")
	assert.Contains(
		t,
		out,
		"testnet:  ckt1qzda0cr08m85hc8jlnfp3zer7xulejywt49kt2rr0vthywaa50xwsqwgx292hnvmn68xf779vmzrshpmm6epn4c0cgwga",
	)
}

func TestFixtureCommands(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "fixtures.db")
	paths := lifecycleFixtures(t, dir)

	out, _, err := run(t, append([]string{"--db", db, "fixture", "import"}, paths...)...)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))

	out, _, err = run(t, "--db", db, "fixture", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "cleanup")
	assert.Contains(t, lines[2], "second ballot\texpected=-7 (RevoteLimitExceeded)")

	out, _, err = run(t, "--db", db, "fixture", "verify")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "ok\t"))

	exported := filepath.Join(dir, "exported.cbor")
	_, _, err = run(t, "--db", db, "fixture", "export", "cleanup", exported)
	require.NoError(t, err)
	original, err := os.ReadFile(paths[2])
	require.NoError(t, err)
	copied, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, original, copied)

	_, _, err = run(t, "--db", db, "fixture", "delete", "cleanup")
	require.NoError(t, err)
	_, _, err = run(t, "--db", db, "fixture", "verify", "cleanup")
	require.Error(t, err)

	t.Setenv("VOTESECURE_DB", db)
	out, _, err = run(t, "fixture", "list")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}
