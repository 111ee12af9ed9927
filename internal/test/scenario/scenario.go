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

// Package scenario builds signed transaction snapshots for tests
package scenario

import (
	"encoding/binary"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/blake2b"

	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/internal/test"
	test_ledger "github.com/blinklabs-io/votesecure/internal/test/ledger"
	"github.com/blinklabs-io/votesecure/record"
	"github.com/blinklabs-io/votesecure/signature"
)

// Schedule of the event created by NewEvent
const (
	VotingStart  = 100
	VotingEnd    = 200
	AuditEndTime = 300
)

// cellCapacity is the capacity given to every generated cell
const cellCapacity = 200_00000000

// Party is a key holder with a deterministic secp256k1 key
type Party struct {
	Name     string
	Key      *secp256k1.PrivateKey
	PubKey   []byte
	Identity record.IdentityHash
}

func NewParty(name string) *Party {
	seed := blake2b.Sum256([]byte("party:" + name))
	key := secp256k1.PrivKeyFromBytes(seed[:])
	pub := key.PubKey().SerializeCompressed()
	return &Party{
		Name:     name,
		Key:      key,
		PubKey:   pub,
		Identity: signature.IdentityHash(signature.NewSecp256k1Provider(), pub),
	}
}

// Block signs digest
func (p *Party) Block(digest [32]byte) record.SignatureBlock {
	return signature.SignBlock(p.Key, digest)
}

// Event is a voting event with its organizer and release signers
type Event struct {
	Organizer *Party
	Signers   []*Party
	Metadata  *record.Metadata
}

// NewEvent returns a public event scheduled 100/200/300 with max_revotes=1,
// required_signatures=2, k_anonymity_threshold=3 and three authorized
// signers
func NewEvent(name string) *Event {
	organizer := NewParty(name + "/organizer")
	signers := []*Party{
		NewParty(name + "/signer-0"),
		NewParty(name + "/signer-1"),
		NewParty(name + "/signer-2"),
	}
	md := &record.Metadata{
		EventId:             test.EventIdFromLabel(name),
		Organizer:           organizer.Identity,
		VotingStart:         VotingStart,
		VotingEnd:           VotingEnd,
		AuditEndTime:        AuditEndTime,
		Eligibility:         record.EligibilityPublic,
		MaxRevotes:          1,
		RequiredSignatures:  2,
		KAnonymityThreshold: 3,
	}
	for _, s := range signers {
		md.AuthorizedSigners = append(md.AuthorizedSigners, s.Identity)
	}
	return &Event{
		Organizer: organizer,
		Signers:   signers,
		Metadata:  md,
	}
}

func (e *Event) Id() record.EventId {
	return e.Metadata.EventId
}

func (e *Event) MetadataData() []byte {
	data, err := e.Metadata.Encode()
	if err != nil {
		panic(fmt.Sprintf("encode metadata: %s", err))
	}
	return data
}

func (e *Event) FundData() []byte {
	return record.EncodeEscrowFund(e.Id())
}

// BallotData returns a ballot of voter with the given sequence number
func (e *Event) BallotData(voter *Party, seq uint32) []byte {
	b := &record.VoterBallot{
		EventId:   e.Id(),
		Voter:     voter.Identity,
		Sequence:  seq,
		Timestamp: VotingStart + uint64(seq),
	}
	copy(b.Payload[:], voter.Name)
	return b.Encode()
}

func (e *Event) ResultData(totalVotes uint32) []byte {
	r := &record.ResultCell{
		EventId:    e.Id(),
		TotalVotes: totalVotes,
		Tally:      binary.LittleEndian.AppendUint32(nil, totalVotes),
	}
	data, err := r.Encode()
	if err != nil {
		panic(fmt.Sprintf("encode result: %s", err))
	}
	return data
}

// Tx assembles a transaction snapshot. Every input shares the header
// timestamp given to the builder
type Tx struct {
	event *Event
	snap  *host.Snapshot
	now   uint64
}

// Spend starts a transaction spending the cell of the given kind at now.
// Input 0 is the spent cell. Metadata is provided as a cell dep, except when
// the metadata cell itself is spent
func (e *Event) Spend(kind record.Kind, now uint64) *Tx {
	args := record.ScriptArgs{Kind: kind, EventId: e.Id()}
	tx := e.newTx(args, now)
	switch kind {
	case record.KindEscrowFund:
		tx.Input(e.FundData())
	case record.KindMetadata:
		tx.Input(e.MetadataData())
		return tx
	case record.KindResult:
		tx.Input(e.ResultData(0))
	}
	tx.CellDep(e.MetadataData())
	return tx
}

// Vote starts a ballot transaction for voter at now. It is funded by the
// event escrow and creates one ballot output
func (e *Event) Vote(voter *Party, seq uint32, now uint64) *Tx {
	args := record.ScriptArgs{
		Kind:     record.KindVoterBallot,
		EventId:  e.Id(),
		Voter:    voter.Identity,
		HasVoter: true,
	}
	return e.newTx(args, now).
		Input(e.FundData()).
		Output(e.BallotData(voter, seq)).
		CellDep(e.MetadataData())
}

// Raw starts an empty transaction with arbitrary script args
func (e *Event) Raw(args []byte, now uint64) *Tx {
	tx := &Tx{
		event: e,
		snap:  &host.Snapshot{Args: args},
		now:   now,
	}
	tx.snap.Digest = digestFor(args, now)
	return tx
}

func (e *Event) newTx(args record.ScriptArgs, now uint64) *Tx {
	return e.Raw(args.Encode(), now)
}

func digestFor(args []byte, now uint64) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("votesecure-tx"))
	h.Write(args)
	h.Write(binary.LittleEndian.AppendUint64(nil, now))
	var ret [32]byte
	copy(ret[:], h.Sum(nil))
	return ret
}

func (t *Tx) Input(data []byte) *Tx {
	t.snap.AddInput(host.NewCell(cellCapacity, nil, data), t.now)
	return t
}

func (t *Tx) Output(data []byte) *Tx {
	t.snap.AddOutput(host.NewCell(cellCapacity, nil, data))
	return t
}

func (t *Tx) CellDep(data []byte) *Tx {
	t.snap.AddCellDep(host.NewCell(cellCapacity, nil, data))
	return t
}

// ClearCellDeps drops all cell deps, including the metadata
func (t *Tx) ClearCellDeps() *Tx {
	t.snap.CellDeps = nil
	return t
}

// Witness sets witness 0
func (t *Tx) Witness(data []byte) *Tx {
	t.snap.SetWitness(0, data)
	return t
}

// SignedBy sets witness 0 to a single signature block of p
func (t *Tx) SignedBy(p *Party) *Tx {
	return t.Witness(p.Block(t.Digest()).Encode())
}

// Invited sets witness 0 to the voter block followed by the issuer block
func (t *Tx) Invited(voter *Party, issuer *Party) *Tx {
	wit := record.InviteWitness{
		Voter:  voter.Block(t.Digest()),
		Issuer: issuer.Block(t.Digest()),
	}
	return t.Witness(wit.Encode())
}

// Released sets witness 0 to a threshold witness signed by parties
func (t *Tx) Released(parties ...*Party) *Tx {
	var wit record.ThresholdWitness
	for _, p := range parties {
		wit.Blocks = append(wit.Blocks, p.Block(t.Digest()))
	}
	data, err := wit.Encode()
	if err != nil {
		panic(fmt.Sprintf("encode threshold witness: %s", err))
	}
	return t.Witness(data)
}

func (t *Tx) Digest() [32]byte {
	return t.snap.Digest
}

func (t *Tx) Snapshot() *host.Snapshot {
	return t.snap
}

// Ledger wraps the snapshot in a mock so tests can inject host faults
func (t *Tx) Ledger() *test_ledger.MockLedger {
	return &test_ledger.MockLedger{Snapshot: t.snap}
}
