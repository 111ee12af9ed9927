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

package lockscript

import (
	"errors"
	"iter"

	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/record"
)

// Cell is one entry of a scan
type Cell struct {
	Source host.Source
	Index  int
	Data   []byte
}

// Cells lazily yields the data of at most limit cells of src. The sequence
// ends at the host's end-of-collection signal. Any other host error is
// yielded once and ends the sequence
func Cells(l host.Ledger, src host.Source, limit int) iter.Seq2[Cell, error] {
	return func(yield func(Cell, error) bool) {
		for i := range limit {
			data, err := l.LoadCell(src, i, host.FieldData)
			if errors.Is(err, host.ErrIndexOutOfBound) {
				return
			}
			if err != nil {
				yield(
					Cell{Source: src, Index: i},
					hostError(
						"failed to load cell data",
						map[string]any{"source": src.String(), "index": i},
						err,
					),
				)
				return
			}
			if !yield(Cell{Source: src, Index: i, Data: data}, nil) {
				return
			}
		}
	}
}

// MatchingCells filters Cells down to records of the given kind and event.
// A matching record larger than the capacity of its kind is an Encoding
// error and ends the sequence
func MatchingCells(
	l host.Ledger,
	src host.Source,
	kind record.Kind,
	eventId record.EventId,
	limit int,
) iter.Seq2[Cell, error] {
	return func(yield func(Cell, error) bool) {
		for cell, err := range Cells(l, src, limit) {
			if err != nil {
				yield(cell, err)
				return
			}
			if !record.Matches(cell.Data, kind, eventId) {
				continue
			}
			if err := record.CheckCapacity(cell.Data, kind); err != nil {
				yield(
					cell,
					newError(
						CodeEncoding,
						"record exceeds capacity",
						map[string]any{"source": src.String(), "index": cell.Index},
						err,
					),
				)
				return
			}
			if !yield(cell, nil) {
				return
			}
		}
	}
}

// findRecord returns the first matching record of src
func (c *txContext) findRecord(
	src host.Source,
	kind record.Kind,
) (Cell, bool, error) {
	for cell, err := range MatchingCells(c.ledger, src, kind, c.args.EventId, c.engine.limits.UniqueScan) {
		if err != nil {
			return Cell{}, false, err
		}
		return cell, true, nil
	}
	return Cell{}, false, nil
}

func (c *txContext) hasRecord(src host.Source, kind record.Kind) (bool, error) {
	_, found, err := c.findRecord(src, kind)
	return found, err
}

// ballots yields the voter of every ballot of the event in src
func (c *txContext) ballots(src host.Source) iter.Seq2[record.IdentityHash, error] {
	return func(yield func(record.IdentityHash, error) bool) {
		for cell, err := range MatchingCells(c.ledger, src, record.KindVoterBallot, c.args.EventId, c.engine.limits.CountScan) {
			if err != nil {
				yield(record.IdentityHash{}, err)
				return
			}
			ballot, err := record.ParseVoterBallot(cell.Data)
			if err != nil {
				yield(
					record.IdentityHash{},
					newError(
						CodeEncoding,
						"malformed voter ballot",
						map[string]any{"source": src.String(), "index": cell.Index},
						err,
					),
				)
				return
			}
			if !yield(ballot.Voter, nil) {
				return
			}
		}
	}
}

// countVoterBallots counts the ballots of one voter in src
func (c *txContext) countVoterBallots(
	src host.Source,
	voter record.IdentityHash,
) (int, error) {
	count := 0
	for v, err := range c.ballots(src) {
		if err != nil {
			return 0, err
		}
		if v == voter {
			count++
		}
	}
	return count, nil
}

// countDistinctVoters counts distinct voter identities among the ballots in src
func (c *txContext) countDistinctVoters(src host.Source) (int, error) {
	seen := make(map[record.IdentityHash]struct{})
	for v, err := range c.ballots(src) {
		if err != nil {
			return 0, err
		}
		seen[v] = struct{}{}
	}
	return len(seen), nil
}
