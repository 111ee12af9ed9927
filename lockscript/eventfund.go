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
	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/record"
)

// validateEventFund allows spending the escrow fund during voting only to pay
// for a ballot, and after the audit period only to the organizer
func (c *txContext) validateEventFund() error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	now, err := c.currentTime()
	if err != nil {
		return err
	}
	switch {
	case md.InVotingWindow(now):
		found, err := c.hasRecord(host.SourceOutput, record.KindVoterBallot)
		if err != nil {
			return err
		}
		if !found {
			return newError(
				CodeFundMisuse,
				"fund spent during voting without creating a ballot",
				map[string]any{"now": now},
				nil,
			)
		}
		return nil
	case md.AuditEnded(now):
		return c.verifyOrganizer()
	default:
		return newError(
			CodeInvalidTiming,
			"fund spent outside the voting window and before audit end",
			map[string]any{
				"now":            now,
				"voting_start":   md.VotingStart,
				"voting_end":     md.VotingEnd,
				"audit_end_time": md.AuditEndTime,
			},
			nil,
		)
	}
}
