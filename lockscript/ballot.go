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
	"github.com/blinklabs-io/votesecure/signature"
)

// ballotRules are checked in order when a voter ballot cell is involved
var ballotRules = []ruleFunc{
	ballotValidateSchedule,
	ballotValidateEligibility,
	ballotValidateRevoteLimit,
	ballotValidateFunding,
}

func (c *txContext) validateVoterBallot() error {
	return c.runRules(ballotRules)
}

func ballotValidateSchedule(c *txContext) error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	now, err := c.currentTime()
	if err != nil {
		return err
	}
	if !md.InVotingWindow(now) {
		return newError(
			CodeInvalidTiming,
			"ballot outside the voting window",
			map[string]any{
				"now":          now,
				"voting_start": md.VotingStart,
				"voting_end":   md.VotingEnd,
			},
			nil,
		)
	}
	return nil
}

func ballotValidateEligibility(c *txContext) error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	switch md.Eligibility {
	case record.EligibilityInviteKey:
		return c.verifyInvite(md)
	default:
		return c.verifyIdentity(c.args.Voter, CodeVoterIneligible, "voter")
	}
}

// verifyInvite checks the voter signature and the invite issued by the
// organizer, both over the transaction digest
func (c *txContext) verifyInvite(md *record.Metadata) error {
	data, ok, err := c.witness(0)
	if err != nil {
		return err
	}
	if !ok {
		return newError(CodeVoterIneligible, "invite witness missing", nil, nil)
	}
	wit, err := record.ParseInviteWitness(data)
	if err != nil {
		return newError(CodeVoterIneligible, "invite witness malformed", nil, err)
	}
	digest, err := c.txDigest()
	if err != nil {
		return err
	}
	p := c.engine.provider
	if err := signature.VerifyBlock(p, wit.Voter, c.args.Voter, digest); err != nil {
		return newError(
			CodeVoterIneligible,
			"voter signature rejected",
			map[string]any{"voter": c.args.Voter.String()},
			err,
		)
	}
	if err := signature.VerifyBlock(p, wit.Issuer, md.Organizer, digest); err != nil {
		return newError(
			CodeVoterIneligible,
			"invite issuer signature rejected",
			map[string]any{"organizer": md.Organizer.String()},
			err,
		)
	}
	return nil
}

func ballotValidateRevoteLimit(c *txContext) error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	if md.RevotesUnlimited() {
		return nil
	}
	count, err := c.countVoterBallots(host.SourceInput, c.args.Voter)
	if err != nil {
		return err
	}
	if count >= int(md.MaxRevotes) {
		return newError(
			CodeRevoteLimitExceeded,
			"voter has no revotes left",
			map[string]any{
				"voter":       c.args.Voter.String(),
				"ballots":     count,
				"max_revotes": md.MaxRevotes,
			},
			nil,
		)
	}
	return nil
}

func ballotValidateFunding(c *txContext) error {
	found, err := c.hasRecord(host.SourceInput, record.KindEscrowFund)
	if err != nil {
		return err
	}
	if !found {
		return newError(
			CodeFundMisuse,
			"ballot not paid from the event fund",
			nil,
			nil,
		)
	}
	return nil
}
