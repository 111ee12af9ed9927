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

// releaseRules are checked in order when a result cell is spent before the
// audit period ends. The tally itself is not verified
var releaseRules = []ruleFunc{
	releaseValidateTimelock,
	releaseValidateSignatures,
	releaseValidateKAnonymity,
}

func (c *txContext) validateResult() error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	now, err := c.currentTime()
	if err != nil {
		return err
	}
	if md.AuditEnded(now) {
		return c.verifyOrganizer()
	}
	return c.runRules(releaseRules)
}

func releaseValidateTimelock(c *txContext) error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	now, err := c.currentTime()
	if err != nil {
		return err
	}
	if now < md.VotingEnd {
		return newError(
			CodeTimelockNotExpired,
			"results are locked until voting ends",
			map[string]any{"now": now, "voting_end": md.VotingEnd},
			nil,
		)
	}
	return nil
}

func releaseValidateSignatures(c *txContext) error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	required := int(md.RequiredSignatures)
	data, _, err := c.witness(0)
	if err != nil {
		return err
	}
	count := record.ThresholdCount(data)
	if count < required {
		return newError(
			CodeInsufficientSignatures,
			"not enough release signatures",
			map[string]any{"count": count, "required": required},
			nil,
		)
	}
	wit, err := record.ParseThresholdWitness(data)
	if err != nil {
		return newError(CodeEncoding, "malformed threshold witness", nil, err)
	}
	if len(wit.Blocks) == 0 {
		return nil
	}
	digest, err := c.txDigest()
	if err != nil {
		return err
	}
	seen := make(map[record.IdentityHash]struct{}, len(wit.Blocks))
	for i, blk := range wit.Blocks {
		id := signature.IdentityHash(c.engine.provider, blk.PublicKey[:])
		details := map[string]any{"index": i, "signer": id.String()}
		if !md.IsAuthorizedSigner(id) {
			return newError(CodeInvalidSignature, "signer not authorized", details, nil)
		}
		if _, ok := seen[id]; ok {
			return newError(CodeInvalidSignature, "duplicate signer", details, nil)
		}
		seen[id] = struct{}{}
		if err := signature.VerifyBlock(c.engine.provider, blk, id, digest); err != nil {
			return newError(CodeInvalidSignature, "release signature rejected", details, err)
		}
	}
	return nil
}

func releaseValidateKAnonymity(c *txContext) error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	if md.KAnonymityThreshold == 0 {
		return nil
	}
	voters, err := c.countDistinctVoters(host.SourceInput)
	if err != nil {
		return err
	}
	if voters < int(md.KAnonymityThreshold) {
		return newError(
			CodeKAnonymityViolation,
			"too few distinct voters to release results",
			map[string]any{
				"voters":    voters,
				"threshold": md.KAnonymityThreshold,
			},
			nil,
		)
	}
	return nil
}
