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
	"fmt"

	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/record"
	"github.com/blinklabs-io/votesecure/signature"
)

// txContext holds the state of a single validation. It is created per call
// to Verify and never shared
type txContext struct {
	engine   *Engine
	ledger   host.Ledger
	args     record.ScriptArgs
	metadata *record.Metadata
	now      uint64
	hasNow   bool
	digest   [32]byte
	hasDig   bool
}

// ruleFunc is a single validation rule. Rules run in order and the first
// failure is the verdict
type ruleFunc func(*txContext) error

func (c *txContext) runRules(rules []ruleFunc) error {
	for _, rule := range rules {
		if err := rule(c); err != nil {
			return err
		}
	}
	return nil
}

// currentTime returns the header timestamp of the first input
func (c *txContext) currentTime() (uint64, error) {
	if c.hasNow {
		return c.now, nil
	}
	now, err := c.ledger.HeaderTimestamp(0)
	if err != nil {
		return 0, hostError("failed to load header timestamp", nil, err)
	}
	c.now = now
	c.hasNow = true
	return now, nil
}

func (c *txContext) txDigest() ([32]byte, error) {
	if c.hasDig {
		return c.digest, nil
	}
	digest, err := c.ledger.TransactionDigest()
	if err != nil {
		return [32]byte{}, hostError("failed to load transaction digest", nil, err)
	}
	c.digest = digest
	c.hasDig = true
	return digest, nil
}

// witness loads a witness. A witness the host does not have is reported as
// absent rather than as an error
func (c *txContext) witness(index int) ([]byte, bool, error) {
	data, err := c.ledger.LoadWitness(index)
	if err != nil {
		if errors.Is(err, host.ErrIndexOutOfBound) ||
			errors.Is(err, host.ErrItemMissing) {
			return nil, false, nil
		}
		return nil, false, hostError(
			"failed to load witness",
			map[string]any{"index": index},
			err,
		)
	}
	if len(data) > record.WitnessCapacity {
		return nil, false, newError(
			CodeEncoding,
			"witness exceeds capacity",
			map[string]any{"index": index, "length": len(data)},
			record.ErrOversized,
		)
	}
	return data, true, nil
}

// verifyIdentity checks that witness 0 starts with a signature block of the
// given identity over the transaction digest. Any failure is reported with
// the given code
func (c *txContext) verifyIdentity(
	expected record.IdentityHash,
	code ErrorCode,
	role string,
) error {
	data, ok, err := c.witness(0)
	if err != nil {
		return err
	}
	if !ok {
		return newError(code, role+" signature missing", nil, nil)
	}
	blk, err := record.ParseSignatureBlock(data)
	if err != nil {
		return newError(code, role+" signature malformed", nil, err)
	}
	digest, err := c.txDigest()
	if err != nil {
		return err
	}
	if err := signature.VerifyBlock(c.engine.provider, blk, expected, digest); err != nil {
		return newError(
			code,
			fmt.Sprintf("%s signature rejected", role),
			map[string]any{"expected": expected.String()},
			err,
		)
	}
	return nil
}

// verifyOrganizer requires the event organizer signature in witness 0
func (c *txContext) verifyOrganizer() error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	return c.verifyIdentity(md.Organizer, CodeUnauthorizedWithdrawal, "organizer")
}
