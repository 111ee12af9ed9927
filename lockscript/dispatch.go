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
	"github.com/blinklabs-io/votesecure/record"
)

// dispatch routes to the validator for the cell kind in the script args
func (c *txContext) dispatch() error {
	switch c.args.Kind {
	case record.KindEscrowFund:
		return c.validateEventFund()
	case record.KindMetadata:
		return c.validateMetadata()
	case record.KindVoterBallot:
		if !c.args.HasVoter || c.args.Voter.IsZero() {
			return newError(
				CodeInvalidArgs,
				"voter ballot args carry no voter identity",
				nil,
				nil,
			)
		}
		return c.validateVoterBallot()
	case record.KindResult:
		return c.validateResult()
	default:
		return newError(
			CodeInvalidArgs,
			"unknown cell kind",
			map[string]any{"kind": uint8(c.args.Kind)},
			nil,
		)
	}
}
