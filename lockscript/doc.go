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

// Package lockscript implements the VoteSecure lock script. Given a read-only
// view of an assembled transaction it decides whether the transaction is a
// legal state transition for the cell kind named in the script args, and
// reports the verdict as an int8 status code.
//
// Four cell kinds are guarded:
//
//   - EventFund: spent during voting only to create a ballot, after the audit
//     period only by the organizer
//   - Metadata: immutable until the audit period ends, then organizer only
//   - VoterBallot: schedule, eligibility, revote limit and funding rules
//   - Result: threshold-signed release after voting ends with a k-anonymity
//     floor, organizer cleanup after the audit period
//
// Every ledger scan is bounded (see Limits), and validation never modifies
// the ledger or any package state.
package lockscript
