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

// Package record encodes and decodes the byte-exact cell data layouts used by
// VoteSecure cells, the lock script arguments and the witness layouts.
//
// All integers are little-endian. Every record starts with a one byte kind tag
// followed by the 32-byte event identifier, so kind-and-event matching never
// needs a full parse:
//
//	args:      [kind:1][event_id:32][voter_identity:20 (optional)]
//	metadata:  [kind:1][event_id:32][organizer:20][voting_start:8][voting_end:8]
//	           [audit_end_time:8][eligibility:1][max_revotes:1][required_sigs:1]
//	           [k_anonymity:2][frontend_code_hash:32][signers:20*n (n<=10)]
//	           [eligibility_data...]
//	ballot:    [kind:1][event_id:32][voter:20][sequence:4][timestamp:8][payload:256]
//	result:    [kind:1][event_id:32][total_votes:4][sig_count:1][tally_len:2]
//	           [tally][signature blocks]
//	fund:      [kind:1][event_id:32]
//
// Parsers never read past the declared buffer capacity of a record kind;
// oversized input is rejected with ErrOversized rather than truncated.
package record
