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
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/blinklabs-io/votesecure/record"
)

func inspectCommand() cli.Command {
	return cli.Command{
		Name:      "inspect",
		Usage:     "decode a cell data record or script args given in hex",
		ArgsUsage: "[<kind>|args] <hex>",
		Action: func(c *cli.Context) error {
			var kindArg, hexArg string
			switch len(c.Args()) {
			case 1:
				hexArg = c.Args().Get(0)
			case 2:
				kindArg = c.Args().Get(0)
				hexArg = c.Args().Get(1)
			default:
				return errors.New("expected [<kind>|args] <hex>")
			}
			data, err := hex.DecodeString(strings.TrimPrefix(hexArg, "0x"))
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}
			view, err := inspectRecord(kindArg, data)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, string(out))
			return nil
		},
	}
}

type signatureView struct {
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

func newSignatureView(blk record.SignatureBlock) signatureView {
	return signatureView{
		PublicKey: hex.EncodeToString(blk.PublicKey[:]),
		Signature: hex.EncodeToString(blk.Signature[:]),
	}
}

// inspectRecord decodes data as the named kind. Without a kind name the kind
// tag of the record is used
func inspectRecord(kindArg string, data []byte) (map[string]any, error) {
	if kindArg == "args" {
		args, err := record.ParseScriptArgs(data)
		if err != nil {
			return nil, err
		}
		ret := map[string]any{
			"kind":     args.Kind.String(),
			"event_id": args.EventId,
		}
		if args.HasVoter {
			ret["voter"] = args.Voter
		}
		return ret, nil
	}
	kind, err := record.PeekKind(data)
	if err != nil {
		return nil, err
	}
	if kindArg != "" {
		expected, err := record.ParseKind(kindArg)
		if err != nil {
			return nil, err
		}
		if expected != kind {
			return nil, fmt.Errorf("%w: expected %s, found %s", record.ErrWrongKind, expected, kind)
		}
	}
	switch kind {
	case record.KindEscrowFund:
		eventId, err := record.PeekEventId(data)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind":     kind.String(),
			"event_id": eventId,
		}, nil
	case record.KindMetadata:
		md, err := record.ParseMetadata(data)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind":                  kind.String(),
			"event_id":              md.EventId,
			"organizer":             md.Organizer,
			"voting_start":          md.VotingStart,
			"voting_end":            md.VotingEnd,
			"audit_end_time":        md.AuditEndTime,
			"eligibility":           md.Eligibility.String(),
			"max_revotes":           md.MaxRevotes,
			"required_signatures":   md.RequiredSignatures,
			"k_anonymity_threshold": md.KAnonymityThreshold,
			"frontend_code_hash":    hex.EncodeToString(md.FrontendCodeHash[:]),
			"authorized_signers":    md.AuthorizedSigners,
			"eligibility_data":      hex.EncodeToString(md.EligibilityData),
		}, nil
	case record.KindVoterBallot:
		b, err := record.ParseVoterBallot(data)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind":      kind.String(),
			"event_id":  b.EventId,
			"voter":     b.Voter,
			"sequence":  b.Sequence,
			"timestamp": b.Timestamp,
			"payload":   hex.EncodeToString(b.Payload[:]),
		}, nil
	case record.KindResult:
		r, err := record.ParseResultCell(data)
		if err != nil {
			return nil, err
		}
		sigs := make([]signatureView, 0, len(r.Signatures))
		for _, blk := range r.Signatures {
			sigs = append(sigs, newSignatureView(blk))
		}
		return map[string]any{
			"kind":        kind.String(),
			"event_id":    r.EventId,
			"total_votes": r.TotalVotes,
			"tally":       hex.EncodeToString(r.Tally),
			"signatures":  sigs,
		}, nil
	default:
		return nil, fmt.Errorf("unknown kind tag %d", uint8(kind))
	}
}
