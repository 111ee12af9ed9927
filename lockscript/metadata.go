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

// metadataSources is the resolver search order. Inputs are needed when the
// metadata cell itself is being consumed
var metadataSources = []host.Source{
	host.SourceCellDep,
	host.SourceInput,
}

// loadMetadata resolves the metadata of the event named in the script args
func (c *txContext) loadMetadata() (*record.Metadata, error) {
	if c.metadata != nil {
		return c.metadata, nil
	}
	for _, src := range metadataSources {
		cell, found, err := c.findRecord(src, record.KindMetadata)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		md, err := record.ParseMetadata(cell.Data)
		if err != nil {
			return nil, newError(
				CodeEncoding,
				"malformed event metadata",
				map[string]any{"source": src.String(), "index": cell.Index},
				err,
			)
		}
		c.engine.logger.Debug(
			"resolved event metadata",
			"event_id", md.EventId.String(),
			"source", src.String(),
			"index", cell.Index,
		)
		c.metadata = md
		return md, nil
	}
	return nil, newError(
		CodeMetadataNotFound,
		"no metadata cell for event",
		map[string]any{"event_id": c.args.EventId.String()},
		nil,
	)
}

// validateMetadata allows consuming the metadata cell only after the audit
// period and only with the organizer signature
func (c *txContext) validateMetadata() error {
	md, err := c.loadMetadata()
	if err != nil {
		return err
	}
	now, err := c.currentTime()
	if err != nil {
		return err
	}
	if !md.AuditEnded(now) {
		return newError(
			CodeMetadataImmutable,
			"metadata is locked until the audit period ends",
			map[string]any{"now": now, "audit_end_time": md.AuditEndTime},
			nil,
		)
	}
	return c.verifyOrganizer()
}
