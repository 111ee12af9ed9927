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
	"log/slog"

	"github.com/blinklabs-io/votesecure/host"
	"github.com/blinklabs-io/votesecure/record"
	"github.com/blinklabs-io/votesecure/signature"
)

// Limits caps every ledger scan
type Limits struct {
	// UniqueScan bounds scans for a single matching record (metadata,
	// funding cell, ballot output)
	UniqueScan int
	// CountScan bounds scans that count ballots
	CountScan int
}

// DefaultLimits caps single-record lookups at 16 cells and counting scans at
// 1000 cells per source
var DefaultLimits = Limits{
	UniqueScan: 16,
	CountScan:  1000,
}

// Engine validates transactions. It only holds configuration and may be
// shared between goroutines validating different ledgers
type Engine struct {
	provider signature.Provider
	logger   *slog.Logger
	limits   Limits
}

// New returns an Engine verifying with secp256k1, logging nowhere and using
// DefaultLimits unless the options say otherwise
func New(opts ...OptionFunc) *Engine {
	e := &Engine{
		provider: signature.NewSecp256k1Provider(),
		limits:   DefaultLimits,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.provider == nil {
		e.provider = signature.NewSecp256k1Provider()
	}
	return e
}

// Verify validates the transaction visible through l and returns nil when it
// is a legal state transition for the cell kind named in the script args
func (e *Engine) Verify(l host.Ledger) error {
	rawArgs, err := l.ScriptArgs()
	if err != nil {
		return e.verdict(
			nil,
			newError(CodeInvalidArgs, "failed to load script args", nil, err),
		)
	}
	args, err := record.ParseScriptArgs(rawArgs)
	if err != nil {
		return e.verdict(nil, codecError("failed to parse script args", err))
	}
	ctx := &txContext{
		engine: e,
		ledger: l,
		args:   args,
	}
	return e.verdict(&args, ctx.dispatch())
}

// Run validates the transaction and returns the status code for the host
func (e *Engine) Run(l host.Ledger) int8 {
	return StatusCode(e.Verify(l))
}

func (e *Engine) verdict(args *record.ScriptArgs, err error) error {
	attrs := []any{"code", StatusCode(err)}
	if args != nil {
		attrs = append(
			attrs,
			"kind", args.Kind.String(),
			"event_id", args.EventId.String(),
		)
	}
	if err != nil {
		e.logger.Debug("transaction rejected", append(attrs, "error", err)...)
		return err
	}
	e.logger.Debug("transaction accepted", attrs...)
	return nil
}

// Verify validates l with a default engine
func Verify(l host.Ledger) error {
	return New().Verify(l)
}

// Run validates l with a default engine and returns the host status code
func Run(l host.Ledger) int8 {
	return New().Run(l)
}
