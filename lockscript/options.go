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

	"github.com/blinklabs-io/votesecure/signature"
)

// OptionFunc is a type that represents functions that modify the Engine config
type OptionFunc func(*Engine)

// WithProvider specifies the cryptographic provider. The default is the
// secp256k1/Blake2b provider
func WithProvider(provider signature.Provider) OptionFunc {
	return func(e *Engine) {
		e.provider = provider
	}
}

// WithLogger specifies the logger for verdicts. Nothing is logged by default
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLimits specifies the scan caps. Non-positive values keep the defaults
func WithLimits(limits Limits) OptionFunc {
	return func(e *Engine) {
		if limits.UniqueScan > 0 {
			e.limits.UniqueScan = limits.UniqueScan
		}
		if limits.CountScan > 0 {
			e.limits.CountScan = limits.CountScan
		}
	}
}
