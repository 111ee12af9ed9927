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

	"github.com/blinklabs-io/votesecure/record"
)

// ErrorCode is the status reported to the host. 0 is success and every
// failure kind has its own negative code
type ErrorCode int8

const (
	CodeSuccess                ErrorCode = 0
	CodeInvalidArgs            ErrorCode = -1
	CodeEncoding               ErrorCode = -2
	CodeHostQueryFailure       ErrorCode = -3
	CodeMetadataNotFound       ErrorCode = -4
	CodeInvalidTiming          ErrorCode = -5
	CodeVoterIneligible        ErrorCode = -6
	CodeRevoteLimitExceeded    ErrorCode = -7
	CodeTimelockNotExpired     ErrorCode = -8
	CodeInsufficientSignatures ErrorCode = -9
	CodeUnauthorizedWithdrawal ErrorCode = -10
	CodeFundMisuse             ErrorCode = -11
	CodeMetadataImmutable      ErrorCode = -12
	CodeKAnonymityViolation    ErrorCode = -13
	CodeInvalidSignature       ErrorCode = -14
)

var errorCodeNames = map[ErrorCode]string{
	CodeSuccess:                "Success",
	CodeInvalidArgs:            "InvalidArgs",
	CodeEncoding:               "Encoding",
	CodeHostQueryFailure:       "HostQueryFailure",
	CodeMetadataNotFound:       "MetadataNotFound",
	CodeInvalidTiming:          "InvalidTiming",
	CodeVoterIneligible:        "VoterIneligible",
	CodeRevoteLimitExceeded:    "RevoteLimitExceeded",
	CodeTimelockNotExpired:     "TimelockNotExpired",
	CodeInsufficientSignatures: "InsufficientSignatures",
	CodeUnauthorizedWithdrawal: "UnauthorizedWithdrawal",
	CodeFundMisuse:             "FundMisuse",
	CodeMetadataImmutable:      "MetadataImmutable",
	CodeKAnonymityViolation:    "KAnonymityViolation",
	CodeInvalidSignature:       "InvalidSignature",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int8(c))
}

// Error is a lock script rejection
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so callers can use the sentinels
// below with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for use with errors.Is. Validation never returns these directly
var (
	ErrInvalidArgs            = &Error{Code: CodeInvalidArgs, Message: "invalid script args"}
	ErrEncoding               = &Error{Code: CodeEncoding, Message: "malformed record"}
	ErrHostQueryFailure       = &Error{Code: CodeHostQueryFailure, Message: "host query failed"}
	ErrMetadataNotFound       = &Error{Code: CodeMetadataNotFound, Message: "event metadata not found"}
	ErrInvalidTiming          = &Error{Code: CodeInvalidTiming, Message: "operation outside its time window"}
	ErrVoterIneligible        = &Error{Code: CodeVoterIneligible, Message: "voter is not eligible"}
	ErrRevoteLimitExceeded    = &Error{Code: CodeRevoteLimitExceeded, Message: "revote limit exceeded"}
	ErrTimelockNotExpired     = &Error{Code: CodeTimelockNotExpired, Message: "result timelock not expired"}
	ErrInsufficientSignatures = &Error{Code: CodeInsufficientSignatures, Message: "not enough release signatures"}
	ErrUnauthorizedWithdrawal = &Error{Code: CodeUnauthorizedWithdrawal, Message: "organizer authorization missing"}
	ErrFundMisuse             = &Error{Code: CodeFundMisuse, Message: "event fund misuse"}
	ErrMetadataImmutable      = &Error{Code: CodeMetadataImmutable, Message: "metadata is immutable"}
	ErrKAnonymityViolation    = &Error{Code: CodeKAnonymityViolation, Message: "anonymity set too small"}
	ErrInvalidSignature       = &Error{Code: CodeInvalidSignature, Message: "invalid release signature"}
)

func newError(
	code ErrorCode,
	message string,
	details map[string]any,
	cause error,
) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// codecError maps a record decoding failure to the matching error kind
func codecError(message string, cause error) *Error {
	if errors.Is(cause, record.ErrInvalidArgs) {
		return newError(CodeInvalidArgs, message, nil, cause)
	}
	return newError(CodeEncoding, message, nil, cause)
}

func hostError(message string, details map[string]any, cause error) *Error {
	return newError(CodeHostQueryFailure, message, details, cause)
}

// StatusCode converts a verdict into the status reported to the host.
// Anything that is not a lock script error is treated as a host fault
func StatusCode(err error) int8 {
	if err == nil {
		return int8(CodeSuccess)
	}
	var lsErr *Error
	if errors.As(err, &lsErr) {
		return int8(lsErr.Code)
	}
	return int8(CodeHostQueryFailure)
}
