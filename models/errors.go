// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the backing store and submission path.
var (
	ErrVoteNotFound     = errors.New("vote not found")
	ErrVoteClosed       = errors.New("vote is not accepting responses")
	ErrAlreadyResponded = errors.New("participant has already responded")
)

// ValidationCode identifies the rule a submission violated. Codes are
// stable strings surfaced to clients alongside the HTTP error message.
type ValidationCode string

const (
	InvalidOptionCount  ValidationCode = "invalid_option_count"
	TooManySelections   ValidationCode = "too_many_selections"
	DuplicateOption     ValidationCode = "duplicate_option"
	UnknownOption       ValidationCode = "unknown_option"
	IncompleteRanking   ValidationCode = "incomplete_ranking"
	InvalidRankSequence ValidationCode = "invalid_rank_sequence"
	OutOfRange          ValidationCode = "out_of_range"
	InvalidStep         ValidationCode = "invalid_step"
)

// ValidationError reports a malformed submission. It is always recoverable:
// nothing is persisted and the submitter can correct and retry.
type ValidationError struct {
	Code   ValidationCode
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Validationf builds a ValidationError with a formatted detail message.
func Validationf(code ValidationCode, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Detail: fmt.Sprintf(format, args...)}
}
