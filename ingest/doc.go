// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest validates and normalizes one submission against a vote
definition before anything is persisted.

	rows, err := ingest.BuildSubmission(vote, token, answers)

The rules by vote type:

  - single/binary: exactly one option, belonging to the vote
  - multiple: 1..max_selections distinct options, all belonging to the vote
  - ranking: a rank for every option exactly once, ranks forming a
    permutation of 1..N
  - scale: one value within [scale_min, scale_max] on a step boundary

Failures are typed *models.ValidationError values with a stable code per
rule. BuildSubmission is pure and synchronous, so every rule is unit
testable in isolation.
*/
package ingest
