// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally aggregates a vote's flat response set into summary results.

# Aggregation

Aggregate is a pure function from (vote definition, responses) to a
ResultSet:

	rs := tally.Aggregate(vote, responses)

It never mutates its inputs and is idempotent, which makes it safe to
re-run on every live-update signal without reconciling deltas.

# Shape by Vote Type

  - single/multiple/binary: per-option count and percentage. The
    percentage denominator is total response rows, so multiple-choice
    percentages may sum past 100 (intentional, matching the product's
    original behavior).
  - ranking: per-option mean rank, sorted ascending, unranked options
    last, display_order breaking ties.
  - scale: overall mean plus a histogram with one bucket for every step
    value between scale_min and scale_max, zero-count buckets included.

# Degraded Input

Rows referencing unknown option IDs are excluded from tallies rather than
raising; upstream enforcement of response integrity is defense in depth,
not a precondition here.
*/
package tally
