// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package eligibility decides whether a participant may still submit for a
// vote, favoring the authoritative remote response set over the optimistic
// local "already voted" mark while still honoring the mark when remote
// data is stale.
package eligibility
