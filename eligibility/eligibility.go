// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eligibility

import "github.com/voteup/server/models"

// Marks is the local "already voted" state consulted as a fallback when
// remote data is stale. *participant.Store satisfies it.
type Marks interface {
	HasVoteMark(voteID string) bool
	MarkVoted(voteID string)
}

// HasResponded reports whether any remote response row carries the given
// participant token.
func HasResponded(responses []models.VoteResponse, token string) bool {
	for _, r := range responses {
		if r.ParticipantToken == token {
			return true
		}
	}
	return false
}

// CanSubmit decides whether the participant may still submit for the vote.
// The checks run in order:
//
//  1. A closed vote is terminal; no state is consulted.
//  2. A remote row matching the token wins over everything, and the local
//     mark is set as a side effect to keep local and remote state
//     consistent.
//  3. An existing local mark blocks submission even without remote
//     confirmation, covering the race between optimistic marking and the
//     remote round-trip (fail closed, not open).
//  4. Otherwise the participant is eligible.
//
// marks may be nil when no local state exists, e.g. on the server side
// where the remote response set is the only source of truth.
func CanSubmit(vote *models.Vote, token string, remote []models.VoteResponse, marks Marks) bool {
	if !vote.IsOpen {
		return false
	}
	if HasResponded(remote, token) {
		if marks != nil {
			marks.MarkVoted(vote.ID)
		}
		return false
	}
	if marks != nil && marks.HasVoteMark(vote.ID) {
		return false
	}
	return true
}
