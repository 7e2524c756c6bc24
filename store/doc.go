// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the PostgreSQL persistence layer.

The Store exposes the minimal contract the rest of the system needs:

	FetchVote(ctx, id)          // definition + options + participant count
	FetchResponses(ctx, id)     // all rows, unfiltered
	InsertResponses(ctx, rows)  // one submission, atomically
	DeleteVote(ctx, id)         // cascades options and responses
	SetOpen(ctx, id, open)      // the is_open gate

plus CreateVote, UpdateVote, ListVotesByHost, ParticipantCount, and
HasResponded for the HTTP surface.

InsertResponses re-verifies the open gate and the participant's prior
submission inside its transaction, so a vote closing (or a duplicate
arriving) between the handler's check and the write is still rejected
with models.ErrVoteClosed / models.ErrAlreadyResponded.
*/
package store
