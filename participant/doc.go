// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package participant manages the pseudo-anonymous participant identity.

A Store is a file-persisted profile holding one token (global across
votes) and per-vote "already voted" marks:

	store := participant.Open(".voteup.json")
	token := store.Token()          // same value on every call
	store.MarkVoted(voteID)
	store.HasVoteMark(voteID)       // true

The token exists so a given participant is not counted twice and so a
participant can be shown their own previous response. It is trivially
bypassable (clear the file, use a second machine); that is a known,
accepted limitation, not something this package tries to harden.
*/
package participant
