// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client is a Go client for the VoteUp API that behaves like one
participant's browser profile.

A Client wraps a participant.Store, so the token persists across runs and
local "already voted" marks are consulted before submitting:

	c := client.New("http://localhost:8080", "/home/me/.voteup.json")

	vote, err := c.FetchVote(ctx, voteID)
	...
	err = c.Submit(ctx, voteID, []models.Answer{{OptionID: optID}})

Submit runs the same answer validation as the server (the ingest package)
and the same eligibility policy (the eligibility package), so most
rejections are caught without a network write. The server remains
authoritative; a concurrent duplicate still comes back as an error.

Live subscribes to the websocket change feed:

	err := c.Live(ctx, voteID, func() {
		results, _ := c.FetchResults(ctx, voteID)
		render(results)
	})

Notifications carry no payload; clients re-fetch results on each one.
*/
package client
