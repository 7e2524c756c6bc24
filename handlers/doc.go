// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the VoteUp API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - VoteHandler: Vote lifecycle (create, read, edit, open/close, delete)
  - ResponseHandler: Submission, raw responses, aggregated results
  - LiveHandler: The websocket live feed

# Vote Lifecycle

Votes are created closed, opened by the host, and closed again when
voting ends. Deleting a vote cascades its options, responses, and any
stored option images.

	POST   /votes              → CreateVote (returns host_key)
	GET    /votes/{id}         → GetVote
	PATCH  /votes/{id}         → UpdateVote
	POST   /votes/{id}/status  → SetStatus (toggle is_open)
	DELETE /votes/{id}         → DeleteVote

Host operations require the X-Host-Key header (X-Host-ID identifies the
host on create/list; authentication proper is external).

# Submission Flow

Participants identify themselves with a client-persisted token:

	POST /votes/{id}/responses     → Submit
	GET  /votes/{id}/responses     → ListResponses
	GET  /votes/{id}/responses/me  → MyResponses
	GET  /votes/{id}/results       → Results

Submit rejects closed votes first, then duplicate participants, then
validates the answers via the ingest package. Accepted submissions
notify the live feed and the optional event publisher.

# Live Feed

	GET /votes/{id}/live → Live (websocket)

Each accepted submission produces one {"event":"changed"} message per
subscriber; clients respond by re-fetching /results. The aggregation in
the tally package is idempotent, so redundant re-fetches are harmless.
*/
package handlers
