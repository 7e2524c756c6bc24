// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the VoteUp API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{...})

# Endpoints

Health and observability:

	GET /health
	GET /metrics

Vote management (host, requires X-Host-Key except create/list):

	POST   /votes             - Create vote (returns host_key)
	GET    /hosts/votes       - List votes for X-Host-ID
	PATCH  /votes/{id}        - Edit title, description, options
	POST   /votes/{id}/status - Open or close voting
	DELETE /votes/{id}        - Delete vote and its data

Participation (public, uses X-Participant-Token):

	GET  /votes/{id}              - Vote definition and options
	POST /votes/{id}/responses    - Submit answers
	GET  /votes/{id}/responses    - Raw responses
	GET  /votes/{id}/responses/me - Caller's own responses
	GET  /votes/{id}/results      - Aggregated results

Live feed:

	GET /votes/{id}/live - Websocket change notifications

# Handler Initialization

The router creates handler instances with dependency injection:

	voteHandler := handlers.NewVoteHandler(deps.Store, deps.Cleaner, deps.Config)
	responseHandler := handlers.NewResponseHandler(deps.Store, deps.Hub, deps.Publisher, deps.Metrics, deps.Config)
	liveHandler := handlers.NewLiveHandler(deps.Store, deps.Hub, deps.Metrics)

The live endpoint is registered without the logging wrapper; a websocket
connection would otherwise log a bogus duration on every upgrade.
*/
package router
