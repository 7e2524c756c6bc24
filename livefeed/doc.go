// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package livefeed is the in-process change feed for new-response events.

	hub := livefeed.NewHub()
	sub := hub.Subscribe(voteID)
	defer hub.Unsubscribe(sub)

	for range sub.Changed() {
		// re-fetch responses, re-aggregate
	}

The submit path calls hub.Notify(voteID) after each accepted submission;
the live websocket endpoint bridges these signals to connected clients.
Notifications are coalescing and payload-free by design.
*/
package livefeed
