// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package livefeed

import "sync"

// Hub fans out "something changed, re-pull" signals to subscribers keyed
// by vote ID. Signals carry no payload: the consumer re-fetches the
// response set and re-aggregates, which is simpler and more robust than
// applying incremental deltas (no drift if a notification is ever missed).
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]bool
}

// Subscription is one consumer's signal channel for a single vote.
type Subscription struct {
	hub    *Hub
	voteID string
	ch     chan struct{}
	closed bool
}

// Changed returns the signal channel. It is closed when the subscription
// is torn down. The channel has a buffer of one: bursts of notifications
// coalesce into a single pending signal, which is fine because
// aggregation is cheap and idempotent.
func (s *Subscription) Changed() <-chan struct{} {
	return s.ch
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]bool)}
}

// Subscribe registers a new signal channel for the given vote.
func (h *Hub) Subscribe(voteID string) *Subscription {
	sub := &Subscription{
		hub:    h,
		voteID: voteID,
		ch:     make(chan struct{}, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.subs[voteID]
	if set == nil {
		set = make(map[*Subscription]bool)
		h.subs[voteID] = set
	}
	set[sub] = true

	return sub
}

// Notify signals every subscriber of the given vote. The send never
// blocks: a subscriber with a signal already pending does not get a
// second one.
func (h *Hub) Notify(voteID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[voteID] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// Unsubscribe removes the subscription and closes its channel. Safe to
// call multiple times.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if sub.closed {
		return
	}
	sub.closed = true

	if set := h.subs[sub.voteID]; set != nil {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.voteID)
		}
	}
	close(sub.ch)
}
