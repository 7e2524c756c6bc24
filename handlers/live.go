// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/voteup/server/livefeed"
	"github.com/voteup/server/metrics"
	"github.com/voteup/server/middleware"
	"github.com/voteup/server/models"
	"github.com/voteup/server/store"
)

type LiveHandler struct {
	store   *store.Store
	hub     *livefeed.Hub
	metrics *metrics.ServerMetrics
}

func NewLiveHandler(st *store.Store, hub *livefeed.Hub, m *metrics.ServerMetrics) *LiveHandler {
	return &LiveHandler{store: st, hub: hub, metrics: m}
}

// LiveEvent is one message on the live feed. Events carry no tally
// payload: the consumer re-fetches /results on each one.
type LiveEvent struct {
	Event  string `json:"event"`
	VoteID string `json:"vote_id"`
}

// Live handles GET /votes/{id}/live
// Upgrades to a websocket and forwards the vote's change signals until
// the client disconnects or the request context ends.
func (h *LiveHandler) Live(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	if _, err := h.store.FetchVote(r.Context(), voteID); err != nil {
		if errors.Is(err, models.ErrVoteNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
			return
		}
		slog.Error("failed to fetch vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Warn("websocket accept failed", "vote_id", voteID, "error", err)
		return
	}
	defer conn.CloseNow()

	// CloseRead discards inbound frames and cancels the context when the
	// client goes away.
	ctx := conn.CloseRead(r.Context())

	sub := h.hub.Subscribe(voteID)
	defer h.hub.Unsubscribe(sub)

	h.metrics.LiveSubscribers.Inc()
	defer h.metrics.LiveSubscribers.Dec()

	slog.Info("live subscriber connected", "vote_id", voteID)

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case _, ok := <-sub.Changed():
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			ev := LiveEvent{Event: "changed", VoteID: voteID}
			if err := wsjson.Write(ctx, conn, ev); err != nil {
				slog.Info("live subscriber disconnected", "vote_id", voteID)
				return
			}
		}
	}
}
