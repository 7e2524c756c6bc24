// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/voteup/server/cliparse"
	"github.com/voteup/server/event"
	"github.com/voteup/server/ingest"
	"github.com/voteup/server/livefeed"
	"github.com/voteup/server/metrics"
	"github.com/voteup/server/middleware"
	"github.com/voteup/server/models"
	"github.com/voteup/server/store"
	"github.com/voteup/server/tally"
)

type ResponseHandler struct {
	store     *store.Store
	hub       *livefeed.Hub
	publisher event.Publisher
	metrics   *metrics.ServerMetrics
	cfg       cliparse.Config
}

func NewResponseHandler(st *store.Store, hub *livefeed.Hub, pub event.Publisher, m *metrics.ServerMetrics, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{store: st, hub: hub, publisher: pub, metrics: m, cfg: cfg}
}

// Submit handles POST /votes/{id}/responses
// The full submission path: eligibility, validation, transactional
// insert, live-feed notification, optional event publish.
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Participant-Token header required")
		return
	}

	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vote, err := h.store.FetchVote(r.Context(), voteID)
	if errors.Is(err, models.ErrVoteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Closed votes are rejected before any other work.
	if !vote.IsOpen {
		h.metrics.SubmissionsRejected.WithLabelValues("closed").Inc()
		middleware.ErrorResponse(w, http.StatusConflict, "Vote is not accepting responses")
		return
	}

	// Cheap duplicate pre-check; InsertResponses re-verifies inside its
	// transaction, so a race here is still caught.
	responded, err := h.store.HasResponded(r.Context(), voteID, token)
	if err != nil {
		slog.Error("failed to check prior submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if responded {
		h.metrics.SubmissionsRejected.WithLabelValues("duplicate").Inc()
		middleware.ErrorResponse(w, http.StatusConflict, "Participant has already responded")
		return
	}

	rows, err := ingest.BuildSubmission(vote, token, req.Answers)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			h.metrics.SubmissionsRejected.WithLabelValues(string(verr.Code)).Inc()
			middleware.ValidationErrorResponse(w, verr)
			return
		}
		slog.Error("failed to build submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	err = h.store.InsertResponses(r.Context(), rows)
	switch {
	case errors.Is(err, models.ErrVoteClosed):
		h.metrics.SubmissionsRejected.WithLabelValues("closed").Inc()
		middleware.ErrorResponse(w, http.StatusConflict, "Vote is not accepting responses")
		return
	case errors.Is(err, models.ErrAlreadyResponded):
		h.metrics.SubmissionsRejected.WithLabelValues("duplicate").Inc()
		middleware.ErrorResponse(w, http.StatusConflict, "Participant has already responded")
		return
	case err != nil:
		slog.Error("failed to insert responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	h.metrics.SubmissionsAccepted.WithLabelValues(string(vote.Type)).Inc()
	h.hub.Notify(voteID)
	h.publishEvent(vote, token, len(rows))

	slog.Info("submission accepted", "vote_id", voteID, "vote_type", vote.Type, "rows", len(rows))

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		Accepted: len(rows),
		Message:  "Response submitted successfully",
	})
}

// publishEvent emits the submission to the optional event feed. A publish
// failure is logged and otherwise ignored; the submission is already
// durable.
func (h *ResponseHandler) publishEvent(vote *models.Vote, token string, rows int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := h.publisher.PublishSubmission(ctx, event.SubmissionEvent{
		VoteID:           vote.ID,
		VoteType:         vote.Type,
		ParticipantToken: token,
		Rows:             rows,
		SubmittedAt:      time.Now(),
	})
	if err != nil {
		slog.Warn("failed to publish submission event", "vote_id", vote.ID, "error", err)
	}
}

// ListResponses handles GET /votes/{id}/responses
// Returns all raw response rows for the vote.
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	if !h.voteExists(w, r, voteID) {
		return
	}

	responses, err := h.store.FetchResponses(r.Context(), voteID)
	if err != nil {
		slog.Error("failed to fetch responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"responses": responses})
}

// MyResponses handles GET /votes/{id}/responses/me
// Returns the calling participant's own rows, so a returning participant
// can be shown what they previously submitted.
func (h *ResponseHandler) MyResponses(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	token := r.Header.Get("X-Participant-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Participant-Token header required")
		return
	}

	if !h.voteExists(w, r, voteID) {
		return
	}

	responses, err := h.store.FetchResponses(r.Context(), voteID)
	if err != nil {
		slog.Error("failed to fetch responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	mine := []models.VoteResponse{}
	for _, resp := range responses {
		if resp.ParticipantToken == token {
			mine = append(mine, resp)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"responses": mine})
}

// Results handles GET /votes/{id}/results
// Aggregates the current response set. Safe to call repeatedly; live
// consumers hit this endpoint on every change signal.
func (h *ResponseHandler) Results(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	vote, err := h.store.FetchVote(r.Context(), voteID)
	if errors.Is(err, models.ErrVoteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to fetch vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := h.store.FetchResponses(r.Context(), voteID)
	if err != nil {
		slog.Error("failed to fetch responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	start := time.Now()
	resultSet := tally.Aggregate(vote, responses)
	h.metrics.AggregationTime.Observe(time.Since(start).Seconds())

	middleware.JSONResponse(w, http.StatusOK, resultSet)
}

// voteExists writes a 404/500 and returns false when the vote is absent
// or the lookup fails.
func (h *ResponseHandler) voteExists(w http.ResponseWriter, r *http.Request, voteID string) bool {
	_, err := h.store.FetchVote(r.Context(), voteID)
	if errors.Is(err, models.ErrVoteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return false
	}
	if err != nil {
		slog.Error("failed to fetch vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	return true
}
