// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/voteup/server/cliparse"
	"github.com/voteup/server/ident"
	"github.com/voteup/server/images"
	"github.com/voteup/server/middleware"
	"github.com/voteup/server/models"
	"github.com/voteup/server/store"
)

type VoteHandler struct {
	store   *store.Store
	cleaner *images.Cleaner
	cfg     cliparse.Config
}

func NewVoteHandler(st *store.Store, cleaner *images.Cleaner, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: st, cleaner: cleaner, cfg: cfg}
}

// CreateVote handles POST /votes
// Creates the vote and its options atomically. New votes start closed;
// the host opens them explicitly once sharing begins.
func (h *VoteHandler) CreateVote(w http.ResponseWriter, r *http.Request) {
	hostID := r.Header.Get("X-Host-ID")
	if hostID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Host-ID header required")
		return
	}

	var req models.CreateVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voteID, err := ident.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate vote ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create vote")
		return
	}

	now := time.Now()
	vote := models.Vote{
		ID:            voteID,
		HostID:        hostID,
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.VoteType,
		IsOpen:        false,
		CreatedAt:     now,
		ExpiresAt:     req.ExpiresAt,
		MaxSelections: req.MaxSelections,
	}

	if req.VoteType == models.TypeScale {
		vote.ScaleMin = models.DefaultScaleMin
		vote.ScaleMax = models.DefaultScaleMax
		vote.ScaleStep = models.DefaultScaleStep
		if req.ScaleMin != nil {
			vote.ScaleMin = *req.ScaleMin
		}
		if req.ScaleMax != nil {
			vote.ScaleMax = *req.ScaleMax
		}
		if req.ScaleStep != nil {
			vote.ScaleStep = *req.ScaleStep
		}
	}

	options, err := buildOptions(voteID, req.Options, now)
	if err != nil {
		slog.Error("failed to generate option IDs", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create vote")
		return
	}
	vote.Options = options

	if err := models.ValidateDefinition(&vote); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.CreateVote(r.Context(), &vote); err != nil {
		slog.Error("failed to insert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create vote")
		return
	}

	slog.Info("vote created", "vote_id", voteID, "vote_type", vote.Type, "host_id", hostID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateVoteResponse{
		Vote:    vote,
		HostKey: ident.GenerateHostKey(voteID, h.cfg.HostKeySalt),
	})
}

// GetVote handles GET /votes/{id}
// Returns the definition, options sorted by display_order, and the
// derived participant count.
func (h *VoteHandler) GetVote(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, vote)
}

// ListMyVotes handles GET /hosts/votes
// Returns the calling host's votes, newest first.
func (h *VoteHandler) ListMyVotes(w http.ResponseWriter, r *http.Request) {
	hostID := r.Header.Get("X-Host-ID")
	if hostID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Host-ID header required")
		return
	}

	votes, err := h.store.ListVotesByHost(r.Context(), hostID)
	if err != nil {
		slog.Error("failed to list votes", "error", err, "host_id", hostID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"votes": votes})
}

// UpdateVote handles PATCH /votes/{id}
// Edits title, description, and (optionally) the option set. Replacing
// options cascades away responses referencing removed options.
func (h *VoteHandler) UpdateVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	hostKey := r.Header.Get("X-Host-Key")
	if err := ident.ValidateHostKey(voteID, hostKey, h.cfg.HostKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid host key")
		return
	}

	var req models.UpdateVoteRequest
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

	if req.Title != nil {
		vote.Title = *req.Title
	}
	if req.Description != nil {
		vote.Description = *req.Description
	}
	if req.Options != nil {
		options, err := buildOptions(voteID, req.Options, time.Now())
		if err != nil {
			slog.Error("failed to generate option IDs", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update vote")
			return
		}
		vote.Options = options
	}

	if err := models.ValidateDefinition(vote); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateVote(r.Context(), vote); err != nil {
		slog.Error("failed to update vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update vote")
		return
	}

	slog.Info("vote updated", "vote_id", voteID)

	middleware.JSONResponse(w, http.StatusOK, vote)
}

// SetStatus handles POST /votes/{id}/status
// Toggles whether the vote accepts new responses.
func (h *VoteHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	hostKey := r.Header.Get("X-Host-Key")
	if err := ident.ValidateHostKey(voteID, hostKey, h.cfg.HostKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid host key")
		return
	}

	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.store.SetOpen(r.Context(), voteID, req.IsOpen)
	if errors.Is(err, models.ErrVoteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to update vote status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	slog.Info("vote status changed", "vote_id", voteID, "is_open", req.IsOpen)

	middleware.JSONResponse(w, http.StatusOK, models.SetStatusResponse{IsOpen: req.IsOpen})
}

// DeleteVote handles DELETE /votes/{id}
// Cascades option and response deletion, then cleans up stored option
// images. Image cleanup is best-effort and never blocks the deletion.
func (h *VoteHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	voteID := r.PathValue("id")
	if voteID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote id is required")
		return
	}

	hostKey := r.Header.Get("X-Host-Key")
	if err := ident.ValidateHostKey(voteID, hostKey, h.cfg.HostKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid host key")
		return
	}

	err := h.store.DeleteVote(r.Context(), voteID)
	if errors.Is(err, models.ErrVoteNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete vote")
		return
	}

	h.cleaner.DeleteVoteImages(voteID)

	slog.Info("vote deleted", "vote_id", voteID)

	w.WriteHeader(http.StatusNoContent)
}

// buildOptions assigns IDs and display order (request order) to a new
// option set.
func buildOptions(voteID string, reqs []models.CreateOptionRequest, now time.Time) ([]models.VoteOption, error) {
	options := make([]models.VoteOption, 0, len(reqs))
	for i, opt := range reqs {
		optionID, err := ident.GenerateID(12)
		if err != nil {
			return nil, err
		}
		options = append(options, models.VoteOption{
			ID:           optionID,
			VoteID:       voteID,
			Text:         opt.Text,
			ImageURL:     opt.ImageURL,
			ImageAlt:     opt.ImageAlt,
			DisplayOrder: i,
			CreatedAt:    now,
		})
	}
	return options, nil
}
