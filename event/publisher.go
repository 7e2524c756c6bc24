// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

import (
	"context"
	"time"

	"github.com/voteup/server/models"
)

// SubmissionEvent is the record published for each accepted submission,
// for downstream consumers (analytics, dashboards) outside this service.
type SubmissionEvent struct {
	VoteID           string          `json:"vote_id"`
	VoteType         models.VoteType `json:"vote_type"`
	ParticipantToken string          `json:"participant_token"`
	Rows             int             `json:"rows"`
	SubmittedAt      time.Time       `json:"submitted_at"`
}

// Publisher emits submission events to an external feed. Publishing is
// fire-and-forget from the submit path's point of view: a failed publish
// is logged, never surfaced to the participant.
type Publisher interface {
	PublishSubmission(ctx context.Context, ev SubmissionEvent) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSubmission(context.Context, SubmissionEvent) error { return nil }
func (NopPublisher) Close() error                                             { return nil }
