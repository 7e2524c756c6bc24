// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/voteup/server/ident"
	"github.com/voteup/server/models"
)

// Store is the PostgreSQL-backed persistence layer for votes, options,
// and responses. Methods return models.ErrVoteNotFound, models.ErrVoteClosed,
// and models.ErrAlreadyResponded as sentinel errors; everything else is a
// wrapped driver error.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateVote inserts the vote and its options in one transaction. Option
// and vote IDs must already be assigned by the caller.
func (s *Store) CreateVote(ctx context.Context, vote *models.Vote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote (id, host_id, title, description, vote_type, is_open, created_at,
		                  expires_at, max_selections, scale_min, scale_max, scale_step)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, vote.ID, vote.HostID, vote.Title, nullString(vote.Description), vote.Type,
		vote.IsOpen, vote.CreatedAt, vote.ExpiresAt,
		nullInt(vote.MaxSelections), nullFloat(vote.ScaleMin, vote.Type == models.TypeScale),
		nullFloat(vote.ScaleMax, vote.Type == models.TypeScale),
		nullFloat(vote.ScaleStep, vote.Type == models.TypeScale))
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	for _, opt := range vote.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote_option (id, vote_id, text, image_url, image_alt, display_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, opt.ID, vote.ID, opt.Text, nullString(opt.ImageURL), nullString(opt.ImageAlt),
			opt.DisplayOrder, opt.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	return tx.Commit()
}

// FetchVote returns the vote definition with its options sorted by
// display_order and the derived participant count.
func (s *Store) FetchVote(ctx context.Context, voteID string) (*models.Vote, error) {
	var vote models.Vote
	var description sql.NullString
	var expiresAt sql.NullTime
	var maxSelections sql.NullInt64
	var scaleMin, scaleMax, scaleStep sql.NullFloat64

	err := s.db.QueryRowContext(ctx, `
		SELECT id, host_id, title, description, vote_type, is_open, created_at,
		       expires_at, max_selections, scale_min, scale_max, scale_step
		FROM vote
		WHERE id = $1
	`, voteID).Scan(&vote.ID, &vote.HostID, &vote.Title, &description, &vote.Type,
		&vote.IsOpen, &vote.CreatedAt, &expiresAt, &maxSelections,
		&scaleMin, &scaleMax, &scaleStep)

	if err == sql.ErrNoRows {
		return nil, models.ErrVoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}

	vote.Description = description.String
	if expiresAt.Valid {
		t := expiresAt.Time
		vote.ExpiresAt = &t
	}
	vote.MaxSelections = int(maxSelections.Int64)
	vote.ScaleMin = scaleMin.Float64
	vote.ScaleMax = scaleMax.Float64
	vote.ScaleStep = scaleStep.Float64

	vote.Options, err = s.fetchOptions(ctx, voteID)
	if err != nil {
		return nil, err
	}

	vote.ParticipantCount, err = s.ParticipantCount(ctx, voteID)
	if err != nil {
		return nil, err
	}

	return &vote, nil
}

func (s *Store) fetchOptions(ctx context.Context, voteID string) ([]models.VoteOption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, vote_id, text, image_url, image_alt, display_order, created_at
		FROM vote_option
		WHERE vote_id = $1
		ORDER BY display_order
	`, voteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.VoteOption{}
	for rows.Next() {
		var opt models.VoteOption
		var imageURL, imageAlt sql.NullString
		if err := rows.Scan(&opt.ID, &opt.VoteID, &opt.Text, &imageURL, &imageAlt,
			&opt.DisplayOrder, &opt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		opt.ImageURL = imageURL.String
		opt.ImageAlt = imageAlt.String
		options = append(options, opt)
	}

	return options, rows.Err()
}

// ListVotesByHost returns the host's votes, newest first, each with its
// options and participant count.
func (s *Store) ListVotesByHost(ctx context.Context, hostID string) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM vote WHERE host_id = $1 ORDER BY created_at DESC
	`, hostID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vote id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	votes := []models.Vote{}
	for _, id := range ids {
		vote, err := s.FetchVote(ctx, id)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *vote)
	}

	return votes, nil
}

// UpdateVote replaces the vote's title, description, and option set. The
// option rows are replaced wholesale inside one transaction; existing
// responses referencing removed options are cascaded away.
func (s *Store) UpdateVote(ctx context.Context, vote *models.Vote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE vote SET title = $1, description = $2 WHERE id = $3
	`, vote.Title, nullString(vote.Description), vote.ID)
	if err != nil {
		return fmt.Errorf("failed to update vote: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrVoteNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM vote_option WHERE vote_id = $1`, vote.ID); err != nil {
		return fmt.Errorf("failed to clear options: %w", err)
	}
	for _, opt := range vote.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote_option (id, vote_id, text, image_url, image_alt, display_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, opt.ID, vote.ID, opt.Text, nullString(opt.ImageURL), nullString(opt.ImageAlt),
			opt.DisplayOrder, opt.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	return tx.Commit()
}

// FetchResponses returns all response rows for the vote, unfiltered.
func (s *Store) FetchResponses(ctx context.Context, voteID string) ([]models.VoteResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, vote_id, option_id, participant_token, scale_value, ranking, created_at
		FROM response
		WHERE vote_id = $1
		ORDER BY created_at, id
	`, voteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.VoteResponse{}
	for rows.Next() {
		var r models.VoteResponse
		var optionID sql.NullString
		var scaleValue sql.NullFloat64
		var ranking sql.NullInt64
		if err := rows.Scan(&r.ID, &r.VoteID, &optionID, &r.ParticipantToken,
			&scaleValue, &ranking, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		r.OptionID = optionID.String
		if scaleValue.Valid {
			v := scaleValue.Float64
			r.ScaleValue = &v
		}
		if ranking.Valid {
			rank := int(ranking.Int64)
			r.Ranking = &rank
		}
		responses = append(responses, r)
	}

	return responses, rows.Err()
}

// InsertResponses persists one participant's submission atomically. The
// vote's open state and the participant's prior submission are re-checked
// inside the transaction so the window between the handler's eligibility
// check and the write stays closed. Row IDs and created_at are assigned
// here.
func (s *Store) InsertResponses(ctx context.Context, responses []models.VoteResponse) error {
	if len(responses) == 0 {
		return nil
	}
	voteID := responses[0].VoteID
	token := responses[0].ParticipantToken

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var isOpen bool
	err = tx.QueryRowContext(ctx, `SELECT is_open FROM vote WHERE id = $1`, voteID).Scan(&isOpen)
	if err == sql.ErrNoRows {
		return models.ErrVoteNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query vote: %w", err)
	}
	if !isOpen {
		return models.ErrVoteClosed
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM response WHERE vote_id = $1 AND participant_token = $2)
	`, voteID, token).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check prior submission: %w", err)
	}
	if exists {
		return models.ErrAlreadyResponded
	}

	now := time.Now()
	for _, r := range responses {
		id, err := ident.GenerateID(16)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO response (id, vote_id, option_id, participant_token, scale_value, ranking, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, r.VoteID, nullString(r.OptionID), r.ParticipantToken, r.ScaleValue, r.Ranking, now)
		if err != nil {
			return fmt.Errorf("failed to insert response: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteVote removes the vote; options and responses cascade.
func (s *Store) DeleteVote(ctx context.Context, voteID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vote WHERE id = $1`, voteID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrVoteNotFound
	}
	return nil
}

// SetOpen toggles whether the vote accepts new responses.
func (s *Store) SetOpen(ctx context.Context, voteID string, isOpen bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE vote SET is_open = $1 WHERE id = $2`, isOpen, voteID)
	if err != nil {
		return fmt.Errorf("failed to update vote status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrVoteNotFound
	}
	return nil
}

// ParticipantCount counts distinct participant tokens, not response rows.
func (s *Store) ParticipantCount(ctx context.Context, voteID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT participant_token) FROM response WHERE vote_id = $1
	`, voteID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// HasResponded reports whether the participant already has rows for the vote.
func (s *Store) HasResponded(ctx context.Context, voteID, token string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM response WHERE vote_id = $1 AND participant_token = $2)
	`, voteID, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check prior submission: %w", err)
	}
	return exists, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

func nullFloat(f float64, valid bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: valid}
}
