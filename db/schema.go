// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    host_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    vote_type TEXT NOT NULL CHECK (vote_type IN ('single', 'multiple', 'ranking', 'binary', 'scale')),
    is_open BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMP,
    max_selections INTEGER CHECK (max_selections IS NULL OR max_selections >= 2),
    scale_min DOUBLE PRECISION,
    scale_max DOUBLE PRECISION,
    scale_step DOUBLE PRECISION CHECK (scale_step IS NULL OR scale_step > 0)
);

CREATE INDEX IF NOT EXISTS idx_vote_host_id ON vote(host_id);

-- Options
CREATE TABLE IF NOT EXISTS vote_option (
    id TEXT PRIMARY KEY,
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    image_url TEXT,
    image_alt TEXT,
    display_order INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (vote_id, display_order)
);

CREATE INDEX IF NOT EXISTS idx_vote_option_vote_id ON vote_option(vote_id);

-- Responses (append-only; no update or delete path exists)
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    vote_id TEXT NOT NULL REFERENCES vote(id) ON DELETE CASCADE,
    option_id TEXT REFERENCES vote_option(id) ON DELETE CASCADE,
    participant_token TEXT NOT NULL,
    scale_value DOUBLE PRECISION,
    ranking INTEGER CHECK (ranking IS NULL OR ranking >= 1),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_response_vote_id ON response(vote_id);
CREATE INDEX IF NOT EXISTS idx_response_participant ON response(vote_id, participant_token);

-- One row per (participant, option) within a vote. NULL option_id rows
-- (scale) are not covered; scale dedup relies on the submit-path check.
CREATE UNIQUE INDEX IF NOT EXISTS idx_response_participant_option
    ON response(vote_id, participant_token, option_id);
`
