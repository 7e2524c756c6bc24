// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - vote: Vote metadata, lifecycle gate (is_open), and type parameters
  - vote_option: Discrete options per vote, ordered by display_order
  - response: One answer row per (participant, option/value)

# Relationships

	vote 1──* vote_option
	vote 1──* response
	vote_option 1──* response (option_id nullable; scale responses carry none)

All foreign keys use ON DELETE CASCADE, so deleting a vote removes its
options and responses in one statement.

# Integrity

CHECK constraints mirror the ingest-layer submission rules where SQL can
express them (valid vote_type, positive scale_step, rank >= 1), and a
unique index on (vote_id, participant_token, option_id) backs up the
at-most-one-submission-set policy for option-carrying vote types. This is
defense in depth: the ingest package remains the authoritative validator.
*/
package db
