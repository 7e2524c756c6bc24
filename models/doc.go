// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateVoteRequest: title, description, vote_type, options, scale parameters
  - CreateOptionRequest: text, image_url
  - UpdateVoteRequest: title, description, options
  - SetStatusRequest: is_open
  - SubmitRequest: answers (option_id / rank / value per answer)

# Response Types

Types for JSON responses:

  - CreateVoteResponse: vote, host_key
  - SubmitResponse: accepted, message
  - SetStatusResponse: id, is_open
  - ErrorResponse: error, code

# Domain Types

Internal data structures:

  - Vote: vote definition, lifecycle state, and scale parameters
  - VoteOption: discrete option with display order and optional image
  - VoteResponse: one persisted answer row for a participant
  - Answer: one answer in an incoming submission

# Constants

Vote types:

	TypeSingle   = "single"
	TypeMultiple = "multiple"
	TypeRanking  = "ranking"
	TypeBinary   = "binary"
	TypeScale    = "scale"

Scale defaults (applied when a scale vote omits its parameters):

	DefaultScaleMin  = 1.0
	DefaultScaleMax  = 5.0
	DefaultScaleStep = 1.0

# Errors

Sentinel errors shared by the store and the submission path:

	ErrVoteNotFound
	ErrVoteClosed
	ErrAlreadyResponded

ValidationError carries a stable ValidationCode (invalid_option_count,
too_many_selections, duplicate_option, unknown_option,
incomplete_ranking, invalid_rank_sequence, out_of_range, invalid_step)
identifying the rule a submission or definition violated.
*/
package models
