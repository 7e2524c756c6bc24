// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// VoteType enumerates the five supported vote kinds. The set is closed:
// every consumer switches exhaustively over these values.
type VoteType string

const (
	TypeSingle   VoteType = "single"
	TypeMultiple VoteType = "multiple"
	TypeRanking  VoteType = "ranking"
	TypeBinary   VoteType = "binary"
	TypeScale    VoteType = "scale"
)

// Valid reports whether t is one of the five known vote types.
func (t VoteType) Valid() bool {
	switch t {
	case TypeSingle, TypeMultiple, TypeRanking, TypeBinary, TypeScale:
		return true
	}
	return false
}

// HasOptions reports whether votes of this type carry discrete options.
// Scale votes carry a numeric range instead.
func (t VoteType) HasOptions() bool {
	return t != TypeScale
}

// Scale defaults applied when a scale vote omits its parameters.
const (
	DefaultScaleMin  = 1.0
	DefaultScaleMax  = 5.0
	DefaultScaleStep = 1.0
)

// Domain types

type Vote struct {
	ID          string     `json:"id"`
	HostID      string     `json:"host_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        VoteType   `json:"vote_type"`
	IsOpen      bool       `json:"is_open"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`

	// Type-specific parameters. MaxSelections is meaningful for multiple
	// only; the scale bounds and step for scale only.
	MaxSelections int     `json:"max_selections,omitempty"`
	ScaleMin      float64 `json:"scale_min,omitempty"`
	ScaleMax      float64 `json:"scale_max,omitempty"`
	ScaleStep     float64 `json:"scale_step,omitempty"`

	// Derived: distinct participant tokens across this vote's responses,
	// never the raw row count.
	ParticipantCount int `json:"participant_count"`

	Options []VoteOption `json:"options"`
}

type VoteOption struct {
	ID           string    `json:"id"`
	VoteID       string    `json:"vote_id"`
	Text         string    `json:"text"`
	ImageURL     string    `json:"image_url,omitempty"`
	ImageAlt     string    `json:"image_alt,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// VoteResponse is one atomic answer row. A multi-select or ranking
// submission becomes several rows sharing one participant token.
// Rows are append-only; there is no update or delete path.
type VoteResponse struct {
	ID               string    `json:"id"`
	VoteID           string    `json:"vote_id"`
	OptionID         string    `json:"option_id,omitempty"`
	ParticipantToken string    `json:"participant_token"`
	ScaleValue       *float64  `json:"scale_value,omitempty"`
	Ranking          *int      `json:"ranking,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Answer is one raw entry of a submission before validation: an option
// reference, a scale value, or an option+rank pair depending on vote type.
type Answer struct {
	OptionID   string   `json:"option_id,omitempty"`
	ScaleValue *float64 `json:"scale_value,omitempty"`
	Ranking    *int     `json:"ranking,omitempty"`
}

// Request types

type CreateVoteRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	VoteType      VoteType              `json:"vote_type"`
	Options       []CreateOptionRequest `json:"options"`
	ExpiresAt     *time.Time            `json:"expires_at,omitempty"`
	MaxSelections int                   `json:"max_selections,omitempty"`
	ScaleMin      *float64              `json:"scale_min,omitempty"`
	ScaleMax      *float64              `json:"scale_max,omitempty"`
	ScaleStep     *float64              `json:"scale_step,omitempty"`
}

type CreateOptionRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	ImageAlt string `json:"image_alt,omitempty"`
}

type UpdateVoteRequest struct {
	Title       *string               `json:"title,omitempty"`
	Description *string               `json:"description,omitempty"`
	Options     []CreateOptionRequest `json:"options,omitempty"`
}

type SetStatusRequest struct {
	IsOpen bool `json:"is_open"`
}

type SubmitRequest struct {
	Answers []Answer `json:"answers"`
}

// Response types

type CreateVoteResponse struct {
	Vote    Vote   `json:"vote"`
	HostKey string `json:"host_key"`
}

type SubmitResponse struct {
	Accepted int    `json:"accepted"`
	Message  string `json:"message"`
}

type SetStatusResponse struct {
	IsOpen bool `json:"is_open"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
