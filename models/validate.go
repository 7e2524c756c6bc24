// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// ValidateDefinition checks a vote definition at creation time: a known
// type, a sensible option count for that type, and well-formed type
// parameters. It does not touch response data; submissions are validated
// separately against the definition.
func ValidateDefinition(v *Vote) error {
	if v.Title == "" {
		return errors.New("title is required")
	}
	if !v.Type.Valid() {
		return errors.New("unknown vote_type")
	}

	switch v.Type {
	case TypeBinary:
		if len(v.Options) != 2 {
			return errors.New("binary votes require exactly 2 options")
		}
	case TypeSingle, TypeMultiple, TypeRanking:
		if len(v.Options) < 2 {
			return errors.New("at least two options are required")
		}
	case TypeScale:
		if len(v.Options) != 0 {
			return errors.New("scale votes carry no discrete options")
		}
		if v.ScaleMin >= v.ScaleMax {
			return errors.New("scale_min must be less than scale_max")
		}
		if v.ScaleStep <= 0 {
			return errors.New("scale_step must be positive")
		}
	}

	if v.Type == TypeMultiple {
		if v.MaxSelections < 2 {
			return errors.New("max_selections must be at least 2")
		}
		if v.MaxSelections > len(v.Options) {
			return errors.New("max_selections exceeds option count")
		}
	}

	seen := make(map[int]bool, len(v.Options))
	for _, opt := range v.Options {
		if opt.Text == "" {
			return errors.New("option text is required")
		}
		if seen[opt.DisplayOrder] {
			return errors.New("display_order must be unique per vote")
		}
		seen[opt.DisplayOrder] = true
	}

	return nil
}
