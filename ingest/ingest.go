// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"math"

	"github.com/voteup/server/models"
)

// stepTol is the floating-point tolerance used when checking that a scale
// value lands on a step boundary.
const stepTol = 1e-9

// BuildSubmission validates one participant's raw answers against the vote
// definition and, on success, returns one VoteResponse row per answer, all
// sharing the participant token and vote ID. CreatedAt and row IDs are
// left to the persistence layer. The function performs no I/O; a failure
// is always a *models.ValidationError.
func BuildSubmission(vote *models.Vote, token string, answers []models.Answer) ([]models.VoteResponse, error) {
	switch vote.Type {
	case models.TypeSingle, models.TypeBinary:
		return buildChoice(vote, token, answers, 1)
	case models.TypeMultiple:
		return buildChoice(vote, token, answers, vote.MaxSelections)
	case models.TypeRanking:
		return buildRanking(vote, token, answers)
	case models.TypeScale:
		return buildScale(vote, token, answers)
	}
	return nil, models.Validationf(models.UnknownOption, "unknown vote type %q", vote.Type)
}

// buildChoice handles single, binary, and multiple votes. Single and
// binary pass maxSelections=1; exceeding it on those types is an option
// count error rather than a selection limit error.
func buildChoice(vote *models.Vote, token string, answers []models.Answer, maxSelections int) ([]models.VoteResponse, error) {
	if len(answers) == 0 {
		return nil, models.Validationf(models.InvalidOptionCount, "at least one option is required")
	}
	if len(answers) > maxSelections {
		if maxSelections == 1 {
			return nil, models.Validationf(models.InvalidOptionCount, "exactly one option is required")
		}
		return nil, models.Validationf(models.TooManySelections, "at most %d selections allowed", maxSelections)
	}

	known := optionSet(vote)
	seen := make(map[string]bool, len(answers))
	rows := make([]models.VoteResponse, 0, len(answers))
	for _, ans := range answers {
		if ans.OptionID == "" || !known[ans.OptionID] {
			return nil, models.Validationf(models.UnknownOption, "option %q does not belong to this vote", ans.OptionID)
		}
		if seen[ans.OptionID] {
			return nil, models.Validationf(models.DuplicateOption, "option %q selected twice", ans.OptionID)
		}
		seen[ans.OptionID] = true
		rows = append(rows, models.VoteResponse{
			VoteID:           vote.ID,
			OptionID:         ans.OptionID,
			ParticipantToken: token,
		})
	}

	return rows, nil
}

// buildRanking requires a rank for every option exactly once, the ranks
// forming a permutation of 1..N.
func buildRanking(vote *models.Vote, token string, answers []models.Answer) ([]models.VoteResponse, error) {
	n := len(vote.Options)
	if len(answers) < n {
		return nil, models.Validationf(models.IncompleteRanking, "every option must be ranked (%d of %d)", len(answers), n)
	}
	if len(answers) > n {
		return nil, models.Validationf(models.InvalidRankSequence, "more rankings than options")
	}

	known := optionSet(vote)
	rankedOptions := make(map[string]bool, n)
	usedRanks := make(map[int]bool, n)
	rows := make([]models.VoteResponse, 0, n)
	for _, ans := range answers {
		if ans.OptionID == "" || !known[ans.OptionID] {
			return nil, models.Validationf(models.UnknownOption, "option %q does not belong to this vote", ans.OptionID)
		}
		if rankedOptions[ans.OptionID] {
			return nil, models.Validationf(models.InvalidRankSequence, "option %q ranked twice", ans.OptionID)
		}
		if ans.Ranking == nil {
			return nil, models.Validationf(models.IncompleteRanking, "option %q has no rank", ans.OptionID)
		}
		rank := *ans.Ranking
		if rank < 1 || rank > n {
			return nil, models.Validationf(models.InvalidRankSequence, "rank %d outside 1..%d", rank, n)
		}
		if usedRanks[rank] {
			return nil, models.Validationf(models.InvalidRankSequence, "rank %d used twice", rank)
		}
		rankedOptions[ans.OptionID] = true
		usedRanks[rank] = true

		r := rank
		rows = append(rows, models.VoteResponse{
			VoteID:           vote.ID,
			OptionID:         ans.OptionID,
			ParticipantToken: token,
			Ranking:          &r,
		})
	}

	return rows, nil
}

// buildScale requires exactly one numeric value on a step boundary within
// the configured bounds.
func buildScale(vote *models.Vote, token string, answers []models.Answer) ([]models.VoteResponse, error) {
	if len(answers) != 1 {
		return nil, models.Validationf(models.InvalidOptionCount, "exactly one scale value is required")
	}
	if answers[0].ScaleValue == nil {
		return nil, models.Validationf(models.OutOfRange, "scale value is required")
	}

	v := *answers[0].ScaleValue
	if v < vote.ScaleMin-stepTol || v > vote.ScaleMax+stepTol {
		return nil, models.Validationf(models.OutOfRange, "value %g outside [%g, %g]", v, vote.ScaleMin, vote.ScaleMax)
	}

	// (v - min) must be a whole number of steps, within tolerance.
	steps := (v - vote.ScaleMin) / vote.ScaleStep
	if math.Abs(steps-math.Round(steps)) > 1e-6 {
		return nil, models.Validationf(models.InvalidStep, "value %g is not a multiple of step %g from %g", v, vote.ScaleStep, vote.ScaleMin)
	}

	val := v
	return []models.VoteResponse{{
		VoteID:           vote.ID,
		ParticipantToken: token,
		ScaleValue:       &val,
	}}, nil
}

func optionSet(vote *models.Vote) map[string]bool {
	known := make(map[string]bool, len(vote.Options))
	for _, opt := range vote.Options {
		known[opt.ID] = true
	}
	return known
}
