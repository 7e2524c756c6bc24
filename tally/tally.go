// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"sort"

	"github.com/voteup/server/models"
)

// floatTol absorbs accumulated floating-point drift when stepping through
// scale buckets and matching submitted values against them.
const floatTol = 1e-9

// ResultSet is the aggregated view of one vote's responses. Exactly one of
// Options, Ranking, or Scale is populated depending on the vote type.
type ResultSet struct {
	VoteID           string          `json:"vote_id"`
	Type             models.VoteType `json:"vote_type"`
	TotalResponses   int             `json:"total_responses"`
	ParticipantCount int             `json:"participant_count"`

	Options []OptionResult  `json:"options,omitempty"`
	Ranking []RankingResult `json:"ranking,omitempty"`
	Scale   *ScaleResult    `json:"scale,omitempty"`
}

// OptionResult is the tally for one option of a single, multiple, or
// binary vote. Percentage is over total response rows, not distinct
// participants: multiple-choice percentages legitimately sum past 100.
type OptionResult struct {
	OptionID   string `json:"option_id"`
	Text       string `json:"option_text"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// RankingResult is the per-option outcome of a ranking vote. AvgRanking is
// nil when no participant ranked the option.
type RankingResult struct {
	OptionID     string   `json:"option_id"`
	Text         string   `json:"option_text"`
	DisplayOrder int      `json:"display_order"`
	Count        int      `json:"count"`
	AvgRanking   *float64 `json:"avg_ranking"`
}

// ScaleResult is the aggregate for a scale vote: the mean of all submitted
// values plus a histogram with one bucket per valid step value. Zero-count
// buckets are always present.
type ScaleResult struct {
	Average       *float64      `json:"average"`
	ResponseCount int           `json:"response_count"`
	Histogram     []ScaleBucket `json:"histogram"`
}

type ScaleBucket struct {
	Value      float64 `json:"value"`
	Count      int     `json:"count"`
	Percentage int     `json:"percentage"`
}

// Aggregate transforms a flat response set into per-option tallies, ranking
// averages, or scale statistics depending on the vote type. It is a pure
// function of its inputs: it never mutates them, and identical inputs
// always produce identical output, so it is safe to re-run on every live
// update. Response rows referencing unknown options are excluded from
// tallies rather than raising, since the response set's integrity is not
// guaranteed upstream.
func Aggregate(vote *models.Vote, responses []models.VoteResponse) ResultSet {
	rs := ResultSet{
		VoteID:           vote.ID,
		Type:             vote.Type,
		ParticipantCount: countParticipants(responses),
	}

	switch vote.Type {
	case models.TypeSingle, models.TypeMultiple, models.TypeBinary:
		rs.Options, rs.TotalResponses = aggregateChoices(vote, responses)
	case models.TypeRanking:
		rs.Ranking, rs.TotalResponses = aggregateRanking(vote, responses)
	case models.TypeScale:
		scale := aggregateScale(vote, responses)
		rs.Scale = &scale
		rs.TotalResponses = scale.ResponseCount
	}

	return rs
}

// aggregateChoices groups responses by option and computes counts and
// percentages. Every option appears in the output, including those with
// zero responses. The percentage denominator is the number of response
// rows attributed to a known option; with zero rows every percentage is 0.
func aggregateChoices(vote *models.Vote, responses []models.VoteResponse) ([]OptionResult, int) {
	counts := make(map[string]int, len(vote.Options))
	known := make(map[string]bool, len(vote.Options))
	for _, opt := range vote.Options {
		known[opt.ID] = true
	}

	total := 0
	for _, r := range responses {
		if !known[r.OptionID] {
			continue
		}
		counts[r.OptionID]++
		total++
	}

	results := make([]OptionResult, 0, len(vote.Options))
	for _, opt := range sortedOptions(vote.Options) {
		count := counts[opt.ID]
		results = append(results, OptionResult{
			OptionID:   opt.ID,
			Text:       opt.Text,
			Count:      count,
			Percentage: percent(count, total),
		})
	}

	return results, total
}

// aggregateRanking computes each option's mean rank and sorts the output
// ascending by average, unranked options last, display order breaking ties.
func aggregateRanking(vote *models.Vote, responses []models.VoteResponse) ([]RankingResult, int) {
	type acc struct {
		sum   int
		count int
		rows  int
	}
	accs := make(map[string]*acc, len(vote.Options))
	for _, opt := range vote.Options {
		accs[opt.ID] = &acc{}
	}

	total := 0
	for _, r := range responses {
		a, ok := accs[r.OptionID]
		if !ok {
			continue
		}
		a.rows++
		total++
		if r.Ranking != nil {
			a.sum += *r.Ranking
			a.count++
		}
	}

	results := make([]RankingResult, 0, len(vote.Options))
	for _, opt := range sortedOptions(vote.Options) {
		a := accs[opt.ID]
		res := RankingResult{
			OptionID:     opt.ID,
			Text:         opt.Text,
			DisplayOrder: opt.DisplayOrder,
			Count:        a.rows,
		}
		if a.count > 0 {
			avg := float64(a.sum) / float64(a.count)
			res.AvgRanking = &avg
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch {
		case a.AvgRanking == nil && b.AvgRanking == nil:
			return a.DisplayOrder < b.DisplayOrder
		case a.AvgRanking == nil:
			return false
		case b.AvgRanking == nil:
			return true
		case *a.AvgRanking != *b.AvgRanking:
			return *a.AvgRanking < *b.AvgRanking
		}
		return a.DisplayOrder < b.DisplayOrder
	})

	return results, total
}

// aggregateScale computes the mean of submitted values and a complete
// histogram over every step value from min to max, including zero-count
// buckets.
func aggregateScale(vote *models.Vote, responses []models.VoteResponse) ScaleResult {
	var values []float64
	for _, r := range responses {
		if r.ScaleValue != nil {
			values = append(values, *r.ScaleValue)
		}
	}

	result := ScaleResult{ResponseCount: len(values)}
	if len(values) > 0 {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		avg := sum / float64(len(values))
		result.Average = &avg
	}

	// Index-based stepping avoids drift from repeated float addition.
	steps := int(math.Floor((vote.ScaleMax-vote.ScaleMin)/vote.ScaleStep + floatTol))
	tol := vote.ScaleStep * 1e-6
	for i := 0; i <= steps; i++ {
		v := vote.ScaleMin + float64(i)*vote.ScaleStep
		bucket := ScaleBucket{Value: v}
		for _, val := range values {
			if math.Abs(val-v) <= tol {
				bucket.Count++
			}
		}
		bucket.Percentage = percent(bucket.Count, len(values))
		result.Histogram = append(result.Histogram, bucket)
	}

	return result
}

// percent rounds half away from zero: 2 of 3 responses is 67%.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// countParticipants returns the number of distinct participant tokens, not
// the row count: a multi-select submission is still one participant.
func countParticipants(responses []models.VoteResponse) int {
	seen := make(map[string]bool, len(responses))
	for _, r := range responses {
		seen[r.ParticipantToken] = true
	}
	return len(seen)
}

// sortedOptions returns a copy of the options ordered by display_order,
// leaving the caller's slice untouched.
func sortedOptions(options []models.VoteOption) []models.VoteOption {
	sorted := make([]models.VoteOption, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return sorted
}
