// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voteup/server/models"
)

func singleVote() *models.Vote {
	return &models.Vote{
		ID:   "v1",
		Type: models.TypeSingle,
		Options: []models.VoteOption{
			{ID: "a", VoteID: "v1", Text: "Alpha", DisplayOrder: 0},
			{ID: "b", VoteID: "v1", Text: "Beta", DisplayOrder: 1},
			{ID: "c", VoteID: "v1", Text: "Gamma", DisplayOrder: 2},
		},
	}
}

func choice(token, optionID string) models.VoteResponse {
	return models.VoteResponse{VoteID: "v1", OptionID: optionID, ParticipantToken: token}
}

func ranked(token, optionID string, rank int) models.VoteResponse {
	return models.VoteResponse{VoteID: "v1", OptionID: optionID, ParticipantToken: token, Ranking: &rank}
}

func scaled(token string, value float64) models.VoteResponse {
	return models.VoteResponse{VoteID: "v1", ParticipantToken: token, ScaleValue: &value}
}

func TestAggregateSingleChoice(t *testing.T) {
	vote := singleVote()
	responses := []models.VoteResponse{
		choice("p1", "a"),
		choice("p2", "a"),
		choice("p3", "b"),
	}

	rs := Aggregate(vote, responses)

	assert.Equal(t, "v1", rs.VoteID)
	assert.Equal(t, 3, rs.TotalResponses)
	assert.Equal(t, 3, rs.ParticipantCount)
	require.Len(t, rs.Options, 3)

	assert.Equal(t, 2, rs.Options[0].Count)
	assert.Equal(t, 1, rs.Options[1].Count)
	assert.Equal(t, 0, rs.Options[2].Count)

	// 2/3 rounds up, 1/3 rounds down
	assert.Equal(t, 67, rs.Options[0].Percentage)
	assert.Equal(t, 33, rs.Options[1].Percentage)
	assert.Equal(t, 0, rs.Options[2].Percentage)
}

func TestAggregateCountsSumToTotal(t *testing.T) {
	vote := singleVote()
	responses := []models.VoteResponse{
		choice("p1", "a"),
		choice("p2", "b"),
		choice("p3", "c"),
		choice("p4", "a"),
		choice("p5", "a"),
	}

	rs := Aggregate(vote, responses)

	sum := 0
	for _, opt := range rs.Options {
		sum += opt.Count
	}
	assert.Equal(t, rs.TotalResponses, sum)
}

func TestAggregateEmptyResponses(t *testing.T) {
	rs := Aggregate(singleVote(), nil)

	assert.Equal(t, 0, rs.TotalResponses)
	assert.Equal(t, 0, rs.ParticipantCount)
	require.Len(t, rs.Options, 3)
	for _, opt := range rs.Options {
		assert.Equal(t, 0, opt.Count)
		assert.Equal(t, 0, opt.Percentage)
	}
}

func TestAggregateUnknownOptionExcluded(t *testing.T) {
	vote := singleVote()
	responses := []models.VoteResponse{
		choice("p1", "a"),
		choice("p2", "deleted-option"),
	}

	rs := Aggregate(vote, responses)

	assert.Equal(t, 1, rs.TotalResponses)
	assert.Equal(t, 100, rs.Options[0].Percentage)
	// The orphan row still represents a participant
	assert.Equal(t, 2, rs.ParticipantCount)
}

func TestAggregateMultipleChoicePercentagesExceed100(t *testing.T) {
	vote := singleVote()
	vote.Type = models.TypeMultiple
	vote.MaxSelections = 2

	// Two participants, each selecting two options: four rows.
	responses := []models.VoteResponse{
		choice("p1", "a"),
		choice("p1", "b"),
		choice("p2", "a"),
		choice("p2", "c"),
	}

	rs := Aggregate(vote, responses)

	assert.Equal(t, 4, rs.TotalResponses)
	assert.Equal(t, 2, rs.ParticipantCount)

	// Percentages are over rows, not participants: a=50, b=25, c=25
	assert.Equal(t, 50, rs.Options[0].Percentage)
	assert.Equal(t, 25, rs.Options[1].Percentage)
	assert.Equal(t, 25, rs.Options[2].Percentage)
}

func TestAggregateParticipantCountDistinctTokens(t *testing.T) {
	vote := singleVote()
	vote.Type = models.TypeMultiple
	vote.MaxSelections = 3

	responses := []models.VoteResponse{
		choice("p1", "a"),
		choice("p1", "b"),
		choice("p1", "c"),
	}

	rs := Aggregate(vote, responses)

	assert.Equal(t, 3, rs.TotalResponses)
	assert.Equal(t, 1, rs.ParticipantCount)
}

func TestAggregateRanking(t *testing.T) {
	vote := singleVote()
	vote.Type = models.TypeRanking

	// p1: a=1, b=2, c=3; p2: b=1, a=2, c=3
	responses := []models.VoteResponse{
		ranked("p1", "a", 1), ranked("p1", "b", 2), ranked("p1", "c", 3),
		ranked("p2", "b", 1), ranked("p2", "a", 2), ranked("p2", "c", 3),
	}

	rs := Aggregate(vote, responses)

	require.Len(t, rs.Ranking, 3)
	assert.Equal(t, 6, rs.TotalResponses)
	assert.Equal(t, 2, rs.ParticipantCount)

	// a and b tie at 1.5; display order breaks the tie, so a comes first.
	require.NotNil(t, rs.Ranking[0].AvgRanking)
	assert.Equal(t, "a", rs.Ranking[0].OptionID)
	assert.InDelta(t, 1.5, *rs.Ranking[0].AvgRanking, 1e-9)
	assert.Equal(t, "b", rs.Ranking[1].OptionID)
	assert.InDelta(t, 1.5, *rs.Ranking[1].AvgRanking, 1e-9)
	assert.Equal(t, "c", rs.Ranking[2].OptionID)
	assert.InDelta(t, 3.0, *rs.Ranking[2].AvgRanking, 1e-9)
}

func TestAggregateRankingUnrankedOptionLast(t *testing.T) {
	vote := singleVote()
	vote.Type = models.TypeRanking

	// Only option b ever gets ranked; a and c have no responses at all.
	responses := []models.VoteResponse{
		ranked("p1", "b", 1),
	}

	rs := Aggregate(vote, responses)

	require.Len(t, rs.Ranking, 3)
	assert.Equal(t, "b", rs.Ranking[0].OptionID)
	// Unranked options sort last, by display order among themselves.
	assert.Equal(t, "a", rs.Ranking[1].OptionID)
	assert.Nil(t, rs.Ranking[1].AvgRanking)
	assert.Equal(t, "c", rs.Ranking[2].OptionID)
	assert.Nil(t, rs.Ranking[2].AvgRanking)
}

func TestAggregateScale(t *testing.T) {
	vote := &models.Vote{
		ID:        "v1",
		Type:      models.TypeScale,
		ScaleMin:  1,
		ScaleMax:  5,
		ScaleStep: 1,
	}
	responses := []models.VoteResponse{
		scaled("p1", 4),
		scaled("p2", 5),
		scaled("p3", 4),
	}

	rs := Aggregate(vote, responses)

	require.NotNil(t, rs.Scale)
	assert.Equal(t, 3, rs.Scale.ResponseCount)
	assert.Equal(t, 3, rs.TotalResponses)
	require.NotNil(t, rs.Scale.Average)
	assert.InDelta(t, 13.0/3.0, *rs.Scale.Average, 1e-9)

	require.Len(t, rs.Scale.Histogram, 5)
	assert.Equal(t, 1.0, rs.Scale.Histogram[0].Value)
	assert.Equal(t, 5.0, rs.Scale.Histogram[4].Value)
	assert.Equal(t, 0, rs.Scale.Histogram[0].Count)
	assert.Equal(t, 2, rs.Scale.Histogram[3].Count)
	assert.Equal(t, 1, rs.Scale.Histogram[4].Count)
	assert.Equal(t, 67, rs.Scale.Histogram[3].Percentage)
	assert.Equal(t, 33, rs.Scale.Histogram[4].Percentage)
}

func TestAggregateScaleEmptyHistogramComplete(t *testing.T) {
	vote := &models.Vote{
		ID:        "v1",
		Type:      models.TypeScale,
		ScaleMin:  1,
		ScaleMax:  5,
		ScaleStep: 1,
	}

	rs := Aggregate(vote, nil)

	require.NotNil(t, rs.Scale)
	assert.Nil(t, rs.Scale.Average)
	assert.Equal(t, 0, rs.Scale.ResponseCount)
	require.Len(t, rs.Scale.Histogram, 5)
	for _, b := range rs.Scale.Histogram {
		assert.Equal(t, 0, b.Count)
		assert.Equal(t, 0, b.Percentage)
	}
}

func TestAggregateScaleFractionalStep(t *testing.T) {
	vote := &models.Vote{
		ID:        "v1",
		Type:      models.TypeScale,
		ScaleMin:  0,
		ScaleMax:  1,
		ScaleStep: 0.1,
	}
	responses := []models.VoteResponse{
		scaled("p1", 0.3),
		scaled("p2", 0.7),
	}

	rs := Aggregate(vote, responses)

	// 0.0 through 1.0 inclusive: eleven buckets despite float drift.
	require.Len(t, rs.Scale.Histogram, 11)
	assert.Equal(t, 1, rs.Scale.Histogram[3].Count)
	assert.Equal(t, 1, rs.Scale.Histogram[7].Count)
}

func TestAggregateIdempotent(t *testing.T) {
	vote := singleVote()
	responses := []models.VoteResponse{
		choice("p1", "a"),
		choice("p2", "b"),
	}

	first := Aggregate(vote, responses)
	second := Aggregate(vote, responses)

	assert.Equal(t, first, second)
}

func TestAggregateDoesNotMutateInputs(t *testing.T) {
	vote := singleVote()
	// Options deliberately out of display order
	vote.Options[0], vote.Options[2] = vote.Options[2], vote.Options[0]
	before := make([]models.VoteOption, len(vote.Options))
	copy(before, vote.Options)

	Aggregate(vote, []models.VoteResponse{choice("p1", "a")})

	assert.Equal(t, before, vote.Options)
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		total    int
		expected int
	}{
		{"zero total", 0, 0, 0},
		{"exact half rounds up", 1, 2, 50},
		{"two thirds", 2, 3, 67},
		{"one third", 1, 3, 33},
		{"one of eight", 1, 8, 13},
		{"all", 7, 7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, percent(tt.count, tt.total))
		})
	}
}
