// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/voteup/server/models"
	"github.com/voteup/server/tally"
	"github.com/voteup/server/testutil"
)

func TestSubmitSingleChoice(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	testutil.AddTestOption(t, conn, voteID, "B", 1)

	req := testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: optionA}}},
		map[string]string{"X-Participant-Token": testutil.ParticipantToken()})
	w := serveWithPathValue(h.Submit, req, voteID)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Accepted != 1 {
		t.Errorf("Expected 1 accepted row, got %d", resp.Accepted)
	}
}

func TestSubmitClosedVote(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", false)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	testutil.AddTestOption(t, conn, voteID, "B", 1)

	req := testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: optionA}}},
		map[string]string{"X-Participant-Token": testutil.ParticipantToken()})
	w := serveWithPathValue(h.Submit, req, voteID)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestSubmitDuplicateParticipant(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, voteID, "B", 1)

	token := testutil.ParticipantToken()

	req := testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: optionA}}},
		map[string]string{"X-Participant-Token": token})
	w := serveWithPathValue(h.Submit, req, voteID)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Same token again, even with a different option
	req = testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: optionB}}},
		map[string]string{"X-Participant-Token": token})
	w = serveWithPathValue(h.Submit, req, voteID)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// A different token is fine
	req = testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: optionB}}},
		map[string]string{"X-Participant-Token": testutil.ParticipantToken()})
	w = serveWithPathValue(h.Submit, req, voteID)
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestSubmitValidationError(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "multiple", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, voteID, "B", 1)
	optionC := testutil.AddTestOption(t, conn, voteID, "C", 2)

	// max_selections is 2; three selections must be rejected with the code
	req := testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{
			{OptionID: optionA}, {OptionID: optionB}, {OptionID: optionC},
		}},
		map[string]string{"X-Participant-Token": testutil.ParticipantToken()})
	w := serveWithPathValue(h.Submit, req, voteID)

	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Code != "too_many_selections" {
		t.Errorf("Expected code 'too_many_selections', got %q", resp.Code)
	}

	// Nothing was persisted
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM response WHERE vote_id = $1`, voteID).Scan(&count); err != nil {
		t.Fatalf("Failed to count responses: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no persisted rows after rejection, found %d", count)
	}
}

func TestSubmitRequiresToken(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	testutil.AddTestOption(t, conn, voteID, "B", 1)

	req := testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: optionA}}}, nil)
	w := serveWithPathValue(h.Submit, req, voteID)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitVoteNotFound(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	req := testutil.MakeRequest("POST", "/votes/missing/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: "x"}}},
		map[string]string{"X-Participant-Token": testutil.ParticipantToken()})
	w := serveWithPathValue(h.Submit, req, "missing")

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSubmitNotifiesLiveFeed(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, hub := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	testutil.AddTestOption(t, conn, voteID, "B", 1)

	sub := hub.Subscribe(voteID)
	defer hub.Unsubscribe(sub)

	req := testutil.MakeRequest("POST", "/votes/"+voteID+"/responses",
		models.SubmitRequest{Answers: []models.Answer{{OptionID: optionA}}},
		map[string]string{"X-Participant-Token": testutil.ParticipantToken()})
	w := serveWithPathValue(h.Submit, req, voteID)
	testutil.AssertStatus(t, w, http.StatusCreated)

	select {
	case <-sub.Changed():
	default:
		t.Error("Expected a change signal after an accepted submission")
	}
}

func TestMyResponses(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, voteID, "B", 1)

	mine := testutil.ParticipantToken()
	testutil.SubmitTestChoices(t, conn, voteID, mine, optionA)
	testutil.SubmitTestChoices(t, conn, voteID, testutil.ParticipantToken(), optionB)

	req := testutil.MakeRequest("GET", "/votes/"+voteID+"/responses/me", nil,
		map[string]string{"X-Participant-Token": mine})
	w := serveWithPathValue(h.MyResponses, req, voteID)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Responses []models.VoteResponse `json:"responses"`
	}
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Responses) != 1 {
		t.Fatalf("Expected 1 own response, got %d", len(resp.Responses))
	}
	if resp.Responses[0].OptionID != optionA {
		t.Errorf("Expected own option %s, got %s", optionA, resp.Responses[0].OptionID)
	}
}

func TestListResponses(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	testutil.AddTestOption(t, conn, voteID, "B", 1)

	testutil.SubmitTestChoices(t, conn, voteID, testutil.ParticipantToken(), optionA)
	testutil.SubmitTestChoices(t, conn, voteID, testutil.ParticipantToken(), optionA)

	req := testutil.MakeRequest("GET", "/votes/"+voteID+"/responses", nil, nil)
	w := serveWithPathValue(h.ListResponses, req, voteID)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Responses []models.VoteResponse `json:"responses"`
	}
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Responses) != 2 {
		t.Errorf("Expected 2 responses, got %d", len(resp.Responses))
	}
}

func TestResultsSingleChoice(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "single", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, voteID, "B", 1)

	testutil.SubmitTestChoices(t, conn, voteID, testutil.ParticipantToken(), optionA)
	testutil.SubmitTestChoices(t, conn, voteID, testutil.ParticipantToken(), optionA)
	testutil.SubmitTestChoices(t, conn, voteID, testutil.ParticipantToken(), optionB)

	req := testutil.MakeRequest("GET", "/votes/"+voteID+"/results", nil, nil)
	w := serveWithPathValue(h.Results, req, voteID)

	testutil.AssertStatus(t, w, http.StatusOK)

	var rs tally.ResultSet
	testutil.AssertJSON(t, w, &rs)

	if rs.TotalResponses != 3 {
		t.Errorf("Expected 3 total responses, got %d", rs.TotalResponses)
	}
	if rs.ParticipantCount != 3 {
		t.Errorf("Expected 3 participants, got %d", rs.ParticipantCount)
	}
	if len(rs.Options) != 2 {
		t.Fatalf("Expected 2 option results, got %d", len(rs.Options))
	}
	if rs.Options[0].Count != 2 || rs.Options[0].Percentage != 67 {
		t.Errorf("Expected A count 2 at 67%%, got %d at %d%%", rs.Options[0].Count, rs.Options[0].Percentage)
	}
	if rs.Options[1].Count != 1 || rs.Options[1].Percentage != 33 {
		t.Errorf("Expected B count 1 at 33%%, got %d at %d%%", rs.Options[1].Count, rs.Options[1].Percentage)
	}
}

func TestResultsScale(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "scale", true)
	testutil.SubmitTestScale(t, conn, voteID, testutil.ParticipantToken(), 4)
	testutil.SubmitTestScale(t, conn, voteID, testutil.ParticipantToken(), 5)

	req := testutil.MakeRequest("GET", "/votes/"+voteID+"/results", nil, nil)
	w := serveWithPathValue(h.Results, req, voteID)

	testutil.AssertStatus(t, w, http.StatusOK)

	var rs tally.ResultSet
	testutil.AssertJSON(t, w, &rs)

	if rs.Scale == nil {
		t.Fatal("Expected scale results")
	}
	if rs.Scale.ResponseCount != 2 {
		t.Errorf("Expected 2 scale responses, got %d", rs.Scale.ResponseCount)
	}
	if rs.Scale.Average == nil || *rs.Scale.Average != 4.5 {
		t.Errorf("Expected average 4.5, got %v", rs.Scale.Average)
	}
	if len(rs.Scale.Histogram) != 5 {
		t.Errorf("Expected 5 histogram buckets, got %d", len(rs.Scale.Histogram))
	}
}

func TestResultsRanking(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	voteID, _ := testutil.CreateTestVote(t, conn, cfg, "ranking", true)
	optionA := testutil.AddTestOption(t, conn, voteID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, voteID, "B", 1)

	testutil.SubmitTestRanking(t, conn, voteID, testutil.ParticipantToken(),
		map[string]int{optionA: 2, optionB: 1})
	testutil.SubmitTestRanking(t, conn, voteID, testutil.ParticipantToken(),
		map[string]int{optionA: 2, optionB: 1})

	req := testutil.MakeRequest("GET", "/votes/"+voteID+"/results", nil, nil)
	w := serveWithPathValue(h.Results, req, voteID)

	testutil.AssertStatus(t, w, http.StatusOK)

	var rs tally.ResultSet
	testutil.AssertJSON(t, w, &rs)

	if len(rs.Ranking) != 2 {
		t.Fatalf("Expected 2 ranking results, got %d", len(rs.Ranking))
	}
	// B averages 1.0, A averages 2.0; B leads
	if rs.Ranking[0].OptionID != optionB {
		t.Errorf("Expected B first, got %s", rs.Ranking[0].OptionID)
	}
	if rs.Ranking[0].AvgRanking == nil || *rs.Ranking[0].AvgRanking != 1.0 {
		t.Errorf("Expected avg 1.0 for B, got %v", rs.Ranking[0].AvgRanking)
	}
}

func TestResultsVoteNotFound(t *testing.T) {
	_, conn, cfg := newTestVoteHandler(t)
	defer conn.Close()
	h, _ := newTestResponseHandler(t, conn, cfg)

	req := testutil.MakeRequest("GET", "/votes/missing/results", nil, nil)
	w := serveWithPathValue(h.Results, req, "missing")

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
