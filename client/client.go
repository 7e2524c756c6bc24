// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/voteup/server/eligibility"
	"github.com/voteup/server/ingest"
	"github.com/voteup/server/models"
	"github.com/voteup/server/participant"
	"github.com/voteup/server/tally"
)

// ErrNotEligible is returned by Submit when the vote is closed or this
// participant has already responded.
var ErrNotEligible = fmt.Errorf("not eligible to submit")

// Client talks to a VoteUp server on behalf of one participant profile.
// The profile's token and voted marks live in a participant.Store, so a
// Client behaves like one browser: same token across runs, local marks
// consulted before submitting.
type Client struct {
	baseURL string
	http    *http.Client
	profile *participant.Store
}

// New creates a client for the server at baseURL using the participant
// state file at statePath.
func New(baseURL, statePath string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		profile: participant.Open(statePath),
	}
}

// Token returns this profile's participant token.
func (c *Client) Token() string {
	return c.profile.Token()
}

// FetchVote retrieves a vote definition with its options.
func (c *Client) FetchVote(ctx context.Context, voteID string) (*models.Vote, error) {
	var vote models.Vote
	if err := c.get(ctx, "/votes/"+voteID, &vote); err != nil {
		return nil, err
	}
	return &vote, nil
}

// FetchResponses retrieves all raw response rows for a vote. The server
// wraps the rows in a {"responses": [...]} envelope.
func (c *Client) FetchResponses(ctx context.Context, voteID string) ([]models.VoteResponse, error) {
	var payload struct {
		Responses []models.VoteResponse `json:"responses"`
	}
	if err := c.get(ctx, "/votes/"+voteID+"/responses", &payload); err != nil {
		return nil, err
	}
	return payload.Responses, nil
}

// FetchResults retrieves the server-side aggregation for a vote.
func (c *Client) FetchResults(ctx context.Context, voteID string) (*tally.ResultSet, error) {
	var results tally.ResultSet
	if err := c.get(ctx, "/votes/"+voteID+"/results", &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// Submit validates the answers locally, checks eligibility the way a
// browser client does (closed vote, then remote responses, then the local
// mark), posts the submission, and records the local voted mark on
// acceptance. Returns ErrNotEligible without a network write when the
// eligibility check fails.
func (c *Client) Submit(ctx context.Context, voteID string, answers []models.Answer) error {
	vote, err := c.FetchVote(ctx, voteID)
	if err != nil {
		return err
	}

	remote, err := c.FetchResponses(ctx, voteID)
	if err != nil {
		return err
	}

	token := c.profile.Token()
	if !eligibility.CanSubmit(vote, token, remote, c.profile) {
		return ErrNotEligible
	}

	// Validate before sending; the server repeats this check.
	if _, err := ingest.BuildSubmission(vote, token, answers); err != nil {
		return err
	}

	body, err := json.Marshal(models.SubmitRequest{Answers: answers})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/votes/"+voteID+"/responses", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Participant-Token", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return decodeError(resp)
	}

	c.profile.MarkVoted(voteID)
	return nil
}

// Live subscribes to the vote's change feed and invokes onChange once per
// notification until ctx is cancelled or the connection drops. The first
// call happens only after a change; callers wanting an initial render
// should fetch results themselves before calling Live.
func (c *Client) Live(ctx context.Context, voteID string, onChange func()) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/votes/" + voteID + "/live"

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("live feed dial failed: %w", err)
	}
	defer conn.CloseNow()

	for {
		var event struct {
			Event  string `json:"event"`
			VoteID string `json:"vote_id"`
		}
		if err := wsjson.Read(ctx, conn, &event); err != nil {
			if ctx.Err() != nil {
				conn.Close(websocket.StatusNormalClosure, "")
				return nil
			}
			return err
		}
		if event.Event == "changed" {
			onChange()
		}
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Participant-Token", c.profile.Token())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr models.ErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
