// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package participant

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GenerateToken creates a participant token unique with overwhelming
// probability. This is an identification policy, not a security boundary:
// anyone can mint a fresh token by clearing local state, and nothing here
// tries to prevent that.
func GenerateToken() string {
	return fmt.Sprintf("participant_%d_%s", time.Now().UnixMilli(), uuid.NewString())
}

// Store holds the participant-local state for one profile: the token and
// the per-vote "already voted" marks. State persists to a single JSON file
// (the Go rendition of a browser profile's local storage); persistence
// failures are logged and never surfaced, since local marks are an
// optimistic convenience on top of the authoritative remote check.
type Store struct {
	mu    sync.Mutex
	path  string
	state state
}

type state struct {
	Token string          `json:"token,omitempty"`
	Voted map[string]bool `json:"voted,omitempty"`
}

// Open loads the store at path, creating an empty one if the file does not
// exist. A corrupt file is discarded rather than failing: the worst case
// is a fresh token, which the remote dedup check already has to tolerate.
func Open(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &s.state); err != nil {
			slog.Warn("discarding corrupt participant state", "path", path, "error", err)
			s.state = state{}
		}
	}
	if s.state.Voted == nil {
		s.state.Voted = make(map[string]bool)
	}
	return s
}

// Token returns the profile's participant token, generating and persisting
// one on first call. Subsequent calls return the same value.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Token == "" {
		s.state.Token = GenerateToken()
		s.persist()
	}
	return s.state.Token
}

// HasVoteMark reports whether this profile has a local "already voted"
// mark for the given vote.
func (s *Store) HasVoteMark(voteID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Voted[voteID]
}

// MarkVoted records the local "already voted" mark for the given vote.
// Marking twice is a no-op.
func (s *Store) MarkVoted(voteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Voted[voteID] {
		return
	}
	s.state.Voted[voteID] = true
	s.persist()
}

// persist writes the state file. Callers hold s.mu.
func (s *Store) persist() {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		slog.Warn("failed to encode participant state", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		slog.Warn("failed to write participant state", "path", s.path, "error", err)
	}
}
