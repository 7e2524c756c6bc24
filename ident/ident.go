// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidHostKey = errors.New("invalid host key")

// GenerateID creates a random hex ID of the specified byte length.
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateHostKey creates an HMAC-based control key for a vote. The key is
// deterministic from the vote ID and salt, so it can be validated without
// storing it. It authorizes host operations (open/close, edit, delete).
func GenerateHostKey(voteID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(voteID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateHostKey checks if the provided host key is valid for the vote.
func ValidateHostKey(voteID, hostKey, salt string) error {
	expected := GenerateHostKey(voteID, salt)
	if !hmac.Equal([]byte(hostKey), []byte(expected)) {
		return ErrInvalidHostKey
	}
	return nil
}
