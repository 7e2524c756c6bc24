// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident provides ID generation and host key validation.

# Host Keys

Host keys use HMAC-SHA256 to create deterministic, verifiable keys:

	hostKey := ident.GenerateHostKey(voteID, salt)
	err := ident.ValidateHostKey(voteID, hostKey, salt)

The key is URL-safe base64 encoded without padding. Since it's
deterministic, the same vote ID and salt always produce the same key,
so validation needs no database lookup. Host authentication proper
(accounts, sessions) is delegated to an external provider; the host key
only gates control operations on a single vote.

# ID Generation

Random hex IDs for database records:

	id, err := ident.GenerateID(16)  // 32 hex characters
*/
package ident
