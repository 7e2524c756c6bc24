// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package images handles best-effort cleanup of stored option images when
// a vote is deleted. Upload, compression, and serving are delegated to an
// external object store and are out of scope here.
package images
