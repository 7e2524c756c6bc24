// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package images

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Cleaner removes stored option images when a vote is deleted. Image
// upload and serving belong to the external object store; the only
// obligation this side carries is best-effort cleanup so deleted votes
// do not leak storage.
type Cleaner struct {
	baseDir string
}

// NewCleaner returns a Cleaner rooted at baseDir. Images for a vote live
// under baseDir/<voteID>/.
func NewCleaner(baseDir string) *Cleaner {
	return &Cleaner{baseDir: baseDir}
}

// DeleteVoteImages removes every stored image for the vote. Failures are
// logged, never returned: image cleanup must not block deletion of the
// vote record itself.
func (c *Cleaner) DeleteVoteImages(voteID string) {
	if c.baseDir == "" || voteID == "" {
		return
	}
	// Refuse anything that could escape the base directory.
	if strings.ContainsAny(voteID, `/\`) || voteID == "." || voteID == ".." {
		slog.Warn("refusing image cleanup for suspicious vote id", "vote_id", voteID)
		return
	}

	dir := filepath.Join(c.baseDir, voteID)
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("failed to delete vote images", "vote_id", voteID, "dir", dir, "error", err)
		return
	}
	slog.Info("vote images deleted", "vote_id", voteID)
}

// ImagePath returns where an option's image would be stored, for callers
// that write uploads on the vote's behalf.
func (c *Cleaner) ImagePath(voteID, optionID string) string {
	return filepath.Join(c.baseDir, voteID, fmt.Sprintf("%s.img", optionID))
}
