// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package images

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeleteVoteImages(t *testing.T) {
	base := t.TempDir()
	c := NewCleaner(base)

	dir := filepath.Join(base, "vote123")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create image dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "opt1.img"), []byte("png"), 0o644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}

	c.DeleteVoteImages("vote123")

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("Expected image dir to be removed, stat err = %v", err)
	}
}

func TestDeleteVoteImagesMissingDir(t *testing.T) {
	c := NewCleaner(t.TempDir())

	// RemoveAll on a missing path is a no-op; must not log spuriously or panic.
	c.DeleteVoteImages("never-existed")
}

func TestDeleteVoteImagesRefusesTraversal(t *testing.T) {
	base := t.TempDir()
	c := NewCleaner(base)

	victim := filepath.Join(base, "keep.txt")
	if err := os.WriteFile(victim, []byte("data"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	for _, id := range []string{"..", ".", "../other", `a\b`, ""} {
		c.DeleteVoteImages(id)
	}

	if _, err := os.Stat(victim); err != nil {
		t.Errorf("Expected sibling file to survive, stat err = %v", err)
	}
}

func TestImagePath(t *testing.T) {
	c := NewCleaner("/var/lib/voteup/images")

	got := c.ImagePath("vote1", "optA")
	want := filepath.Join("/var/lib/voteup/images", "vote1", "optA.img")
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
