// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"context"
	"sort"
	"strings"
)

// listLimit caps the tags and commits sections of a Listing.
const listLimit = 10

// Listing is a snapshot of what the module repository offers: its remote
// branches, its most recent version tags, and its most recent commits.
type Listing struct {
	Branches []string
	Tags     []string
	Commits  []string
}

// List inspects the working copy at dir: remote branches excluding symbolic
// refs, the ten most recent v* tags version-sorted descending, and the ten
// most recent commits in one-line form.
func (s *Syncer) List(ctx context.Context, dir string) (Listing, error) {
	listing := Listing{}

	branches, err := s.runner.Output(ctx, dir, "branch", "-r")
	if err != nil {
		return listing, err
	}
	for _, line := range strings.Split(branches, "\n") {
		line = strings.TrimSpace(line)
		// "origin/HEAD -> origin/main" is a symbolic ref, not a branch.
		if line == "" || strings.Contains(line, "->") {
			continue
		}
		listing.Branches = append(listing.Branches, line)
	}

	tags, err := s.runner.Output(ctx, dir, "tag", "-l", "v*")
	if err != nil {
		return listing, err
	}
	for _, line := range strings.Split(tags, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			listing.Tags = append(listing.Tags, line)
		}
	}
	sort.Slice(listing.Tags, func(i, j int) bool {
		return versionLess(listing.Tags[j], listing.Tags[i])
	})
	if len(listing.Tags) > listLimit {
		listing.Tags = listing.Tags[:listLimit]
	}

	commits, err := s.runner.Output(ctx, dir, "log", "--oneline", "-n", "10")
	if err != nil {
		return listing, err
	}
	for _, line := range strings.Split(commits, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			listing.Commits = append(listing.Commits, line)
		}
	}

	return listing, nil
}
