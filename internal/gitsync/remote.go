// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"
)

type (
	// RemoteRefs is a snapshot of a remote's tag and branch names.
	RemoteRefs struct {
		Tags     []string
		Branches []string
	}

	// RemoteLister queries a remote repository's ref list. One call fetches
	// everything the classifier needs; tests supply a fake.
	RemoteLister interface {
		ListRefs(ctx context.Context, repoURL string) (RemoteRefs, error)
	}

	gitRemoteLister struct{}
)

// NewRemoteLister creates a RemoteLister backed by go-git.
func NewRemoteLister() RemoteLister {
	return &gitRemoteLister{}
}

// HasTag returns whether name exactly matches a remote tag.
func (r RemoteRefs) HasTag(name string) bool {
	return slices.Contains(r.Tags, name)
}

// HasBranch returns whether name exactly matches a remote branch.
func (r RemoteRefs) HasBranch(name string) bool {
	return slices.Contains(r.Branches, name)
}

// ListRefs lists the remote's refs without cloning, using an in-memory
// remote. Tags and branches come out of the same single round-trip.
func (l *gitRemoteLister) ListRefs(ctx context.Context, repoURL string) (RemoteRefs, error) {
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{repoURL},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return RemoteRefs{}, fmt.Errorf("failed to list remote refs: %w", err)
	}

	var out RemoteRefs
	for _, ref := range refs {
		switch {
		case ref.Name().IsTag():
			out.Tags = append(out.Tags, ref.Name().Short())
		case ref.Name().IsBranch():
			out.Branches = append(out.Branches, ref.Name().Short())
		}
	}
	return out, nil
}
