// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
)

// fallbackBranches are tried in order when the repository has no tags.
var fallbackBranches = []string{"main", "master"}

type (
	// Request describes one synchronization run.
	Request struct {
		// RepoURL is the git URL of the module repository.
		RepoURL string
		// CloneDir is the absolute path of the working copy.
		CloneDir string
		// Target is the user-supplied revision; empty means latest tag.
		Target string
	}

	// Result reports where the working copy ended up.
	Result struct {
		// Kind is the classification of the requested target.
		Kind RefKind
		// Ref is the ref that was checked out ("" when StayedPut).
		Ref string
		// Cloned reports whether a fresh clone was made.
		Cloned bool
		// FellBack reports whether the fallback ladder was used.
		FellBack bool
		// StayedPut reports that even the fallback found nothing to check
		// out and the working copy remains on its previous ref (non-fatal).
		StayedPut bool
	}

	// Syncer clones and updates the module repository. Only the initial
	// clone is fatal; every checkout failure rolls into the fallback ladder.
	Syncer struct {
		runner Runner
		lister RemoteLister
		log    *log.Logger
	}
)

// New creates a Syncer.
func New(runner Runner, lister RemoteLister, logger *log.Logger) *Syncer {
	return &Syncer{runner: runner, lister: lister, log: logger}
}

// Sync ensures the clone exists, stashes local changes, fetches all refs,
// and checks out the classified target, falling back to the latest tag (then
// main, then master) on any checkout failure.
func (s *Syncer) Sync(ctx context.Context, req Request) (Result, error) {
	result := Result{}

	cloned, err := s.ensureClone(ctx, req)
	if err != nil {
		return result, err
	}
	result.Cloned = cloned

	kind, err := Classify(ctx, s.lister, req.RepoURL, req.Target)
	if err != nil {
		// The classifier could not reach the remote; the literal checkout
		// below may still resolve against local refs.
		s.log.Warn("remote ref query failed, passing target through to git", "err", err)
	}
	result.Kind = kind
	s.log.Debug("classified target", "target", req.Target, "kind", kind)

	// A dirty working copy would make every checkout fail.
	if err := s.runner.Run(ctx, req.CloneDir, "stash"); err != nil {
		s.log.Debug("stash failed", "err", err)
	}
	if err := s.runner.Run(ctx, req.CloneDir, "fetch", "--all", "--tags"); err != nil {
		// Local refs may still satisfy the checkout.
		s.log.Warn("fetch failed, continuing with local refs", "err", err)
	}

	checkedOut := false
	switch kind {
	case RefKindNone:
		// No target given: straight to the fallback.
	case RefKindBranch:
		checkedOut = s.checkoutBranch(ctx, req.CloneDir, req.Target)
	case RefKindTag:
		checkedOut = s.checkoutTag(ctx, req.CloneDir, req.Target)
	case RefKindCommit:
		checkedOut = s.checkout(ctx, req.CloneDir, req.Target)
	case RefKindAuto:
		checkedOut = s.checkoutAuto(ctx, req.CloneDir, req.Target)
	}

	if checkedOut {
		result.Ref = req.Target
		s.logHead(ctx, req.CloneDir)
		return result, nil
	}

	if kind != RefKindNone {
		s.log.Warn("checkout failed, falling back to latest tag", "target", req.Target)
	}
	result.FellBack = true

	ref, ok := s.fallback(ctx, req.CloneDir)
	if !ok {
		s.log.Warn("no tags and no main/master branch; staying on the current ref")
		result.StayedPut = true
		return result, nil
	}
	result.Ref = ref
	s.logHead(ctx, req.CloneDir)
	return result, nil
}

// ensureClone clones the repository when the working copy is absent. This is
// the one git step whose failure is fatal.
func (s *Syncer) ensureClone(ctx context.Context, req Request) (bool, error) {
	if _, err := git.PlainOpen(req.CloneDir); err == nil {
		s.log.Debug("reusing existing clone", "dir", req.CloneDir)
		return false, nil
	}
	if _, err := os.Stat(req.CloneDir); err == nil {
		return false, fmt.Errorf("%s exists but is not a git repository", req.CloneDir)
	}

	s.log.Info("cloning module repository", "url", req.RepoURL, "dir", req.CloneDir)
	if err := s.runner.Run(ctx, "", "clone", req.RepoURL, req.CloneDir); err != nil {
		return false, fmt.Errorf("failed to clone %s: %w", req.RepoURL, err)
	}
	return true, nil
}

// checkout is a bare checkout attempt; failure only branches, never aborts.
func (s *Syncer) checkout(ctx context.Context, dir, ref string) bool {
	if err := s.runner.Run(ctx, dir, "checkout", ref); err != nil {
		s.log.Debug("checkout failed", "ref", ref, "err", err)
		return false
	}
	return true
}

// checkoutBranch checks the branch out and fast-forwards it from the remote.
func (s *Syncer) checkoutBranch(ctx context.Context, dir, name string) bool {
	if !s.checkout(ctx, dir, name) {
		return false
	}
	if err := s.runner.Run(ctx, dir, "pull", "origin", name); err != nil {
		s.log.Debug("pull failed", "branch", name, "err", err)
		return false
	}
	return true
}

// checkoutTag prefers the fully-qualified tag ref so a same-named branch can
// never shadow it, then retries with the bare name.
func (s *Syncer) checkoutTag(ctx context.Context, dir, name string) bool {
	if s.checkout(ctx, dir, "refs/tags/"+name) {
		return true
	}
	return s.checkout(ctx, dir, name)
}

// checkoutAuto hands the literal string to git, inheriting git's own
// resolution order (so HEAD~1 and similar relative refs work). When the
// result is a symbolic ref, i.e. a branch, it additionally pulls.
func (s *Syncer) checkoutAuto(ctx context.Context, dir, target string) bool {
	if !s.checkout(ctx, dir, target) {
		return false
	}
	if err := s.runner.Run(ctx, dir, "symbolic-ref", "-q", "HEAD"); err != nil {
		// Detached HEAD: nothing to pull.
		return true
	}
	if err := s.runner.Run(ctx, dir, "pull"); err != nil {
		s.log.Debug("pull failed", "target", target, "err", err)
		return false
	}
	return true
}

// fallback resolves the most recent reachable tag and checks it out; with no
// tags it tries main then master. Returns the ref it landed on.
func (s *Syncer) fallback(ctx context.Context, dir string) (string, bool) {
	tag, err := s.runner.Output(ctx, dir, "describe", "--tags", "--abbrev=0")
	if err == nil && tag != "" {
		if s.checkout(ctx, dir, tag) {
			s.log.Info("checked out latest tag", "tag", tag)
			return tag, true
		}
	} else {
		s.log.Debug("no tags reachable", "err", err)
	}

	for _, branch := range fallbackBranches {
		if s.checkout(ctx, dir, branch) {
			s.log.Info("checked out default branch", "branch", branch)
			return branch, true
		}
	}
	return "", false
}

// logHead reports the resulting position; best-effort, purely informational.
func (s *Syncer) logHead(ctx context.Context, dir string) {
	head, err := s.runner.Output(ctx, dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return
	}
	s.log.Info("working copy synchronized", "head", head)
}
