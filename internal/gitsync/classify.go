// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"context"
	"regexp"
)

// commitPattern matches an abbreviated or full commit hash. Fixed-length hex
// is unambiguous, so it never needs a remote query.
var commitPattern = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)

// Classify determines what kind of ref target names, precision-first: hex
// strings are commits without any network round-trip; tags and branches are
// disambiguated against the remote's ref list; anything else is passed
// through to git untouched (RefKindAuto).
//
// A remote query failure also yields RefKindAuto together with the error:
// the direct checkout attempt may still succeed against local refs, so the
// caller should log and continue.
func Classify(ctx context.Context, lister RemoteLister, repoURL, target string) (RefKind, error) {
	if target == "" {
		return RefKindNone, nil
	}
	if commitPattern.MatchString(target) {
		return RefKindCommit, nil
	}

	refs, err := lister.ListRefs(ctx, repoURL)
	if err != nil {
		return RefKindAuto, err
	}
	if refs.HasTag(target) {
		return RefKindTag, nil
	}
	if refs.HasBranch(target) {
		return RefKindBranch, nil
	}
	return RefKindAuto, nil
}
