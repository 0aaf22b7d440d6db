// SPDX-License-Identifier: MPL-2.0

// Package gitsync keeps the module repository clone in step with a requested
// revision. It classifies the revision (commit hash, tag, branch, or
// pass-through), synchronizes the working copy, and falls back to the latest
// tag (then main, then master) when a checkout fails. Remote ref queries go
// through go-git's in-memory remote; working-copy operations shell out to the
// git binary, whose own revision resolution the pass-through mode relies on.
package gitsync
