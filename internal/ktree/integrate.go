// SPDX-License-Identifier: MPL-2.0

package ktree

import (
	"fmt"
	"os"
	"path/filepath"
)

type (
	// Opts carries the module-specific names the integration bundle uses.
	Opts struct {
		// ModuleName names the symlink and the kbuild object directory.
		ModuleName string
		// ConfigFlag is the CONFIG_* suffix gating the Makefile entry.
		ConfigFlag string
		// CloneDir is the module clone location, relative to the kernel root.
		CloneDir string
		// KernelSubdir is the clone subtree the symlink points at.
		KernelSubdir string
	}

	// IntegrateReport describes what Integrate actually changed; repeated
	// runs report all-false except the always-refreshed link.
	IntegrateReport struct {
		LinkTarget       string
		MakefileAppended bool
		KconfigInserted  bool
	}

	// RevertReport describes what Revert actually removed.
	RevertReport struct {
		LinkRemoved          bool
		MakefileLinesRemoved int
		KconfigLinesRemoved  int
		CloneRemoved         bool
	}
)

// Integrate wires the module into the build tree: symlink, Makefile entry,
// Kconfig source directive. Each step is independently idempotent, so running
// it twice produces no duplicate entries.
func (t *Tree) Integrate(opts Opts) (IntegrateReport, error) {
	report := IntegrateReport{}

	target := filepath.Join(t.Root.String(), opts.CloneDir, opts.KernelSubdir)
	rel, err := t.EnsureModuleLink(opts.ModuleName, target)
	if err != nil {
		return report, err
	}
	report.LinkTarget = rel

	report.MakefileAppended, err = t.EnsureMakefileEntry(opts.ConfigFlag, opts.ModuleName)
	if err != nil {
		return report, err
	}

	report.KconfigInserted, err = t.EnsureKconfigSource(opts.ModuleName)
	if err != nil {
		return report, err
	}

	return report, nil
}

// Revert undoes Integrate and deletes the clone directory. Every removal is
// guarded, so a tree that was never set up (or only partially set up) reverts
// without errors.
func (t *Tree) Revert(opts Opts) (RevertReport, error) {
	report := RevertReport{}

	var err error
	report.LinkRemoved, err = t.RemoveModuleLink(opts.ModuleName)
	if err != nil {
		return report, err
	}

	report.MakefileLinesRemoved, err = t.RemoveMakefileEntries(opts.ModuleName)
	if err != nil {
		return report, err
	}

	report.KconfigLinesRemoved, err = t.RemoveKconfigSource(opts.ModuleName)
	if err != nil {
		return report, err
	}

	cloneDir := filepath.Join(t.Root.String(), opts.CloneDir)
	if _, statErr := os.Stat(cloneDir); statErr == nil {
		if err := os.RemoveAll(cloneDir); err != nil {
			return report, fmt.Errorf("failed to remove clone directory %s: %w", cloneDir, err)
		}
		report.CloneRemoved = true
	}

	return report, nil
}
