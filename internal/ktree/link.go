// SPDX-License-Identifier: MPL-2.0

package ktree

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureModuleLink creates or refreshes the symlink <drivers>/<name> pointing
// at targetDir via a path relative to the drivers directory, so the link
// survives moving the whole tree. An existing entry is replaced (force
// semantics), except a real directory, which is never silently destroyed.
// It returns the relative link target.
func (t *Tree) EnsureModuleLink(name, targetDir string) (string, error) {
	linkPath := filepath.Join(t.DriversDir.String(), name)

	rel, err := filepath.Rel(t.DriversDir.String(), targetDir)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative link target for %s: %w", targetDir, err)
	}

	if info, err := os.Lstat(linkPath); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("refusing to replace directory %s with a symlink", linkPath)
		}
		if err := os.Remove(linkPath); err != nil {
			return "", fmt.Errorf("failed to remove existing %s: %w", linkPath, err)
		}
	}

	if err := os.Symlink(rel, linkPath); err != nil {
		return "", fmt.Errorf("failed to create symlink %s -> %s: %w", linkPath, rel, err)
	}
	return rel, nil
}

// RemoveModuleLink removes <drivers>/<name> iff it is a symlink. A missing
// entry is a no-op; anything that is not a symlink is left untouched so
// cleanup never destroys real files.
func (t *Tree) RemoveModuleLink(name string) (bool, error) {
	linkPath := filepath.Join(t.DriversDir.String(), name)

	info, err := os.Lstat(linkPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect %s: %w", linkPath, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}

	if err := os.Remove(linkPath); err != nil {
		return false, fmt.Errorf("failed to remove symlink %s: %w", linkPath, err)
	}
	return true, nil
}
