// SPDX-License-Identifier: MPL-2.0

package ktree

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestTree(t *testing.T) *Tree {
	t.Helper()
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "drivers"))
	tree, err := Locate(root)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestEnsureModuleLink_CreatesRelativeSymlink(t *testing.T) {
	t.Parallel()
	tree := newTestTree(t)
	target := filepath.Join(tree.Root.String(), "KernelSU", "kernel")
	mkdir(t, target)

	rel, err := tree.EnsureModuleLink("kernelsu", target)
	if err != nil {
		t.Fatalf("EnsureModuleLink = %v, want nil", err)
	}
	if rel != filepath.Join("..", "KernelSU", "kernel") {
		t.Errorf("relative target = %q, want ../KernelSU/kernel", rel)
	}

	linkPath := filepath.Join(tree.DriversDir.String(), "kernelsu")
	got, err := os.Readlink(linkPath)
	if err != nil {
		t.Fatalf("Readlink = %v, want symlink at %s", err, linkPath)
	}
	if got != rel {
		t.Errorf("symlink target = %q, want %q", got, rel)
	}

	// The relative link must actually resolve to the module subtree.
	resolved, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		t.Fatalf("EvalSymlinks = %v", err)
	}
	wantResolved, _ := filepath.EvalSymlinks(target)
	if resolved != wantResolved {
		t.Errorf("link resolves to %q, want %q", resolved, wantResolved)
	}
}

func TestEnsureModuleLink_RefreshesStaleLink(t *testing.T) {
	t.Parallel()
	tree := newTestTree(t)
	linkPath := filepath.Join(tree.DriversDir.String(), "kernelsu")
	if err := os.Symlink("stale/target", linkPath); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(tree.Root.String(), "KernelSU", "kernel")
	rel, err := tree.EnsureModuleLink("kernelsu", target)
	if err != nil {
		t.Fatalf("EnsureModuleLink over stale link = %v, want nil", err)
	}
	if got, _ := os.Readlink(linkPath); got != rel {
		t.Errorf("symlink target = %q, want refreshed %q", got, rel)
	}
}

func TestEnsureModuleLink_RefusesDirectory(t *testing.T) {
	t.Parallel()
	tree := newTestTree(t)
	mkdir(t, filepath.Join(tree.DriversDir.String(), "kernelsu"))

	if _, err := tree.EnsureModuleLink("kernelsu", tree.Root.String()); err == nil {
		t.Fatal("EnsureModuleLink should refuse to replace a real directory")
	}
}

func TestRemoveModuleLink(t *testing.T) {
	t.Parallel()
	tree := newTestTree(t)
	linkPath := filepath.Join(tree.DriversDir.String(), "kernelsu")
	if err := os.Symlink("../KernelSU/kernel", linkPath); err != nil {
		t.Fatal(err)
	}

	removed, err := tree.RemoveModuleLink("kernelsu")
	if err != nil {
		t.Fatalf("RemoveModuleLink = %v, want nil", err)
	}
	if !removed {
		t.Error("RemoveModuleLink should report removal")
	}
	if _, err := os.Lstat(linkPath); !os.IsNotExist(err) {
		t.Error("symlink should be gone")
	}
}

func TestRemoveModuleLink_MissingIsNoop(t *testing.T) {
	t.Parallel()
	tree := newTestTree(t)

	removed, err := tree.RemoveModuleLink("kernelsu")
	if err != nil {
		t.Fatalf("RemoveModuleLink on missing link = %v, want nil", err)
	}
	if removed {
		t.Error("nothing should have been removed")
	}
}

func TestRemoveModuleLink_LeavesRegularFiles(t *testing.T) {
	t.Parallel()
	tree := newTestTree(t)
	path := filepath.Join(tree.DriversDir.String(), "kernelsu")
	if err := os.WriteFile(path, []byte("real file"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := tree.RemoveModuleLink("kernelsu")
	if err != nil {
		t.Fatalf("RemoveModuleLink = %v, want nil", err)
	}
	if removed {
		t.Error("a regular file must not be removed")
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("regular file should still exist")
	}
}
