// SPDX-License-Identifier: MPL-2.0

package ktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"modwire-cli/pkg/types"
)

// driversDirCandidates are the conventional drivers locations, checked in
// order: ACK/GKI repo checkouts nest the kernel under common/, plain kernel
// trees have drivers/ at the root.
var driversDirCandidates = []string{
	filepath.Join("common", "drivers"),
	"drivers",
}

// ErrNoDriversDir is the sentinel error wrapped by NoDriversDirError.
var ErrNoDriversDir = errors.New("no drivers directory found")

type (
	// Tree holds the resolved paths of a kernel source tree that integration
	// operates on. Construct via Locate.
	Tree struct {
		// Root is the kernel source root the tree was located from.
		Root types.FilesystemPath
		// DriversDir is the resolved drivers directory.
		DriversDir types.FilesystemPath
		// Makefile is the drivers Makefile that receives the obj-$(CONFIG_*) entry.
		Makefile types.FilesystemPath
		// Kconfig is the drivers Kconfig that receives the source directive.
		Kconfig types.FilesystemPath
	}

	// NoDriversDirError is returned when none of the candidate drivers
	// locations exists under the root. It wraps ErrNoDriversDir and maps to
	// exit code 127 at the CLI layer.
	NoDriversDirError struct {
		Root       string
		Candidates []string
	}
)

// Error implements the error interface for NoDriversDirError.
func (e *NoDriversDirError) Error() string {
	return fmt.Sprintf("no drivers directory found under %s (checked %s)",
		e.Root, strings.Join(e.Candidates, ", "))
}

// Unwrap returns ErrNoDriversDir for errors.Is() compatibility.
func (e *NoDriversDirError) Unwrap() error { return ErrNoDriversDir }

// Locate resolves the drivers directory under root, trying common/drivers
// before drivers, and derives the Makefile and Kconfig paths used for
// patching. It has no side effects beyond existence checks.
func Locate(root string) (*Tree, error) {
	for _, candidate := range driversDirCandidates {
		dir := filepath.Join(root, candidate)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		return &Tree{
			Root:       types.FilesystemPath(root),
			DriversDir: types.FilesystemPath(dir),
			Makefile:   types.FilesystemPath(filepath.Join(dir, "Makefile")),
			Kconfig:    types.FilesystemPath(filepath.Join(dir, "Kconfig")),
		}, nil
	}

	return nil, &NoDriversDirError{Root: root, Candidates: driversDirCandidates}
}
