// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_IsValid(t *testing.T) {
	t.Parallel()
	valid, errs := FilesystemPath("drivers/Makefile").IsValid()
	if !valid || len(errs) != 0 {
		t.Errorf("non-empty path should be valid, got errs: %v", errs)
	}
}

func TestFilesystemPath_IsValid_Empty(t *testing.T) {
	t.Parallel()
	for _, p := range []FilesystemPath{"", "   ", "\t"} {
		valid, errs := p.IsValid()
		if valid {
			t.Fatalf("FilesystemPath(%q).IsValid() = true, want false", p)
		}
		if len(errs) != 1 {
			t.Fatalf("expected 1 error, got %d", len(errs))
		}
		if !errors.Is(errs[0], ErrInvalidFilesystemPath) {
			t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", errs[0])
		}
	}
}
