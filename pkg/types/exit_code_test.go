// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCode_Validate_Valid(t *testing.T) {
	t.Parallel()
	for _, c := range []ExitCode{0, 1, 127, 255} {
		if err := c.Validate(); err != nil {
			t.Errorf("ExitCode(%d).Validate() = %v, want nil", c, err)
		}
	}
}

func TestExitCode_Validate_OutOfRange(t *testing.T) {
	t.Parallel()
	for _, c := range []ExitCode{-1, 256, 1000} {
		err := c.Validate()
		if err == nil {
			t.Fatalf("ExitCode(%d).Validate() = nil, want error", c)
		}
		if !errors.Is(err, ErrInvalidExitCode) {
			t.Errorf("error should wrap ErrInvalidExitCode, got: %v", err)
		}
		var codeErr *InvalidExitCodeError
		if !errors.As(err, &codeErr) {
			t.Fatalf("error should be *InvalidExitCodeError, got: %T", err)
		}
		if codeErr.Value != c {
			t.Errorf("InvalidExitCodeError.Value = %d, want %d", codeErr.Value, c)
		}
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	t.Parallel()
	if !ExitCode(0).IsSuccess() {
		t.Error("ExitCode(0).IsSuccess() = false, want true")
	}
	if ExitCodeNoDriversDir.IsSuccess() {
		t.Error("ExitCodeNoDriversDir.IsSuccess() = true, want false")
	}
}
