// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"

	"modwire-cli/pkg/types"
)

func TestExitError_MessageFromCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("no drivers directory")
	err := &ExitError{Code: types.ExitCodeNoDriversDir, Err: cause}

	if err.Error() != "no drivers directory" {
		t.Errorf("Error() = %q, want cause message", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ExitError should unwrap to its cause")
	}
}

func TestExitError_MessageWithoutCause(t *testing.T) {
	t.Parallel()
	err := &ExitError{Code: 2}
	if err.Error() != "exit status 2" {
		t.Errorf("Error() = %q, want synthesized message", err.Error())
	}
}
