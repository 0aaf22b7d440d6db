// SPDX-License-Identifier: MPL-2.0

package gitsync

import (
	"errors"
	"fmt"
)

// ErrInvalidRefKind is the sentinel error wrapped by InvalidRefKindError.
var ErrInvalidRefKind = errors.New("invalid ref kind")

const (
	// RefKindCommit is a 7-40 character hex string; resolved locally,
	// no remote query needed.
	RefKindCommit RefKind = "commit"
	// RefKindTag exactly matches a remote tag name.
	RefKindTag RefKind = "tag"
	// RefKindBranch exactly matches a remote branch name.
	RefKindBranch RefKind = "branch"
	// RefKindAuto matched nothing; the literal string is handed to git,
	// inheriting its resolution order (HEAD~1 and friends work).
	RefKindAuto RefKind = "auto"
	// RefKindNone means no target was given; synchronization goes straight
	// to the latest-tag fallback.
	RefKindNone RefKind = "none"
)

type (
	// RefKind is the classification of a user-supplied revision string.
	RefKind string

	// InvalidRefKindError is returned when a RefKind value is not recognized.
	// It wraps ErrInvalidRefKind for errors.Is() compatibility.
	InvalidRefKindError struct {
		Value RefKind
	}
)

// String returns the string representation of the RefKind.
func (k RefKind) String() string { return string(k) }

// IsValid returns whether the RefKind is one of the defined values.
func (k RefKind) IsValid() (bool, []error) {
	switch k {
	case RefKindCommit, RefKindTag, RefKindBranch, RefKindAuto, RefKindNone:
		return true, nil
	default:
		return false, []error{&InvalidRefKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidRefKindError.
func (e *InvalidRefKindError) Error() string {
	return fmt.Sprintf("invalid ref kind %q", e.Value)
}

// Unwrap returns ErrInvalidRefKind for errors.Is() compatibility.
func (e *InvalidRefKindError) Unwrap() error { return ErrInvalidRefKind }
