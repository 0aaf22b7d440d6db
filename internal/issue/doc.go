// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error infrastructure: actionable errors
// carrying fix suggestions, and a catalog of markdown "issue cards" rendered
// with glamour for the fatal conditions the CLI can hit.
package issue
