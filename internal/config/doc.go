// SPDX-License-Identifier: MPL-2.0

// Package config loads modwire configuration: which module repository to
// integrate, the name it gets inside the kernel tree, and the kbuild flag
// that gates its build. Configuration comes from a TOML file in the platform
// config directory, overridable via MODWIRE_* environment variables and the
// --config flag. A missing config file silently yields defaults; a malformed
// existing file is an error.
package config
