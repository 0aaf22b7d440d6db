// SPDX-License-Identifier: MPL-2.0

// Package ktree locates the drivers directory of a kernel source tree and
// performs the build-tree integration: a symlink into the module's kernel
// subtree plus guarded Makefile/Kconfig line edits. The symlink, the Makefile
// entry, and the Kconfig source line form a bundle that Integrate creates
// together and Revert removes together; every individual step is idempotent
// so partial prior states never cause errors.
package ktree
