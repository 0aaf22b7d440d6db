// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects ConfigDir for tests. os.UserHomeDir() does not
// reliably respect the HOME env var on every platform (macOS in CI, notably),
// so tests point the lookup at a temp dir instead of faking the environment.
var configDirOverride string

// SetConfigDirOverride points ConfigDir at dir until Reset is called.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the config dir override. Call from test cleanup.
func Reset() {
	configDirOverride = ""
}
