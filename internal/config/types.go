// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidRepoURL is returned when a repo_url value is empty or whitespace-only.
	ErrInvalidRepoURL = errors.New("invalid repo url")
	// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
	ErrInvalidModuleName = errors.New("invalid module name")
	// ErrInvalidConfigFlag is the sentinel error wrapped by InvalidConfigFlagError.
	ErrInvalidConfigFlag = errors.New("invalid config flag")
	// ErrInvalidRelativeDir is the sentinel error wrapped by InvalidRelativeDirError.
	ErrInvalidRelativeDir = errors.New("invalid relative directory")
)

var (
	// moduleNamePattern constrains module_name to what both a symlink name and
	// a kbuild object directory can safely carry.
	moduleNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

	// configFlagPattern constrains config_flag to the CONFIG_* suffix charset.
	configFlagPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)
)

type (
	// Config holds the module-integration settings. The zero value is not
	// usable; construct via DefaultConfig or the Provider.
	Config struct {
		// RepoURL is the git URL of the module repository to clone.
		RepoURL string `mapstructure:"repo_url" toml:"repo_url"`
		// CloneDir is the clone location, relative to the kernel root.
		CloneDir string `mapstructure:"clone_dir" toml:"clone_dir"`
		// ModuleName names the symlink inside the drivers directory and the
		// kbuild object directory appended to the Makefile.
		ModuleName string `mapstructure:"module_name" toml:"module_name"`
		// ConfigFlag is the kbuild flag suffix: the Makefile entry is gated
		// on CONFIG_<ConfigFlag>.
		ConfigFlag string `mapstructure:"config_flag" toml:"config_flag"`
		// KernelSubdir is the subtree of the clone that the symlink points
		// at (the module's in-kernel sources).
		KernelSubdir string `mapstructure:"kernel_subdir" toml:"kernel_subdir"`
	}

	// InvalidConfigError aggregates all field validation failures.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InvalidModuleNameError is returned when a module_name value cannot name
	// a symlink and kbuild directory.
	InvalidModuleNameError struct {
		Value string
	}

	// InvalidConfigFlagError is returned when a config_flag value is not a
	// valid CONFIG_* suffix.
	InvalidConfigFlagError struct {
		Value string
	}

	// InvalidRelativeDirError is returned when clone_dir or kernel_subdir is
	// empty, absolute, or escapes the kernel root.
	InvalidRelativeDirError struct {
		Field string
		Value string
	}
)

// DefaultConfig returns the built-in defaults: KernelSU integrated as
// drivers/kernelsu gated on CONFIG_KSU.
func DefaultConfig() *Config {
	return &Config{
		RepoURL:      "https://github.com/tiann/KernelSU.git",
		CloneDir:     "KernelSU",
		ModuleName:   "kernelsu",
		ConfigFlag:   "KSU",
		KernelSubdir: "kernel",
	}
}

// Validate checks all fields and aggregates failures into an
// InvalidConfigError. A nil return means the Config is usable.
func (c *Config) Validate() error {
	var fieldErrs []error

	if strings.TrimSpace(c.RepoURL) == "" {
		fieldErrs = append(fieldErrs, fmt.Errorf("repo_url must be non-empty: %w", ErrInvalidRepoURL))
	}
	if !moduleNamePattern.MatchString(c.ModuleName) {
		fieldErrs = append(fieldErrs, &InvalidModuleNameError{Value: c.ModuleName})
	}
	if !configFlagPattern.MatchString(c.ConfigFlag) {
		fieldErrs = append(fieldErrs, &InvalidConfigFlagError{Value: c.ConfigFlag})
	}
	if err := validateRelativeDir("clone_dir", c.CloneDir); err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if err := validateRelativeDir("kernel_subdir", c.KernelSubdir); err != nil {
		fieldErrs = append(fieldErrs, err)
	}

	if len(fieldErrs) > 0 {
		return &InvalidConfigError{FieldErrors: fieldErrs}
	}
	return nil
}

// validateRelativeDir rejects empty, absolute, and tree-escaping paths.
// Both clone_dir and kernel_subdir are interpreted relative to the kernel
// root, so anything else would integrate files outside the tree.
func validateRelativeDir(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return &InvalidRelativeDirError{Field: field, Value: value}
	}
	if clean := filepath.Clean(trimmed); clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return &InvalidRelativeDirError{Field: field, Value: value}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidModuleNameError.
func (e *InvalidModuleNameError) Error() string {
	return fmt.Sprintf("invalid module name %q: must match %s", e.Value, moduleNamePattern)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }

// Error implements the error interface for InvalidConfigFlagError.
func (e *InvalidConfigFlagError) Error() string {
	return fmt.Sprintf("invalid config flag %q: must match %s", e.Value, configFlagPattern)
}

// Unwrap returns ErrInvalidConfigFlag for errors.Is() compatibility.
func (e *InvalidConfigFlagError) Unwrap() error { return ErrInvalidConfigFlag }

// Error implements the error interface for InvalidRelativeDirError.
func (e *InvalidRelativeDirError) Error() string {
	return fmt.Sprintf("invalid %s %q: must be a relative path inside the kernel tree", e.Field, e.Value)
}

// Unwrap returns ErrInvalidRelativeDir for errors.Is() compatibility.
func (e *InvalidRelativeDirError) Unwrap() error { return ErrInvalidRelativeDir }
