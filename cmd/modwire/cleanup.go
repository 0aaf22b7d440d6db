// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"modwire-cli/internal/issue"
	"modwire-cli/internal/ktree"
	"modwire-cli/pkg/types"

	"github.com/spf13/cobra"
)

// cleanupCmd reverts the integration; also reachable as the root --cleanup
// flag for parity with the original one-flag interface.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Revert all build-tree modifications and delete the clone",
	Long: `Revert everything setup did: remove the drivers symlink, delete the
module's Makefile and Kconfig lines, and delete the cloned repository.

Every step is guarded, so cleaning up a tree that was never (or only
partially) set up succeeds without errors.`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd.Context(), logger)
	if err != nil {
		return err
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	tree, err := ktree.Locate(root)
	if err != nil {
		renderIssue(issue.DriversDirNotFoundId)
		return &ExitError{Code: types.ExitCodeNoDriversDir, Err: err}
	}

	report, err := tree.Revert(ktree.Opts{
		ModuleName:   cfg.ModuleName,
		ConfigFlag:   cfg.ConfigFlag,
		CloneDir:     cfg.CloneDir,
		KernelSubdir: cfg.KernelSubdir,
	})
	if err != nil {
		return issue.WrapWithOperation(err, "revert build-tree integration")
	}

	check := SuccessStyle.Render("✓")
	note := func(removed bool, what string) string {
		if removed {
			return fmt.Sprintf("%s %s removed", check, what)
		}
		return fmt.Sprintf("%s %s %s", check, what, SubtitleStyle.Render("(not present)"))
	}

	fmt.Println(note(report.LinkRemoved, "symlink"))
	fmt.Println(note(report.MakefileLinesRemoved > 0, "Makefile entry"))
	fmt.Println(note(report.KconfigLinesRemoved > 0, "Kconfig directive"))
	fmt.Println(note(report.CloneRemoved, "clone directory"))
	return nil
}
