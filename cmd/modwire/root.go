// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"modwire-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// cleanup reverts all build-tree modifications instead of setting up
	cleanup bool
	// chdir runs modwire as if started in the given directory
	chdir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "modwire [revision]",
		Short: "Wire an out-of-tree kernel module into a kernel source tree",
		Long: TitleStyle.Render("modwire") + SubtitleStyle.Render(" - out-of-tree kernel module integration") + `

modwire clones a kernel module repository (KernelSU by default) next to
your kernel sources, checks out a requested revision, and wires the
module into the kbuild system: a symlink in the drivers directory plus
guarded Makefile and Kconfig entries. All edits are idempotent and fully
reversible with --cleanup.

Run it from the kernel source root (the directory containing drivers/
or common/drivers).

` + SubtitleStyle.Render("Examples:") + `
  modwire                   Set up or update to the latest tag
  modwire v0.9.5            Set up or update to tag v0.9.5
  modwire abc1234           Set up or update to a commit
  modwire --cleanup         Revert all modifications
  modwire list              Show available branches, tags and commits`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRoot,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/modwire/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if modwire was started in this directory")
	rootCmd.Flags().BoolVar(&cleanup, "cleanup", false, "revert the symlink and Makefile/Kconfig edits and delete the clone")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if chdir == "" {
			return nil
		}
		if err := os.Chdir(chdir); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
		return nil
	}

	// Add subcommands
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// runRoot dispatches the two top-level modes: cleanup when --cleanup is
// given, otherwise setup/update to the optional revision argument.
func runRoot(cmd *cobra.Command, args []string) error {
	if cleanup {
		if len(args) > 0 {
			return fmt.Errorf("--cleanup takes no revision argument")
		}
		return runCleanup(cmd, args)
	}

	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	return runSetup(cmd.Context(), target)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// newLogger builds the step logger all commands share. Verbose mode lowers
// the level so each git invocation becomes visible.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}

// formatErrorForDisplay renders an error for stderr, expanding actionable
// errors into their suggestion list.
func formatErrorForDisplay(err error, verbose bool) string {
	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		return actionable.Format(verbose)
	}
	return err.Error()
}

// printError writes the formatted error to w. Suggestions and, in verbose
// mode, the full error chain only surface here; err.Error() alone carries
// neither.
func printError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
}

// renderIssue prints a glamour-rendered issue card to stderr; purely
// advisory, so render failures are ignored.
func renderIssue(id issue.Id) {
	card := issue.Get(id)
	if card == nil {
		return
	}
	out, err := card.Render("dark")
	if err != nil {
		return
	}
	fmt.Fprintln(os.Stderr, out)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		printError(os.Stderr, err, verbose)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
