// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"modwire-cli/internal/gitsync"
	"modwire-cli/internal/issue"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the module repository's branches, recent tags and commits",
	Long: `Inspect the cloned module repository: its remote branches, the ten
most recent version tags, and the ten most recent commits. Requires a
prior setup run (the clone must exist).`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd.Context(), logger)
	if err != nil {
		return err
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	cloneDir := filepath.Join(root, cfg.CloneDir)
	if _, err := os.Stat(cloneDir); err != nil {
		return issue.NewErrorContext().
			WithOperation("list repository refs").
			WithResource(cloneDir).
			WithSuggestion("Run 'modwire' first to clone the module repository").
			Wrap(err).
			Build()
	}

	syncer := gitsync.New(gitsync.NewRunner(), gitsync.NewRemoteLister(), logger)
	listing, err := syncer.List(cmd.Context(), cloneDir)
	if err != nil {
		return issue.WrapWithOperation(err, "list repository refs")
	}

	printSection("Branches", listing.Branches)
	printSection("Recent tags", listing.Tags)
	printSection("Recent commits", listing.Commits)
	return nil
}

func printSection(title string, entries []string) {
	fmt.Println(TitleStyle.Render(title))
	if len(entries) == 0 {
		fmt.Println(SubtitleStyle.Render("  (none)"))
		return
	}
	for _, entry := range entries {
		fmt.Printf("  %s\n", entry)
	}
}
