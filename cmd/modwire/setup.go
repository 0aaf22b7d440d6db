// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"modwire-cli/internal/config"
	"modwire-cli/internal/gitsync"
	"modwire-cli/internal/issue"
	"modwire-cli/internal/ktree"
	"modwire-cli/pkg/types"

	"github.com/charmbracelet/log"
)

// loadConfig loads configuration for a command run. An explicit --config file
// must load; on the default path, infrastructure problems (missing config
// dir and the like) downgrade to a warning with defaults, while an existing
// but malformed file stays fatal.
func loadConfig(ctx context.Context, logger *log.Logger) (*config.Config, error) {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err == nil {
		return cfg, nil
	}

	if cfgFile == "" && errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load config, using defaults", "err", err)
		return config.DefaultConfig(), nil
	}

	renderIssue(issue.ConfigLoadFailedId)
	return nil, issue.WrapWithOperation(err, "load config")
}

// runSetup is the default mode: resolve the kernel tree, synchronize the
// module clone to the requested revision, and wire it into the build system.
func runSetup(ctx context.Context, target string) error {
	logger := newLogger()

	cfg, err := loadConfig(ctx, logger)
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
	logger.Debug("located drivers directory", "dir", tree.DriversDir)

	syncer := gitsync.New(gitsync.NewRunner(), gitsync.NewRemoteLister(), logger)
	result, err := syncer.Sync(ctx, gitsync.Request{
		RepoURL:  cfg.RepoURL,
		CloneDir: filepath.Join(root, cfg.CloneDir),
		Target:   target,
	})
	if err != nil {
		renderIssue(issue.CloneFailedId)
		code := types.ExitCode(1)
		var gitErr *gitsync.GitError
		if errors.As(err, &gitErr) {
			code = types.ExitCode(gitErr.ExitCode)
		}
		return &ExitError{
			Code: code,
			Err:  issue.WrapWithOperation(err, "synchronize module repository"),
		}
	}
	if result.StayedPut {
		renderIssue(issue.FallbackExhaustedId)
	}

	report, err := tree.Integrate(ktree.Opts{
		ModuleName:   cfg.ModuleName,
		ConfigFlag:   cfg.ConfigFlag,
		CloneDir:     cfg.CloneDir,
		KernelSubdir: cfg.KernelSubdir,
	})
	if err != nil {
		return issue.WrapWithOperation(err, "integrate module into build tree")
	}

	printSetupStatus(cfg, result, report)
	return nil
}

// printSetupStatus reports the end state of the tri-state bundle plus the
// revision the clone landed on.
func printSetupStatus(cfg *config.Config, result gitsync.Result, report ktree.IntegrateReport) {
	check := SuccessStyle.Render("✓")

	switch {
	case result.StayedPut:
		fmt.Printf("%s clone left on its current ref\n", WarningStyle.Render("!"))
	case result.Kind == gitsync.RefKindNone:
		// The latest tag is the normal destination when no revision is given.
		fmt.Printf("%s checked out latest %s\n", check, RefStyle.Render(result.Ref))
	case result.FellBack:
		fmt.Printf("%s checked out %s %s\n", check, RefStyle.Render(result.Ref), SubtitleStyle.Render("(fallback)"))
	default:
		fmt.Printf("%s checked out %s\n", check, RefStyle.Render(result.Ref))
	}

	fmt.Printf("%s symlink %s -> %s\n", check, RefStyle.Render(cfg.ModuleName), RefStyle.Render(report.LinkTarget))

	makefileNote := "already present"
	if report.MakefileAppended {
		makefileNote = "entry appended"
	}
	fmt.Printf("%s Makefile %s\n", check, SubtitleStyle.Render(makefileNote))

	kconfigNote := "already present"
	if report.KconfigInserted {
		kconfigNote = "source directive inserted"
	}
	fmt.Printf("%s Kconfig %s\n", check, SubtitleStyle.Render(kconfigNote))
}
