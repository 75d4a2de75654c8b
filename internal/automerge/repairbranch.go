package automerge

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/depmerge/internal/githubclt"
	"github.com/simplesurance/depmerge/internal/logfields"
	"github.com/simplesurance/depmerge/internal/repair"
)

const projenrcPath = ".projenrc.ts"

// pnpmWorkflowFiles are the projen-generated workflow definitions that pin
// the pnpm version used on CI.
var pnpmWorkflowFiles = []string{
	".github/workflows/build.yml",
	".github/workflows/release.yml",
	".github/workflows/upgrade-main.yml",
}

// repairPnpmBranch fixes up the branch of a pnpm upgrade pull request before
// it is evaluated for merging: the deprecated package manager configuration
// is removed from .projenrc.ts and the pnpm version pinned in the workflow
// files is updated.
// Files are committed individually and only when their content changed,
// re-running on an already repaired branch produces no commit.
// Each file is handled independently, a failure is logged and does not stop
// the remaining files or the later pipeline stages.
func (a *Automerger) repairPnpmBranch(ctx context.Context, owner, repo, branch string) {
	logger := a.logger.With(
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Branch(branch),
	)

	err := a.cleanProjenrc(ctx, logger, owner, repo, branch)
	if err != nil {
		logger.Error(
			"cleaning .projenrc.ts failed",
			logfields.Event("branch_repair_failed"),
			logfields.File(projenrcPath),
			zap.Error(err),
		)
	}

	for _, path := range pnpmWorkflowFiles {
		err := a.updateWorkflowPnpmVersion(ctx, logger, owner, repo, branch, path)
		if err != nil {
			logger.Error(
				"updating pnpm version in workflow file failed",
				logfields.Event("branch_repair_failed"),
				logfields.File(path),
				zap.Error(err),
			)
		}
	}
}

func (a *Automerger) cleanProjenrc(ctx context.Context, logger *zap.Logger, owner, repo, branch string) error {
	fc, err := a.clt.FileContent(ctx, owner, repo, branch, projenrcPath)
	if err != nil {
		if errors.Is(err, githubclt.ErrNotFound) {
			logger.Debug(
				"branch has no .projenrc.ts, nothing to clean",
				logfields.File(projenrcPath),
			)
			return nil
		}

		return err
	}

	newContent, pinnedVersion, changed := repair.CleanProjenrc(fc.Content)
	if !changed {
		logger.Debug(
			".projenrc.ts does not contain the deprecated configuration",
			logfields.File(projenrcPath),
		)
		return nil
	}

	if pinnedVersion != "" && pinnedVersion != repair.DefaultPnpmVersionPin {
		logger.Warn(
			"found unexpected pinned pnpm version in .projenrc.ts",
			logfields.Event("unexpected_pnpm_version_pin"),
			zap.String("pinned_version", pinnedVersion),
			zap.String("expected_version", repair.DefaultPnpmVersionPin),
		)
	}

	err = a.clt.UpdateFile(
		ctx, owner, repo, branch, projenrcPath, fc.SHA,
		"chore: remove deprecated package manager configuration",
		[]byte(newContent),
	)
	if err != nil {
		return fmt.Errorf("committing cleaned %s failed: %w", projenrcPath, err)
	}

	logger.Info(
		"removed deprecated package manager configuration from .projenrc.ts",
		logfields.Event("branch_file_updated"),
		logfields.File(projenrcPath),
	)

	return nil
}

func (a *Automerger) updateWorkflowPnpmVersion(ctx context.Context, logger *zap.Logger, owner, repo, branch, path string) error {
	fc, err := a.clt.FileContent(ctx, owner, repo, branch, path)
	if err != nil {
		if errors.Is(err, githubclt.ErrNotFound) {
			logger.Debug(
				"branch does not contain the workflow file",
				logfields.File(path),
			)
			return nil
		}

		return err
	}

	newContent, changed := repair.SetPnpmActionVersion(fc.Content, pnpmVersionMajor)
	if !changed {
		logger.Debug(
			"workflow file already uses the new pnpm version",
			logfields.File(path),
		)
		return nil
	}

	err = a.clt.UpdateFile(
		ctx, owner, repo, branch, path, fc.SHA,
		fmt.Sprintf("ci: use pnpm %s in %s", pnpmVersionMajor, path),
		[]byte(newContent),
	)
	if err != nil {
		return fmt.Errorf("committing updated %s failed: %w", path, err)
	}

	logger.Info(
		"updated pinned pnpm version in workflow file",
		logfields.Event("branch_file_updated"),
		logfields.File(path),
	)

	return nil
}
