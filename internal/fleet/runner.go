// Package fleet iterates over the configured repositories and runs the
// automerge pipeline for each of them sequentially.
// An unexpected failure in one repository never aborts the run, it is logged,
// counted and the next repository is processed.
package fleet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/depmerge/internal/automerge"
	"github.com/simplesurance/depmerge/internal/cfg"
	"github.com/simplesurance/depmerge/internal/logfields"
)

const loggerName = "fleet"

// Summary aggregates the outcomes of one fleet iteration.
type Summary struct {
	Processed        int
	Merged           int
	AutoMergeEnabled int
	MergeReady       int
	AlreadyMerged    int
	RerunsTriggered  int
	Skipped          int
	Failed           int
}

// Runner processes all configured repositories with one Automerger.
type Runner struct {
	automerger   *automerge.Automerger
	repositories []cfg.GithubRepository
	retryer      *Retryer
	logger       *zap.Logger
}

func NewRunner(automerger *automerge.Automerger, repositories []cfg.GithubRepository, retryer *Retryer) *Runner {
	return &Runner{
		automerger:   automerger,
		repositories: repositories,
		retryer:      retryer,
		logger:       zap.L().Named(loggerName),
	}
}

// Run processes the repositories one after another and returns a summary.
// Repository failures are logged and counted, Run itself only fails when the
// context is cancelled.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	var summary Summary

	for _, repository := range r.repositories {
		if err := ctx.Err(); err != nil {
			return &summary, err
		}

		summary.Processed++

		result, err := r.processRepository(ctx, repository)
		if err != nil {
			metrics.recordFailure()
			summary.Failed++

			r.logger.Error(
				"processing repository failed",
				logfields.Event("repository_processing_failed"),
				logfields.RepositoryOwner(repository.Owner),
				logfields.Repository(repository.RepositoryName),
				zap.Error(err),
			)

			continue
		}

		metrics.recordResult(result)

		switch result {
		case automerge.ResultMerged:
			summary.Merged++
		case automerge.ResultAutoMergeEnabled:
			summary.AutoMergeEnabled++
		case automerge.ResultMergeReady:
			summary.MergeReady++
		case automerge.ResultAlreadyMerged:
			summary.AlreadyMerged++
		case automerge.ResultRerunTriggered:
			summary.RerunsTriggered++
		case automerge.ResultSkipped:
			summary.Skipped++
		}
	}

	r.logger.Info(
		"fleet iteration finished",
		logfields.Event("fleet_iteration_finished"),
		zap.Int("repositories_processed", summary.Processed),
		zap.Int("pull_requests_merged", summary.Merged),
		zap.Int("auto_merges_enabled", summary.AutoMergeEnabled),
		zap.Int("merge_ready", summary.MergeReady),
		zap.Int("already_merged", summary.AlreadyMerged),
		zap.Int("workflow_reruns_triggered", summary.RerunsTriggered),
		zap.Int("repositories_skipped", summary.Skipped),
		zap.Int("repositories_failed", summary.Failed),
	)

	return &summary, nil
}

// processRepository runs the pipeline for one repository under the retryer.
// Panics are caught and converted to errors, one broken repository must not
// end a multi-repository run.
func (r *Runner) processRepository(ctx context.Context, repository cfg.GithubRepository) (result automerge.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("processing panicked: %v", rec)
		}
	}()

	logF := []zap.Field{
		logfields.RepositoryOwner(repository.Owner),
		logfields.Repository(repository.RepositoryName),
	}

	err = r.retryer.Run(ctx, func(ctx context.Context) error {
		var processErr error

		result, processErr = r.automerger.ProcessRepository(ctx, repository.Owner, repository.RepositoryName)

		return processErr
	}, logF)

	return result, err
}
