package automerge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/depmerge/internal/githubclt"
	"github.com/simplesurance/depmerge/internal/logfields"
)

// rerunThrottle is the minimum time that must have passed since the latest
// run of the update workflow started before a rerun is triggered.
// It bounds the CI cost when depmerge runs more often than the updates can
// complete.
const rerunThrottle = 30 * time.Minute

var activeRunStatuses = map[string]struct{}{
	"queued":      {},
	"in_progress": {},
	"requested":   {},
	"waiting":     {},
	"pending":     {},
}

// triggerUpdateWorkflow reruns the latest run of the workflow that generates
// the update pull requests.
// No rerun is triggered when a run is still active or when the latest run
// started less than rerunThrottle ago.
func (a *Automerger) triggerUpdateWorkflow(ctx context.Context, owner, repo, defaultBranch string) (Result, error) {
	logger := a.logger.With(
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Workflow(a.update.WorkflowFileName),
	)

	logger.Info(
		"no matching pull request found, evaluating rerun of the update workflow",
		logfields.Event("pull_request_not_found"),
	)

	workflow, err := a.clt.WorkflowByFileName(ctx, owner, repo, a.update.WorkflowFileName)
	if err != nil {
		if errors.Is(err, githubclt.ErrNotFound) {
			logger.Error(
				"update workflow does not exist in the repository",
				logfields.Event("workflow_not_found"),
			)
			return ResultSkipped, nil
		}

		return ResultSkipped, fmt.Errorf("fetching workflow failed: %w", err)
	}

	runs, err := a.clt.ListWorkflowRuns(ctx, owner, repo, workflow.ID, defaultBranch)
	if err != nil {
		return ResultSkipped, fmt.Errorf("listing workflow runs failed: %w", err)
	}

	latest := latestRun(runs)
	if latest == nil {
		logger.Info(
			"workflow has no runs on the default branch, nothing to rerun",
			logfields.Event("workflow_rerun_skipped"),
			logfields.Branch(defaultBranch),
		)
		return ResultSkipped, nil
	}

	logger = logger.With(logfields.WorkflowRun(latest.ID))

	if _, active := activeRunStatuses[latest.Status]; active {
		logger.Info(
			"latest workflow run is still active, not triggering a rerun",
			logfields.Event("workflow_rerun_skipped"),
			zap.String("run_status", latest.Status),
		)
		return ResultSkipped, nil
	}

	if elapsed := time.Since(latest.StartedAt); elapsed < rerunThrottle {
		logger.Info(
			"latest workflow run started recently, not triggering a rerun",
			logfields.Event("workflow_rerun_throttled"),
			zap.Int("minutes_since_run_start", int(elapsed.Minutes())),
			zap.Duration("throttle", rerunThrottle),
		)
		return ResultSkipped, nil
	}

	err = a.clt.RerunWorkflowRun(ctx, owner, repo, latest.ID)
	if err != nil {
		return ResultSkipped, fmt.Errorf("triggering workflow rerun failed: %w", err)
	}

	logger.Info(
		"triggered rerun of the update workflow",
		logfields.Event("workflow_rerun_triggered"),
	)

	return ResultRerunTriggered, nil
}

// latestRun returns the run with the highest run number.
func latestRun(runs []*githubclt.WorkflowRun) *githubclt.WorkflowRun {
	var latest *githubclt.WorkflowRun

	for _, run := range runs {
		if latest == nil || run.RunNumber > latest.RunNumber {
			latest = run
		}
	}

	return latest
}
