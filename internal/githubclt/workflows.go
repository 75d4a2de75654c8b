package githubclt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
)

// Workflow identifies a github actions workflow definition.
type Workflow struct {
	ID   int64
	Path string
}

// WorkflowRun is a single run of a workflow.
type WorkflowRun struct {
	ID        int64
	RunNumber int
	Status    string
	Branch    string
	StartedAt time.Time
}

// WorkflowByFileName returns the workflow whose definition file in
// .github/workflows/ has the given file name.
// If no workflow with the file name exists, an error wrapping ErrNotFound is
// returned.
func (clt *Client) WorkflowByFileName(ctx context.Context, owner, repo, fileName string) (*Workflow, error) {
	opts := github.ListOptions{PerPage: 100}

	for {
		workflows, resp, err := clt.restClt.Actions.ListWorkflows(ctx, owner, repo, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, workflow := range workflows.Workflows {
			if strings.TrimPrefix(workflow.GetPath(), ".github/workflows/") == fileName {
				return &Workflow{
					ID:   workflow.GetID(),
					Path: workflow.GetPath(),
				}, nil
			}
		}

		if resp.NextPage == 0 {
			return nil, fmt.Errorf("workflow %q: %w", fileName, ErrNotFound)
		}

		opts.Page = resp.NextPage
	}
}

// ListWorkflowRuns returns the runs of a workflow on the given branch.
// Only the most recent runs are returned, the result is not paginated
// through, github orders it by creation time descending.
func (clt *Client) ListWorkflowRuns(ctx context.Context, owner, repo string, workflowID int64, branch string) ([]*WorkflowRun, error) {
	runs, _, err := clt.restClt.Actions.ListWorkflowRunsByID(ctx, owner, repo, workflowID, &github.ListWorkflowRunsOptions{
		Branch:      branch,
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	result := make([]*WorkflowRun, 0, len(runs.WorkflowRuns))
	for _, run := range runs.WorkflowRuns {
		result = append(result, &WorkflowRun{
			ID:        run.GetID(),
			RunNumber: run.GetRunNumber(),
			Status:    run.GetStatus(),
			Branch:    run.GetHeadBranch(),
			StartedAt: run.GetRunStartedAt().Time,
		})
	}

	return result, nil
}

// RerunWorkflowRun requests github to run a workflow run again.
// The method returns as soon as the rerun was requested, it does not wait
// until the run started.
func (clt *Client) RerunWorkflowRun(ctx context.Context, owner, repo string, runID int64) error {
	_, err := clt.restClt.Actions.RerunWorkflowByID(ctx, owner, repo, runID)
	return clt.wrapRetryableErrors(err)
}
