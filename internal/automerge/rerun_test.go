package automerge

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/depmerge/internal/githubclt"
)

func TestRerunIsThrottled(t *testing.T) {
	clt, a := newTestAutomerger(t, libUpdate(t))

	expectRepository(clt, nil, false)
	expectPRList(clt)

	clt.EXPECT().
		WorkflowByFileName(gomock.Any(), repoOwner, repo, "renovate.yml").
		Return(&githubclt.Workflow{ID: 99, Path: ".github/workflows/renovate.yml"}, nil)

	// latest run completed 10 minutes ago, inside the throttle window,
	// RerunWorkflowRun must not be called
	clt.EXPECT().
		ListWorkflowRuns(gomock.Any(), repoOwner, repo, int64(99), "main").
		Return([]*githubclt.WorkflowRun{
			{ID: 1000, RunNumber: 41, Status: "completed", StartedAt: time.Now().Add(-10 * time.Minute)},
		}, nil)

	result, err := a.ProcessRepository(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, result)
}

func TestRerunSkippedWhileRunIsActive(t *testing.T) {
	clt, a := newTestAutomerger(t, libUpdate(t))

	expectRepository(clt, nil, false)
	expectPRList(clt)

	clt.EXPECT().
		WorkflowByFileName(gomock.Any(), repoOwner, repo, "renovate.yml").
		Return(&githubclt.Workflow{ID: 99}, nil)

	clt.EXPECT().
		ListWorkflowRuns(gomock.Any(), repoOwner, repo, int64(99), "main").
		Return([]*githubclt.WorkflowRun{
			{ID: 1001, RunNumber: 42, Status: "in_progress", StartedAt: time.Now().Add(-2 * time.Hour)},
		}, nil)

	result, err := a.ProcessRepository(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, result)
}

func TestRerunTriggersLatestRun(t *testing.T) {
	clt, a := newTestAutomerger(t, libUpdate(t))

	expectRepository(clt, nil, false)
	expectPRList(clt)

	clt.EXPECT().
		WorkflowByFileName(gomock.Any(), repoOwner, repo, "renovate.yml").
		Return(&githubclt.Workflow{ID: 99}, nil)

	// run 40 is older but has the highest id, run 41 is the latest by
	// run number and must be the one that is rerun
	clt.EXPECT().
		ListWorkflowRuns(gomock.Any(), repoOwner, repo, int64(99), "main").
		Return([]*githubclt.WorkflowRun{
			{ID: 5000, RunNumber: 40, Status: "completed", StartedAt: time.Now().Add(-48 * time.Hour)},
			{ID: 4999, RunNumber: 41, Status: "completed", StartedAt: time.Now().Add(-2 * time.Hour)},
		}, nil)

	clt.EXPECT().
		RerunWorkflowRun(gomock.Any(), repoOwner, repo, int64(4999)).
		Return(nil)

	result, err := a.ProcessRepository(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, ResultRerunTriggered, result)
}

func TestRerunWithoutWorkflowLogsAndStops(t *testing.T) {
	clt, a := newTestAutomerger(t, libUpdate(t))

	expectRepository(clt, nil, false)
	expectPRList(clt)

	clt.EXPECT().
		WorkflowByFileName(gomock.Any(), repoOwner, repo, "renovate.yml").
		Return(nil, githubclt.ErrNotFound)

	result, err := a.ProcessRepository(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, result)
}

func TestRerunWithoutRunsSkips(t *testing.T) {
	clt, a := newTestAutomerger(t, libUpdate(t))

	expectRepository(clt, nil, false)
	expectPRList(clt)

	clt.EXPECT().
		WorkflowByFileName(gomock.Any(), repoOwner, repo, "renovate.yml").
		Return(&githubclt.Workflow{ID: 99}, nil)

	clt.EXPECT().
		ListWorkflowRuns(gomock.Any(), repoOwner, repo, int64(99), "main").
		Return(nil, nil)

	result, err := a.ProcessRepository(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, ResultSkipped, result)
}
