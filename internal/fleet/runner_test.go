package fleet

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/depmerge/internal/automerge"
	"github.com/simplesurance/depmerge/internal/automerge/mocks"
	"github.com/simplesurance/depmerge/internal/cfg"
	"github.com/simplesurance/depmerge/internal/githubclt"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRunner(t *testing.T, repositories []cfg.GithubRepository) (*mocks.MockGithubClient, *Runner) {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	ctrl := gomock.NewController(t)
	clt := mocks.NewMockGithubClient(ctrl)

	update, err := automerge.ResolveUpdate(automerge.SelectorNonMajor, "")
	require.NoError(t, err)

	retryer := NewRetryer()
	t.Cleanup(retryer.Stop)

	return clt, NewRunner(automerge.New(clt, update), repositories, retryer)
}

func TestRunnerProcessesAllRepositories(t *testing.T) {
	repositories := []cfg.GithubRepository{
		{Owner: "testman", RepositoryName: "repo1"},
		{Owner: "testman", RepositoryName: "repo2"},
	}

	clt, runner := newTestRunner(t, repositories)

	for _, repository := range repositories {
		clt.EXPECT().
			Repository(gomock.Any(), repository.Owner, repository.RepositoryName).
			Return(&githubclt.RepositoryMetadata{DefaultBranch: "main", Archived: true}, nil)
	}

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Skipped)
	assert.Zero(t, summary.Failed)
}

func TestRunnerContinuesAfterRepositoryFailure(t *testing.T) {
	repositories := []cfg.GithubRepository{
		{Owner: "testman", RepositoryName: "broken"},
		{Owner: "testman", RepositoryName: "ok"},
	}

	clt, runner := newTestRunner(t, repositories)

	clt.EXPECT().
		Repository(gomock.Any(), "testman", "broken").
		Return(nil, errors.New("403 forbidden"))

	clt.EXPECT().
		Repository(gomock.Any(), "testman", "ok").
		Return(&githubclt.RepositoryMetadata{DefaultBranch: "main", Archived: true}, nil)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)
}
