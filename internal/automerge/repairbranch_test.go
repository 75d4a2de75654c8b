package automerge

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/simplesurance/depmerge/internal/automerge/mocks"
	"github.com/simplesurance/depmerge/internal/githubclt"
	"github.com/simplesurance/depmerge/internal/repair"
)

const prBranch = "renovate/pnpm-9.x"

const projenrcDeprecated = `import { NodePackageManager } from "projen/lib/javascript";

const project = new TypeScriptProject({
  name: "example",
  packageManager: NodePackageManager.PNPM,
  pnpmVersion: "7",
});
`

const workflowPinnedPnpm = `steps:
  - uses: pnpm/action-setup@v2
    with:
      version: "7"
`

func newRepairTestAutomerger(t *testing.T) (*mocks.MockGithubClient, *Automerger, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core).Named(t.Name())))

	ctrl := gomock.NewController(t)
	clt := mocks.NewMockGithubClient(ctrl)

	update, err := ResolveUpdate(SelectorPnpm, "")
	require.NoError(t, err)

	return clt, New(clt, update), logs
}

func expectWorkflowFilesUnchanged(clt *mocks.MockGithubClient) {
	for _, path := range pnpmWorkflowFiles {
		clt.EXPECT().
			FileContent(gomock.Any(), repoOwner, repo, prBranch, path).
			Return(nil, githubclt.ErrNotFound)
	}
}

func TestRepairCleansProjenrcAndWarnsAboutUnexpectedPin(t *testing.T) {
	clt, a, logs := newRepairTestAutomerger(t)

	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, prBranch, projenrcPath).
		Return(&githubclt.FileContent{Content: projenrcDeprecated, SHA: "sha1"}, nil)

	clt.EXPECT().
		UpdateFile(gomock.Any(), repoOwner, repo, prBranch, projenrcPath, "sha1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _, _, _, _ string, content []byte) error {
			assert.NotContains(t, string(content), "NodePackageManager")
			assert.NotContains(t, string(content), "pnpmVersion")
			return nil
		})

	expectWorkflowFilesUnchanged(clt)

	a.repairPnpmBranch(context.Background(), repoOwner, repo, prBranch)

	warnings := logs.FilterMessage("found unexpected pinned pnpm version in .projenrc.ts").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "7", warnings[0].ContextMap()["pinned_version"])
}

func TestRepairIsIdempotent(t *testing.T) {
	clt, a, _ := newRepairTestAutomerger(t)

	cleaned, _, changed := repair.CleanProjenrc(projenrcDeprecated)
	require.True(t, changed)

	// already repaired content, no UpdateFile call is expected
	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, prBranch, projenrcPath).
		Return(&githubclt.FileContent{Content: cleaned, SHA: "sha2"}, nil)

	expectWorkflowFilesUnchanged(clt)

	a.repairPnpmBranch(context.Background(), repoOwner, repo, prBranch)
}

func TestRepairUpdatesWorkflowFiles(t *testing.T) {
	clt, a, _ := newRepairTestAutomerger(t)

	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, prBranch, projenrcPath).
		Return(nil, githubclt.ErrNotFound)

	for _, path := range pnpmWorkflowFiles {
		clt.EXPECT().
			FileContent(gomock.Any(), repoOwner, repo, prBranch, path).
			Return(&githubclt.FileContent{Content: workflowPinnedPnpm, SHA: "wfsha"}, nil)

		clt.EXPECT().
			UpdateFile(gomock.Any(), repoOwner, repo, prBranch, path, "wfsha", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _, _, _, _ string, content []byte) error {
				assert.Contains(t, string(content), "version: 9")
				assert.NotContains(t, string(content), `version: "7"`)
				return nil
			})
	}

	a.repairPnpmBranch(context.Background(), repoOwner, repo, prBranch)
}

func TestRepairFileFailureDoesNotAbortOtherFiles(t *testing.T) {
	clt, a, logs := newRepairTestAutomerger(t)

	clt.EXPECT().
		FileContent(gomock.Any(), repoOwner, repo, prBranch, projenrcPath).
		Return(&githubclt.FileContent{Content: projenrcDeprecated, SHA: "sha1"}, nil)

	// the write conflicts, e.g. because somebody pushed in the meantime,
	// the error must be logged and the workflow files still processed
	clt.EXPECT().
		UpdateFile(gomock.Any(), repoOwner, repo, prBranch, projenrcPath, "sha1", gomock.Any(), gomock.Any()).
		Return(errors.New("409 conflict"))

	expectWorkflowFilesUnchanged(clt)

	a.repairPnpmBranch(context.Background(), repoOwner, repo, prBranch)

	require.Len(t, logs.FilterMessage("cleaning .projenrc.ts failed").All(), 1)
}
