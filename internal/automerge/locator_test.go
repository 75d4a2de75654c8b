package automerge

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorStopsAtStaleMergedMatch(t *testing.T) {
	update, err := ResolveUpdate(SelectorNonMajor, "")
	require.NoError(t, err)

	clt, a := newTestAutomerger(t, update)

	stale := openPR(1, "chore(deps): update all non-major dependencies")
	stale.State = github.String("closed")
	stale.MergedAt = &github.Timestamp{Time: time.Now().Add(-30 * 24 * time.Hour)}

	// a fresh open match follows the stale merged one, the scan must not
	// reach it, the list is chronological
	fresh := openPR(2, "chore(deps): update all non-major dependencies")

	clt.EXPECT().
		ListPullRequests(gomock.Any(), repoOwner, repo, "all", "created", "asc").
		Return(&fakePRIter{prs: []*github.PullRequest{stale, fresh}})

	located, err := a.locatePR(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, locateNone, located.status)
}

func TestLocatorIgnoresMergedAgeWhenNotRequired(t *testing.T) {
	// library updates do not check the merged age, an old merged bump
	// still satisfies the repository
	clt, a := newTestAutomerger(t, libUpdate(t))

	merged := openPR(1, "fix(deps): update dependency @org/lib to v11")
	merged.State = github.String("closed")
	merged.MergedAt = &github.Timestamp{Time: time.Now().Add(-365 * 24 * time.Hour)}

	expectPRList(clt, merged)

	located, err := a.locatePR(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, locateAlreadyMerged, located.status)
}

func TestLocatorSkipsClosedUnmergedMatch(t *testing.T) {
	clt, a := newTestAutomerger(t, libUpdate(t))

	abandoned := openPR(1, "fix(deps): update dependency @org/lib to v11")
	abandoned.State = github.String("closed")

	live := openPR(2, "fix(deps): update dependency @org/lib to v11")

	expectPRList(clt, abandoned, live)

	located, err := a.locatePR(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, locateFound, located.status)
	assert.Equal(t, 2, located.pr.GetNumber())
}

func TestLocatorSkipsNonMatchingTitles(t *testing.T) {
	clt, a := newTestAutomerger(t, libUpdate(t))

	expectPRList(clt,
		openPR(1, "add feature x"),
		openPR(2, "fix(deps): update dependency @other/lib to v3"),
	)

	located, err := a.locatePR(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, locateNone, located.status)
}

func TestLocatorMatchesTitlePrefix(t *testing.T) {
	update, err := ResolveUpdate(SelectorPnpm, "")
	require.NoError(t, err)

	clt, a := newTestAutomerger(t, update)

	expectPRList(clt, openPR(3, "chore(deps): update pnpm to v9.1.0"))

	located, err := a.locatePR(context.Background(), repoOwner, repo)
	require.NoError(t, err)
	assert.Equal(t, locateFound, located.status)
	assert.Equal(t, 3, located.pr.GetNumber())
}
