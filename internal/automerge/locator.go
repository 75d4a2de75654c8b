package automerge

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/simplesurance/depmerge/internal/logfields"
)

type locateStatus int

const (
	locateFound locateStatus = iota
	locateAlreadyMerged
	locateDraft
	locateNone
)

type locatedPR struct {
	status locateStatus
	pr     *github.PullRequest
}

// locatePR scans all pull requests of the repository, oldest first, for the
// first one whose title starts with the expected prefix.
//
// A merged match that is older than maxMergedAge ends the scan when the
// update checks the merged age: the list is ordered chronologically, no later
// match can be fresher.
// Closed but unmerged matches are skipped, an abandoned pull request must not
// shadow a live one.
func (a *Automerger) locatePR(ctx context.Context, owner, repo string) (*locatedPR, error) {
	logger := a.logger.With(
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
	)

	it := a.clt.ListPullRequests(ctx, owner, repo, "all", "created", "asc")

	for {
		pr, err := it.Next()
		if err != nil {
			return nil, err
		}

		if pr == nil {
			return &locatedPR{status: locateNone}, nil
		}

		if !strings.HasPrefix(pr.GetTitle(), a.update.TitlePrefix) {
			continue
		}

		if mergedAt := pr.GetMergedAt(); !mergedAt.Time.IsZero() {
			age := time.Since(mergedAt.Time)

			if a.update.CheckMergedAge && age > a.maxMergedAge {
				logger.Info(
					"matching pull request was merged too long ago, ignoring it and ending the search",
					logfields.Event("pull_request_merged_too_old"),
					logfields.PullRequest(pr.GetNumber()),
					logfields.Title(pr.GetTitle()),
					zap.Float64("age_days", age.Hours()/24),
					zap.Duration("max_merged_age", a.maxMergedAge),
				)
				return &locatedPR{status: locateNone}, nil
			}

			return &locatedPR{status: locateAlreadyMerged, pr: pr}, nil
		}

		if pr.GetState() == "closed" {
			logger.Debug(
				"ignoring matching pull request, it was closed without being merged",
				logfields.Event("pull_request_closed_unmerged"),
				logfields.PullRequest(pr.GetNumber()),
			)
			continue
		}

		if pr.GetDraft() {
			return &locatedPR{status: locateDraft, pr: pr}, nil
		}

		return &locatedPR{status: locateFound, pr: pr}, nil
	}
}
