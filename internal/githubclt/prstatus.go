package githubclt

import (
	"context"

	"github.com/shurcooL/githubv4"
)

// CIStatus abstracts the status check rollup states of github into the
// values that matter for the merge decision.
type CIStatus string

const (
	CIStatusSuccess CIStatus = "SUCCESS"
	CIStatusPending CIStatus = "PENDING"
	CIStatusFailure CIStatus = "FAILURE"
	// CIStatusUnknown is reported when the head commit has no status check
	// rollup, e.g. because no checks are configured. Callers must not
	// interpret it as success.
	CIStatusUnknown CIStatus = "UNKNOWN"
)

// ReviewDecision is the aggregated result of all pull request reviews.
type ReviewDecision string

const (
	ReviewDecisionApproved         = ReviewDecision(githubv4.PullRequestReviewDecisionApproved)
	ReviewDecisionChangesRequested = ReviewDecision(githubv4.PullRequestReviewDecisionChangesRequested)
	ReviewDecisionReviewRequired   = ReviewDecision(githubv4.PullRequestReviewDecisionReviewRequired)
)

// MergeableState is the github-computed tri-state describing if a pull
// request can be merged without conflicts.
type MergeableState string

const (
	MergeableStateMergeable   = MergeableState(githubv4.MergeableStateMergeable)
	MergeableStateConflicting = MergeableState(githubv4.MergeableStateConflicting)
	MergeableStateUnknown     = MergeableState(githubv4.MergeableStateUnknown)
)

// PRStatus is a point-in-time snapshot of all pull request attributes that
// the merge decision depends on.
// It is never cached, callers re-fetch it when they need to re-validate after
// a write, github aggregates reviews into the review decision asynchronously.
type PRStatus struct {
	NodeID          string
	Mergeable       MergeableState
	ReviewDecision  ReviewDecision
	ViewerCanUpdate bool
	ViewerDidAuthor bool
	// ViewerApproved is true when the authenticated user already submitted
	// an approving review that is still the latest opinionated one.
	ViewerApproved bool
	HeadCommitID   string
	CIStatus       CIStatus
}

// PRStatus fetches the merge-relevant state of a pull request via a single
// GraphQL query.
//
// The returned CIStatus is derived from the [status check rollup] of the head
// commit, [CIStatusUnknown] is returned when the commit has no rollup.
//
// [status check rollup]: https://docs.github.com/en/graphql/reference/objects#statuscheckrollup
func (clt *Client) PRStatus(ctx context.Context, owner, repo string, prNumber int) (*PRStatus, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				ID              string
				Mergeable       githubv4.MergeableState
				ReviewDecision  githubv4.PullRequestReviewDecision
				ViewerCanUpdate bool
				ViewerDidAuthor bool

				LatestOpinionatedReviews struct {
					Nodes []struct {
						State           githubv4.PullRequestReviewState
						ViewerDidAuthor bool
					}
				} `graphql:"latestOpinionatedReviews(first: 10, writersOnly: true)"`

				Commits struct {
					Nodes []struct {
						Commit struct {
							Oid               string
							StatusCheckRollup *struct {
								State githubv4.StatusState
							}
						}
					}
				} `graphql:"commits(last: 1)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	vars := map[string]any{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(prNumber),
	}

	err := clt.graphQLClt.Query(ctx, &q, vars)
	if err != nil {
		return nil, clt.wrapGraphQLRetryableErrors(err)
	}

	pr := q.Repository.PullRequest

	result := PRStatus{
		NodeID:          pr.ID,
		Mergeable:       MergeableState(pr.Mergeable),
		ReviewDecision:  ReviewDecision(pr.ReviewDecision),
		ViewerCanUpdate: pr.ViewerCanUpdate,
		ViewerDidAuthor: pr.ViewerDidAuthor,
		CIStatus:        CIStatusUnknown,
	}

	for _, review := range pr.LatestOpinionatedReviews.Nodes {
		if review.ViewerDidAuthor && review.State == githubv4.PullRequestReviewStateApproved {
			result.ViewerApproved = true
			break
		}
	}

	if len(pr.Commits.Nodes) > 0 {
		commit := pr.Commits.Nodes[0].Commit
		result.HeadCommitID = commit.Oid

		if commit.StatusCheckRollup != nil {
			result.CIStatus = rollupStateToCIStatus(commit.StatusCheckRollup.State)
		}
	}

	return &result, nil
}

func rollupStateToCIStatus(state githubv4.StatusState) CIStatus {
	switch state {
	case githubv4.StatusStateSuccess:
		return CIStatusSuccess

	case githubv4.StatusStateError,
		githubv4.StatusStateFailure:
		return CIStatusFailure

	case githubv4.StatusStateExpected,
		githubv4.StatusStatePending:
		return CIStatusPending

	default:
		return CIStatusUnknown
	}
}
