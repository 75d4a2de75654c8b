package githubclt

import (
	"context"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
)

type PRIterator interface {
	Next() (*github.PullRequest, error)
}

type PRIter struct {
	clt *Client

	ctx   context.Context
	owner string
	repo  string

	filterState   string
	sortOrder     string
	sortDirection string

	unseen []*github.PullRequest

	nextPage int
	finished bool
}

// Next returns the next pullRequest.
// When the last result was returned a nil PullRequest is returned.
func (it *PRIter) Next() (*github.PullRequest, error) {
	if len(it.unseen) > 0 {
		result := it.unseen[0]
		it.unseen = it.unseen[1:]

		return result, nil
	}

	if it.finished {
		return nil, nil
	}

	prs, resp, err := it.clt.restClt.PullRequests.List(it.ctx, it.owner, it.repo, &github.PullRequestListOptions{
		State:     it.filterState,
		Sort:      it.sortOrder,
		Direction: it.sortDirection,
		ListOptions: github.ListOptions{
			Page:    it.nextPage,
			PerPage: 100,
		},
	})
	if err != nil {
		return nil, it.clt.wrapRetryableErrors(err)
	}

	if resp.NextPage == 0 || len(prs) == 0 {
		it.finished = true
	} else {
		it.nextPage = resp.NextPage
	}

	it.unseen = prs

	return it.Next()
}

// ListPullRequests returns an iterator for receiving all pull requests.
// The parameters state, sort, sortDirection expect the same values then their
// pendants in the struct github.PullRequestListOptions.
func (clt *Client) ListPullRequests(ctx context.Context, owner, repo, state, sort, sortDirection string) PRIterator { // interface is returned to make the method mockable
	return &PRIter{
		clt:           clt,
		ctx:           ctx,
		owner:         owner,
		repo:          repo,
		filterState:   state,
		sortOrder:     sort,
		sortDirection: sortDirection,
		nextPage:      1,
	}
}

// ApprovePullRequest submits an approving review for the given head commit of
// the pull request.
func (clt *Client) ApprovePullRequest(ctx context.Context, owner, repo string, prNumber int, commitID string) error {
	_, _, err := clt.restClt.PullRequests.CreateReview(ctx, owner, repo, prNumber, &github.PullRequestReviewRequest{
		CommitID: &commitID,
		Event:    github.String("APPROVE"),
	})

	return clt.wrapRetryableErrors(err)
}

// SquashMerge merges the pull request by squashing all its commits into a
// single commit with the given title.
func (clt *Client) SquashMerge(ctx context.Context, owner, repo string, prNumber int, commitTitle string) error {
	_, _, err := clt.restClt.PullRequests.Merge(ctx, owner, repo, prNumber, "", &github.PullRequestOptions{
		CommitTitle: commitTitle,
		MergeMethod: "squash",
	})

	return clt.wrapRetryableErrors(err)
}

// EnableAutoMerge enables github auto-merge with the squash strategy for the
// pull request.
// The call fails when auto-merge is not allowed on the repository or the
// caller misses permissions, the caller is expected to treat a failure as an
// expected outcome and fall back to merging directly.
func (clt *Client) EnableAutoMerge(ctx context.Context, prNodeID string) error {
	var m struct {
		EnablePullRequestAutoMerge struct {
			PullRequest struct {
				Number githubv4.Int
			}
		} `graphql:"enablePullRequestAutoMerge(input: $input)"`
	}

	mergeMethod := githubv4.PullRequestMergeMethodSquash
	input := githubv4.EnablePullRequestAutoMergeInput{
		PullRequestID: githubv4.ID(prNodeID),
		MergeMethod:   &mergeMethod,
	}

	err := clt.graphQLClt.Mutate(ctx, &m, input, nil)
	if err != nil {
		return clt.wrapGraphQLRetryableErrors(err)
	}

	return nil
}
