package automerge

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/simplesurance/depmerge/internal/cfg"
	"github.com/simplesurance/depmerge/internal/githubclt"
	"github.com/simplesurance/depmerge/internal/logfields"
)

const loggerName = "automerge"

// DefMaxMergedAge is the default period in that an already merged matching
// pull request still satisfies a recurring update.
const DefMaxMergedAge = 3 * 24 * time.Hour

//go:generate mockgen -destination mocks/githubclient.go -package mocks github.com/simplesurance/depmerge/internal/automerge GithubClient

// GithubClient is the github API surface the pipeline consumes.
// It is implemented by [githubclt.Client].
type GithubClient interface {
	Repository(ctx context.Context, owner, repo string) (*githubclt.RepositoryMetadata, error)
	RepositoryTopics(ctx context.Context, owner, repo string) ([]string, error)
	ListPullRequests(ctx context.Context, owner, repo, state, sort, sortDirection string) githubclt.PRIterator
	PRStatus(ctx context.Context, owner, repo string, prNumber int) (*githubclt.PRStatus, error)
	ApprovePullRequest(ctx context.Context, owner, repo string, prNumber int, commitID string) error
	SquashMerge(ctx context.Context, owner, repo string, prNumber int, commitTitle string) error
	EnableAutoMerge(ctx context.Context, prNodeID string) error
	FileContent(ctx context.Context, owner, repo, branch, path string) (*githubclt.FileContent, error)
	UpdateFile(ctx context.Context, owner, repo, branch, path, sha, commitMsg string, content []byte) error
	WorkflowByFileName(ctx context.Context, owner, repo, fileName string) (*githubclt.Workflow, error)
	ListWorkflowRuns(ctx context.Context, owner, repo string, workflowID int64, branch string) ([]*githubclt.WorkflowRun, error)
	RerunWorkflowRun(ctx context.Context, owner, repo string, runID int64) error
}

// Result is the terminal outcome of processing one repository.
type Result int

const (
	// ResultSkipped means a precondition was not met, the reason was logged
	// and nothing was merged or triggered.
	ResultSkipped Result = iota
	// ResultAlreadyMerged means a matching pull request was merged before,
	// the repository needs no further action.
	ResultAlreadyMerged
	// ResultMerged means the pull request was squash-merged.
	ResultMerged
	// ResultAutoMergeEnabled means github auto-merge was enabled for the
	// pull request, github merges it when all blocking conditions clear.
	ResultAutoMergeEnabled
	// ResultMergeReady means the pull request could be merged but merging is
	// disabled by configuration.
	ResultMergeReady
	// ResultRerunTriggered means no pull request existed and a rerun of the
	// update workflow was triggered.
	ResultRerunTriggered
)

func (r Result) String() string {
	switch r {
	case ResultSkipped:
		return "skipped"
	case ResultAlreadyMerged:
		return "already-merged"
	case ResultMerged:
		return "merged"
	case ResultAutoMergeEnabled:
		return "auto-merge-enabled"
	case ResultMergeReady:
		return "merge-ready"
	case ResultRerunTriggered:
		return "rerun-triggered"
	default:
		return fmt.Sprintf("unknown (%d)", int(r))
	}
}

// Automerger merges dependency-update pull requests.
// Repositories are processed independently and statelessly, all state is
// fetched fresh from the github API on every ProcessRepository call.
type Automerger struct {
	clt             GithubClient
	update          *Update
	optOutTopic     string
	maxMergedAge    time.Duration
	merge           bool
	enableAutoMerge bool
	logger          *zap.Logger
}

type Opt func(*Automerger)

// WithOptOutTopic overrides the repository topic that excludes a repository
// from processing.
func WithOptOutTopic(topic string) Opt {
	return func(a *Automerger) {
		a.optOutTopic = topic
	}
}

// WithMaxMergedAge overrides how recent an already merged pull request must
// be to satisfy a recurring update.
func WithMaxMergedAge(age time.Duration) Opt {
	return func(a *Automerger) {
		a.maxMergedAge = age
	}
}

// WithoutMerging disables the merge operation, readiness is only logged.
func WithoutMerging() Opt {
	return func(a *Automerger) {
		a.merge = false
	}
}

// WithPlatformAutoMerge makes the Automerger try to enable github auto-merge
// before falling back to merging directly.
func WithPlatformAutoMerge() Opt {
	return func(a *Automerger) {
		a.enableAutoMerge = true
	}
}

func New(clt GithubClient, update *Update, opts ...Opt) *Automerger {
	a := Automerger{
		clt:          clt,
		update:       update,
		optOutTopic:  cfg.DefOptOutTopic,
		maxMergedAge: DefMaxMergedAge,
		merge:        true,
		logger:       zap.L().Named(loggerName),
	}

	for _, opt := range opts {
		opt(&a)
	}

	return &a
}

// ProcessRepository runs the pipeline for a single repository: locate the
// matching pull request, repair its branch when needed, evaluate
// mergeability, approve and merge it, or trigger the update workflow when no
// pull request exists.
// Unmet preconditions are terminal but not errors, they are logged and
// ResultSkipped is returned.
func (a *Automerger) ProcessRepository(ctx context.Context, owner, repo string) (Result, error) {
	logger := a.logger.With(
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
	)

	meta, err := a.clt.Repository(ctx, owner, repo)
	if err != nil {
		return ResultSkipped, fmt.Errorf("fetching repository metadata failed: %w", err)
	}

	if meta.Archived {
		logger.Info(
			"skipping repository, it is archived",
			logfields.Event("repository_skipped"),
			logfields.Reason("archived"),
		)
		return ResultSkipped, nil
	}

	topics, err := a.clt.RepositoryTopics(ctx, owner, repo)
	if err != nil {
		return ResultSkipped, fmt.Errorf("fetching repository topics failed: %w", err)
	}

	if slices.Contains(topics, a.optOutTopic) {
		logger.Info(
			"skipping repository, opt-out topic is set",
			logfields.Event("repository_skipped"),
			logfields.Reason("opt-out topic"),
			zap.String("topic", a.optOutTopic),
		)
		return ResultSkipped, nil
	}

	located, err := a.locatePR(ctx, owner, repo)
	if err != nil {
		return ResultSkipped, fmt.Errorf("locating pull request failed: %w", err)
	}

	switch located.status {
	case locateAlreadyMerged:
		logger.Info(
			"matching pull request is already merged",
			logfields.Event("pull_request_already_merged"),
			logfields.PullRequest(located.pr.GetNumber()),
			logfields.Title(located.pr.GetTitle()),
		)
		return ResultAlreadyMerged, nil

	case locateDraft:
		logger.Warn(
			"matching pull request is a draft, waiting for it to be marked ready",
			logfields.Event("pull_request_is_draft"),
			logfields.PullRequest(located.pr.GetNumber()),
			logfields.Title(located.pr.GetTitle()),
		)
		return ResultSkipped, nil

	case locateNone:
		return a.triggerUpdateWorkflow(ctx, owner, repo, meta.DefaultBranch)
	}

	pr := located.pr
	logger = logger.With(
		logfields.PullRequest(pr.GetNumber()),
		logfields.Title(pr.GetTitle()),
	)

	logger.Debug(
		"matching pull request located",
		logfields.Event("pull_request_located"),
		zap.String("url", pr.GetHTMLURL()),
	)

	if a.update.Kind == UpdateKindPnpm {
		a.repairPnpmBranch(ctx, owner, repo, pr.GetHead().GetRef())
	}

	status, err := a.clt.PRStatus(ctx, owner, repo, pr.GetNumber())
	if err != nil {
		return ResultSkipped, fmt.Errorf("fetching pull request status failed: %w", err)
	}

	if !status.ViewerCanUpdate {
		logger.Info(
			"skipping pull request, caller is not allowed to update it",
			logfields.Event("pull_request_skipped"),
			logfields.Reason("missing permission"),
		)
		return ResultSkipped, nil
	}

	if status.CIStatus != githubclt.CIStatusSuccess {
		logger.Info(
			"skipping pull request, CI is not successful",
			logfields.Event("pull_request_skipped"),
			logfields.Reason("ci not successful"),
			zap.String("ci_status", string(status.CIStatus)),
		)
		return ResultSkipped, nil
	}

	if status.Mergeable != githubclt.MergeableStateMergeable {
		logger.Info(
			"skipping pull request, github does not report it as mergeable",
			logfields.Event("pull_request_skipped"),
			logfields.Reason("not mergeable"),
			zap.String("mergeable_state", string(status.Mergeable)),
		)
		return ResultSkipped, nil
	}

	if status.ReviewDecision != githubclt.ReviewDecisionApproved {
		status, err = a.approve(ctx, logger, owner, repo, pr.GetNumber(), status)
		if err != nil {
			return ResultSkipped, err
		}

		if status == nil {
			// approval was not possible, the reason was logged
			return ResultSkipped, nil
		}
	}

	return a.mergePR(ctx, logger, owner, repo, pr, status)
}

// approve submits an approving review and re-validates the review decision.
// It returns the refreshed status snapshot when the pull request is approved
// afterwards and nil when approval by the caller is not possible.
func (a *Automerger) approve(ctx context.Context, logger *zap.Logger, owner, repo string, prNumber int, status *githubclt.PRStatus) (*githubclt.PRStatus, error) {
	if status.ViewerDidAuthor {
		logger.Info(
			"skipping pull request, it is not approved and the caller authored it",
			logfields.Event("pull_request_skipped"),
			logfields.Reason("self-approval not possible"),
		)
		return nil, nil
	}

	if status.ViewerApproved {
		logger.Info(
			"skipping pull request, the caller already approved it but it is still not approved overall",
			logfields.Event("pull_request_skipped"),
			logfields.Reason("already approved by caller"),
		)
		return nil, nil
	}

	err := a.clt.ApprovePullRequest(ctx, owner, repo, prNumber, status.HeadCommitID)
	if err != nil {
		return nil, fmt.Errorf("approving pull request failed: %w", err)
	}

	logger.Info(
		"submitted approving review",
		logfields.Event("pull_request_approved"),
		logfields.Commit(status.HeadCommitID),
	)

	// github aggregates reviews into the review decision asynchronously,
	// the decision must be re-read before merging
	refreshed, err := a.clt.PRStatus(ctx, owner, repo, prNumber)
	if err != nil {
		return nil, fmt.Errorf("re-fetching pull request status after approval failed: %w", err)
	}

	if refreshed.ReviewDecision != githubclt.ReviewDecisionApproved {
		logger.Info(
			"skipping pull request, it is still not approved after submitting an approving review",
			logfields.Event("pull_request_skipped"),
			logfields.Reason("not approved"),
			zap.String("review_decision", string(refreshed.ReviewDecision)),
		)
		return nil, nil
	}

	return refreshed, nil
}

type autoMergeOutcome int

const (
	autoMergeEnabled autoMergeOutcome = iota
	autoMergeUnavailable
)

// tryEnableAutoMerge attempts to enable github auto-merge for the pull
// request. A failure is an expected outcome, e.g. when the repository does
// not allow auto-merge, it is logged and autoMergeUnavailable is returned.
func (a *Automerger) tryEnableAutoMerge(ctx context.Context, logger *zap.Logger, prNodeID string) autoMergeOutcome {
	err := a.clt.EnableAutoMerge(ctx, prNodeID)
	if err != nil {
		logger.Warn(
			"enabling auto-merge failed, falling back to merging directly",
			logfields.Event("auto_merge_unavailable"),
			zap.Error(err),
		)
		return autoMergeUnavailable
	}

	return autoMergeEnabled
}

func (a *Automerger) mergePR(ctx context.Context, logger *zap.Logger, owner, repo string, pr *github.PullRequest, status *githubclt.PRStatus) (Result, error) {
	if a.enableAutoMerge {
		if a.tryEnableAutoMerge(ctx, logger, status.NodeID) == autoMergeEnabled {
			logger.Info(
				"enabled auto-merge for pull request",
				logfields.Event("pull_request_auto_merge_enabled"),
			)
			return ResultAutoMergeEnabled, nil
		}
	}

	if !a.merge {
		logger.Info(
			"pull request is ready to be merged, merging is disabled",
			logfields.Event("pull_request_merge_ready"),
		)
		return ResultMergeReady, nil
	}

	commitTitle := fmt.Sprintf("%s (#%d)", pr.GetTitle(), pr.GetNumber())

	err := a.clt.SquashMerge(ctx, owner, repo, pr.GetNumber(), commitTitle)
	if err != nil {
		return ResultSkipped, fmt.Errorf("merging pull request failed: %w", err)
	}

	logger.Info(
		"merged pull request",
		logfields.Event("pull_request_merged"),
		zap.String("commit_title", commitTitle),
	)

	return ResultMerged, nil
}
