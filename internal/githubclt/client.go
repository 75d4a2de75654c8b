// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/depmerge/internal/logfields"
	"github.com/simplesurance/depmerge/internal/retryerr"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

// ErrNotFound is returned when a queried github object does not exist.
var ErrNotFound = errors.New("not found")

// New returns a new github api client.
func New(oauthAPItoken string) *Client {
	httpClient := newHTTPClient(oauthAPItoken)
	return &Client{
		restClt:    github.NewClient(httpClient),
		graphQLClt: githubv4.NewClient(httpClient),
		logger:     zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is an github API client.
// All methods return a retryerr.RetryableError when an operation can be
// retried. This can be e.g. the case when the API ratelimit is exceeded.
type Client struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger
}

// RepositoryMetadata are the repository attributes that are evaluated before
// any pull request of the repository is processed.
type RepositoryMetadata struct {
	DefaultBranch string
	Archived      bool
}

// Repository returns the metadata of a repository.
func (clt *Client) Repository(ctx context.Context, owner, repo string) (*RepositoryMetadata, error) {
	repository, _, err := clt.restClt.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	return &RepositoryMetadata{
		DefaultBranch: repository.GetDefaultBranch(),
		Archived:      repository.GetArchived(),
	}, nil
}

// RepositoryTopics returns the topics of a repository as a flat string slice.
func (clt *Client) RepositoryTopics(ctx context.Context, owner, repo string) ([]string, error) {
	topics, _, err := clt.restClt.Repositories.ListAllTopics(ctx, owner, repo)
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	return topics, nil
}

func isNotFound(err error) bool {
	var respErr *github.ErrorResponse

	if errors.As(err, &respErr) {
		return respErr.Response.StatusCode == http.StatusNotFound
	}

	return false
}

func (clt *Client) wrapRetryableErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return retryerr.New(err, v.Rate.Reset.Time)

	case *github.ErrorResponse:
		if v.Response.StatusCode >= 500 && v.Response.StatusCode < 600 {
			return retryerr.NewAnytime(err)
		}
	}

	return err
}

var graphQlHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (clt *Client) wrapGraphQLRetryableErrors(err error) error {
	matches := graphQlHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return err
	}

	errcode, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		clt.logger.Info(
			"parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
			zap.String("http_errcode", matches[1]),
		)
		return err
	}

	if errcode >= 500 && errcode < 600 {
		return retryerr.NewAnytime(err)
	}

	return err
}
