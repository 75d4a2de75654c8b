package githubclt

import (
	"context"
	"fmt"

	"github.com/google/go-github/v59/github"
)

// FileContent is the decoded content of a repository file plus the blob SHA
// that identifies the read revision.
type FileContent struct {
	Content string
	SHA     string
}

// FileContent reads a file from a branch.
// If the file does not exist on the branch an error wrapping ErrNotFound is
// returned.
func (clt *Client) FileContent(ctx context.Context, owner, repo, branch, path string) (*FileContent, error) {
	fileContent, _, _, err := clt.restClt.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{
		Ref: branch,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("file %q on branch %q: %w", path, branch, ErrNotFound)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	if fileContent == nil {
		return nil, fmt.Errorf("%q on branch %q is not a file", path, branch)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding content of %q failed: %w", path, err)
	}

	return &FileContent{
		Content: content,
		SHA:     fileContent.GetSHA(),
	}, nil
}

// UpdateFile commits a new version of an existing file to a branch.
// sha must be the blob SHA of the previously read file revision, github
// rejects the write when the file changed in the meantime.
func (clt *Client) UpdateFile(ctx context.Context, owner, repo, branch, path, sha, commitMsg string, content []byte) error {
	_, _, err := clt.restClt.Repositories.UpdateFile(ctx, owner, repo, path, &github.RepositoryContentFileOptions{
		Message: &commitMsg,
		Content: content,
		SHA:     &sha,
		Branch:  &branch,
	})

	return clt.wrapRetryableErrors(err)
}
