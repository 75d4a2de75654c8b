package fleet

import (
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/simplesurance/depmerge/internal/cfg"
)

// FilterRepositories returns the repositories for which the jq filter query
// evaluates to true.
// The query is run against an object with the fields "owner" and
// "repository". An empty query selects all repositories.
func FilterRepositories(query string, repositories []cfg.GithubRepository) ([]cfg.GithubRepository, error) {
	if query == "" {
		return repositories, nil
	}

	q, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("parsing repository filter query failed: %w", err)
	}

	result := make([]cfg.GithubRepository, 0, len(repositories))

	for _, repository := range repositories {
		input := map[string]any{
			"owner":      repository.Owner,
			"repository": repository.RepositoryName,
		}

		match, err := evalBool(q, input)
		if err != nil {
			return nil, fmt.Errorf("evaluating repository filter query for %s/%s failed: %w",
				repository.Owner, repository.RepositoryName, err)
		}

		if match {
			result = append(result, repository)
		}
	}

	return result, nil
}

func evalBool(query *gojq.Query, input any) (bool, error) {
	iter := query.Run(input)

	res, ok := iter.Next()
	if !ok {
		return false, fmt.Errorf("query %q returned 0 results, expected 1", query.String())
	}

	if err, isErr := res.(error); isErr {
		return false, err
	}

	if _, more := iter.Next(); more {
		return false, fmt.Errorf("query %q returned multiple results, expected 1", query.String())
	}

	boolVal, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("query %q returned non-bool result: %+v (%T)", query.String(), res, res)
	}

	return boolVal, nil
}
