package logfields

import "go.uber.org/zap"

func PullRequest(val int) zap.Field {
	return zap.Int("github.pull_request", val)
}

func Repository(val string) zap.Field {
	return zap.String("git.repository", val)
}

func RepositoryOwner(val string) zap.Field {
	return zap.String("github.repository_owner", val)
}

func Branch(val string) zap.Field {
	return zap.String("git.branch", val)
}

func Commit(val string) zap.Field {
	return zap.String("git.commit", val)
}

func Title(val string) zap.Field {
	return zap.String("github.pull_request_title", val)
}

func Workflow(val string) zap.Field {
	return zap.String("github.workflow", val)
}

func WorkflowRun(val int64) zap.Field {
	return zap.Int64("github.workflow_run", val)
}

func File(val string) zap.Field {
	return zap.String("git.file", val)
}
