// Package cfg loads the depmerge configuration file.
package cfg

import (
	"io"

	"github.com/pelletier/go-toml"
)

// DefOptOutTopic is the repository topic that excludes a repository from
// automatic merging when no other value is configured.
const DefOptOutTopic = "no-auto-merge"

type Config struct {
	GithubAPIToken        string             `toml:"github_api_token"`
	LogFormat             string             `toml:"log_format" default:"logfmt"`
	LogTimeKey            string             `toml:"log_time_key"`
	LogLevel              string             `toml:"log_level" default:"info"`
	OptOutTopic           string             `toml:"opt_out_topic"`
	MetricsListenAddr     string             `toml:"http_metrics_listen_addr"`
	RepositoryFilterQuery string             `toml:"repository_filter_query"`
	Repositories          []GithubRepository `toml:"repository"`
}

type GithubRepository struct {
	Owner          string `toml:"owner"`
	RepositoryName string `toml:"repository"`
}

func Load(reader io.Reader) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	if result.OptOutTopic == "" {
		result.OptOutTopic = DefOptOutTopic
	}

	return &result, nil
}

func (r *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(r)
}
