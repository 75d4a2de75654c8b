package fleet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/simplesurance/depmerge/internal/automerge"
)

const metricNamespace = "depmerge"

const (
	processedRepositoriesMetricName = "processed_repositories_total"
	failedRepositoriesMetricName    = "failed_repositories_total"
)

const resultLabel = "result"

type metricCollector struct {
	processedRepositories *prometheus.CounterVec
	failedRepositories    prometheus.Counter
}

var metrics = newMetricCollector()

func newMetricCollector() *metricCollector {
	return &metricCollector{
		processedRepositories: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      processedRepositoriesMetricName,
				Help:      "Count of processed repositories by pipeline result.",
			},
			[]string{resultLabel},
		),
		failedRepositories: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      failedRepositoriesMetricName,
				Help:      "Count of repositories whose processing failed with an error.",
			},
		),
	}
}

func (m *metricCollector) recordResult(result automerge.Result) {
	m.processedRepositories.WithLabelValues(result.String()).Inc()
}

func (m *metricCollector) recordFailure() {
	m.failedRepositories.Inc()
}
