package summary

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rolesconsole_summary_fetch_duration_seconds",
		Help:    "Joint users and roles fetch latency distribution",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	fetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rolesconsole_summary_fetch_failures_total",
		Help: "Failed joint fetches by the collection that failed first",
	}, []string{"resource"})
)

func init() {
	prometheus.MustRegister(fetchLatency, fetchFailures)
}
