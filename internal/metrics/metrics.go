package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispatchTotal counts dispatches per use-case, labeled by outcome.
	DispatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musecase_dispatch_total",
		Help: "The total number of use-case dispatches",
	}, []string{"use_case", "status"}) // status: success, upstream_error, invalid, unknown

	// CompletionDuration measures one remote completion call.
	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "musecase_completion_duration_seconds",
		Help:    "Time taken by the upstream chat completion call",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"}) // status: success, error

	// UploadParseFailures counts rejected tabular uploads.
	UploadParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "musecase_upload_parse_failures_total",
		Help: "Total number of uploaded tables that failed to parse",
	})
)
