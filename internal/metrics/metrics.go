package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bidwriter_uploads_total",
		Help: "Tender document uploads by outcome.",
	}, []string{"status"})

	tasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bidwriter_tasks_total",
		Help: "Finished tasks by kind and outcome.",
	}, []string{"kind", "status"})

	llmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bidwriter_llm_requests_total",
		Help: "Outbound model calls by operation and outcome.",
	}, []string{"operation", "status"})

	llmRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bidwriter_llm_request_duration_seconds",
		Help:    "Outbound model call latency.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"operation"})
)

// RecordUpload counts one upload with the given outcome.
func RecordUpload(status string) {
	uploadsTotal.WithLabelValues(status).Inc()
}

// RecordTask counts one finished task.
func RecordTask(kind, status string) {
	tasksTotal.WithLabelValues(kind, status).Inc()
}

// ObserveLLMCall records one model call's outcome and latency.
func ObserveLLMCall(operation string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	llmRequestsTotal.WithLabelValues(operation, status).Inc()
	llmRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
