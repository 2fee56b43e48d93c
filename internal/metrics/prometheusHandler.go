package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var jobsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ocr_jobs_in_flight",
	Help: "Number of jobs currently running",
})

var jobsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ocr_jobs_created_total",
	Help: "Jobs created, labelled by submission source",
}, []string{"source"})

var pagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ocr_pages_processed_total",
	Help: "Pages successfully extracted across all jobs",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInFlight() {
	jobsInFlight.Inc()
}

func DecrementJobsInFlight() {
	jobsInFlight.Dec()
}

func CountJobCreated(source string) {
	jobsCreated.WithLabelValues(source).Inc()
}

func CountPageProcessed() {
	pagesProcessed.Inc()
}

var jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ocr_job_duration_seconds",
	Help:    "Total run time of a job from start to terminal state.",
	Buckets: []float64{.5, 1, 5, 15, 30, 60, 120, 300, 600},
}, []string{"status"})

var extractionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ocr_extraction_latency_seconds",
	Help:    "Latency of one page extraction including client retries.",
	Buckets: []float64{.25, .5, 1, 2, 5, 10, 30, 60, 120},
}, []string{"provider"})

func CaptureExtractionMetrics(provider string, timeElapsed time.Duration) {
	extractionLatency.WithLabelValues(provider).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(status string, timeElapsed time.Duration) {
	jobDuration.WithLabelValues(status).Observe(timeElapsed.Seconds())
}
