package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	pipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indicator_analysis_pipeline_runs_total",
			Help: "Total number of indicator pipeline runs",
		},
		[]string{"status"},
	)

	pipelineRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "indicator_analysis_pipeline_rows",
			Help:    "Distribution of row counts produced per pipeline run",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		},
	)

	// Calculator metrics
	indicatorDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indicator_analysis_compute_duration_seconds",
			Help:    "Duration of individual indicator computations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"indicator"},
	)

	// Feature engineering metrics
	droppedRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "indicator_analysis_dropped_rows_total",
			Help: "Total number of rows removed by the missing-value policy",
		},
	)

	degenerateColumnsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "indicator_analysis_degenerate_columns_total",
			Help: "Total number of zero-variance feature columns seen during normalization fit",
		},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(pipelineRunsTotal)
	prometheus.MustRegister(pipelineRows)
	prometheus.MustRegister(indicatorDuration)
	prometheus.MustRegister(droppedRowsTotal)
	prometheus.MustRegister(degenerateColumnsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordPipelineRun records the outcome and size of a pipeline run
func RecordPipelineRun(status string, rows int) {
	pipelineRunsTotal.WithLabelValues(status).Inc()
	if rows > 0 {
		pipelineRows.Observe(float64(rows))
	}
}

// ObserveIndicatorDuration records the compute time of one calculator
func ObserveIndicatorDuration(indicator string, d time.Duration) {
	indicatorDuration.WithLabelValues(indicator).Observe(d.Seconds())
}

// RecordDroppedRows records rows removed by the missing-value policy
func RecordDroppedRows(n int) {
	if n > 0 {
		droppedRowsTotal.Add(float64(n))
	}
}

// RecordDegenerateColumn records a zero-variance feature column
func RecordDegenerateColumn() {
	degenerateColumnsTotal.Inc()
}
