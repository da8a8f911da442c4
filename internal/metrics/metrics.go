// Package metrics defines Prometheus metrics for the audit service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	TableFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_table_failures_total",
			Help: "Per-table audit queries that failed and were skipped",
		},
		[]string{"table", "operation"},
	)

	ReportsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_reports_generated_total",
			Help: "Spreadsheet reports generated by kind",
		},
		[]string{"kind"},
	)

	ReportRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "audit_report_rows",
			Help:    "Data rows written per report",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 3000},
		},
		[]string{"kind"},
	)

	PurgedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_purged_records_total",
			Help: "Audit records removed by retention purges",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal,
		TableFailures, ReportsGenerated, ReportRows, PurgedRecords,
	)
}
