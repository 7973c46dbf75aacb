// Package metrics registers and records Prometheus metrics for the reminder
// worker. Init must be called once before any Record helper.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fundwerk_"

	ResultSuccess = "success"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

var (
	registerOnce sync.Once

	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Histogram

	productsEvaluated    prometheus.Counter
	productsMatured      prometheus.Counter
	notificationsCreated prometheus.Counter
	emailsSent           prometheus.Counter
)

// Init registers the worker metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		runsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reminder_runs_total",
				Help: "Total reminder runs by result",
			},
			[]string{"result"},
		)
		runDuration = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "reminder_run_duration_seconds",
				Help:    "Reminder run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		)
		productsEvaluated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "products_evaluated_total",
			Help: "Total products evaluated across reminder runs",
		})
		productsMatured = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "products_matured_total",
			Help: "Total products flipped to inactive on maturity",
		})
		notificationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "notifications_created_total",
			Help: "Total notification records persisted",
		})
		emailsSent = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "emails_sent_total",
			Help: "Total reminder emails sent",
		})

		prometheus.MustRegister(
			runsTotal,
			runDuration,
			productsEvaluated,
			productsMatured,
			notificationsCreated,
			emailsSent,
		)
	})
}

// RecordRun records the outcome and duration of one reminder run.
func RecordRun(result string, duration time.Duration) {
	if runsTotal == nil {
		return
	}
	runsTotal.WithLabelValues(result).Inc()
	if result == ResultSuccess {
		runDuration.Observe(duration.Seconds())
	}
}

// RecordRunTotals adds one run's counters to the cumulative totals.
func RecordRunTotals(evaluated, matured, notifications, emails int) {
	if productsEvaluated == nil {
		return
	}
	productsEvaluated.Add(float64(evaluated))
	productsMatured.Add(float64(matured))
	notificationsCreated.Add(float64(notifications))
	emailsSent.Add(float64(emails))
}
