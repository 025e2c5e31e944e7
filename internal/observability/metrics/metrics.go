package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "freightops_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	ratingEstimatesTotal   *prometheus.CounterVec
	ratingEstimatesLatency *prometheus.HistogramVec

	billingRunsTotal   *prometheus.CounterVec
	billingRunsLatency *prometheus.HistogramVec
	billingLineItems   prometheus.Counter

	allocationRunsTotal   *prometheus.CounterVec
	allocationRunsLatency *prometheus.HistogramVec
	allocationAmount      prometheus.Counter

	agingRunsTotal *prometheus.CounterVec

	creditReviewsTotal   *prometheus.CounterVec
	creditReviewsLatency *prometheus.HistogramVec

	reportExportTotal *prometheus.CounterVec
)

// Init registers engine metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ratingEstimatesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "rating_estimates_total",
				Help: "Total channel cost estimates by result",
			},
			[]string{"result"},
		)
		ratingEstimatesLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "rating_estimates_latency_seconds",
				Help:    "Channel cost estimate latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		billingRunsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "billing_runs_total",
				Help: "Total auto-billing runs by result",
			},
			[]string{"result"},
		)
		billingRunsLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "billing_runs_latency_seconds",
				Help:    "Auto-billing run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		billingLineItems = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "billing_line_items_total",
				Help: "Total charge line items produced",
			},
		)

		allocationRunsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "allocation_runs_total",
				Help: "Total payment allocation runs by result",
			},
			[]string{"result"},
		)
		allocationRunsLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "allocation_runs_latency_seconds",
				Help:    "Payment allocation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		allocationAmount = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "allocation_amount_total",
				Help: "Cumulative allocated amount",
			},
		)

		agingRunsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "aging_runs_total",
				Help: "Total aging analysis runs by result",
			},
			[]string{"result"},
		)

		creditReviewsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "credit_reviews_total",
				Help: "Total credit reviews by risk level",
			},
			[]string{"level"},
		)
		creditReviewsLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "credit_reviews_latency_seconds",
				Help:    "Credit review latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"level"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			ratingEstimatesTotal,
			ratingEstimatesLatency,
			billingRunsTotal,
			billingRunsLatency,
			billingLineItems,
			allocationRunsTotal,
			allocationRunsLatency,
			allocationAmount,
			agingRunsTotal,
			creditReviewsTotal,
			creditReviewsLatency,
			reportExportTotal,
		)
	})
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// ObserveEstimate records one channel cost estimate run.
func ObserveEstimate(err error, duration time.Duration) {
	if ratingEstimatesTotal != nil {
		ratingEstimatesTotal.WithLabelValues(resultLabel(err)).Inc()
	}
	if ratingEstimatesLatency != nil {
		ratingEstimatesLatency.WithLabelValues(resultLabel(err)).Observe(duration.Seconds())
	}
}

// ObserveBillingRun records one auto-billing run and its line item count.
func ObserveBillingRun(err error, lineItems int, duration time.Duration) {
	if billingRunsTotal != nil {
		billingRunsTotal.WithLabelValues(resultLabel(err)).Inc()
	}
	if billingRunsLatency != nil {
		billingRunsLatency.WithLabelValues(resultLabel(err)).Observe(duration.Seconds())
	}
	if err == nil && billingLineItems != nil {
		billingLineItems.Add(float64(lineItems))
	}
}

// ObserveAllocationRun records one allocation run and the amount it moved.
func ObserveAllocationRun(err error, allocated float64, duration time.Duration) {
	if allocationRunsTotal != nil {
		allocationRunsTotal.WithLabelValues(resultLabel(err)).Inc()
	}
	if allocationRunsLatency != nil {
		allocationRunsLatency.WithLabelValues(resultLabel(err)).Observe(duration.Seconds())
	}
	if err == nil && allocated > 0 && allocationAmount != nil {
		allocationAmount.Add(allocated)
	}
}

// IncAgingRun records one aging analysis run.
func IncAgingRun(err error) {
	if agingRunsTotal != nil {
		agingRunsTotal.WithLabelValues(resultLabel(err)).Inc()
	}
}

// ObserveCreditReview records one credit review by risk level.
func ObserveCreditReview(level string, duration time.Duration) {
	if level == "" {
		level = "unknown"
	}
	if creditReviewsTotal != nil {
		creditReviewsTotal.WithLabelValues(level).Inc()
	}
	if creditReviewsLatency != nil {
		creditReviewsLatency.WithLabelValues(level).Observe(duration.Seconds())
	}
}

// IncReportExport records one report export.
func IncReportExport(format string, err error) {
	if format == "" {
		format = "unknown"
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, resultLabel(err)).Inc()
	}
}
