// Package metrics holds the prometheus collectors of the API process.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"marketplace-backend/internal/shared/apperror"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// ReviewMutations counts review create/update/delete by outcome; the
	// outcome is "ok" or the error kind
	ReviewMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_mutations_total",
			Help: "Review create, update and delete attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "Purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	RatingSummaryLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_summary_lookups_total",
			Help: "Rating summary reads by scope and cache result",
		},
		[]string{"scope", "result"},
	)
)

// Outcome labels err by kind
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperror.KindOf(err))
}

func ObserveReviewMutation(operation string, err error) {
	ReviewMutations.WithLabelValues(operation, Outcome(err)).Inc()
}

func ObservePurchase(err error) {
	PurchasesTotal.WithLabelValues(Outcome(err)).Inc()
}
