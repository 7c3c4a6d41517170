// Package metrics exposes Prometheus instrumentation for analyses.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rocjay1/card-advisor/internal/models"
)

var (
	// AnalysesTotal counts analyses by source ("api", "batch") and outcome
	// ("success", "rejected").
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_advisor_analyses_total",
			Help: "Total number of transaction analyses",
		},
		[]string{"source", "outcome"},
	)

	// TransactionsAnalyzed is the size distribution of analyzed batches.
	TransactionsAnalyzed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "card_advisor_transactions_per_analysis",
			Help:    "Number of transactions in each analysis",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// RecommendationsIssued counts returned recommendations by service and priority.
	RecommendationsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_advisor_recommendations_total",
			Help: "Total number of recommendations returned to clients",
		},
		[]string{"service", "priority"},
	)
)

// ObserveAnalysis records a successful analysis and its result.
func ObserveAnalysis(source string, transactionCount int, recs []models.Recommendation) {
	AnalysesTotal.WithLabelValues(source, "success").Inc()
	TransactionsAnalyzed.Observe(float64(transactionCount))
	for _, r := range recs {
		RecommendationsIssued.WithLabelValues(r.Service, strconv.Itoa(r.Priority)).Inc()
	}
}

// ObserveRejection records a request rejected at the boundary.
func ObserveRejection(source string) {
	AnalysesTotal.WithLabelValues(source, "rejected").Inc()
}
