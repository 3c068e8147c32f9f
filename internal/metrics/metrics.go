// Package metrics exposes prometheus counters for the quote service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuoteRequests counts quote API requests by outcome.
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdesk_quote_requests_total",
			Help: "Quote requests handled, labeled by outcome",
		},
		[]string{"status"},
	)

	// CacheLookups counts quote cache lookups by result.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealdesk_cache_lookups_total",
			Help: "Quote cache lookups, labeled hit or miss",
		},
		[]string{"result"},
	)

	// QuoteDuration observes end-to-end quote computation time.
	QuoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dealdesk_quote_duration_seconds",
			Help:    "End-to-end quote computation duration",
			Buckets: prometheus.DefBuckets,
		},
	)
)
