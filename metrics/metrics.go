// Copyright (c) 2026 VoteUp Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ServerMetrics covers the submission and aggregation paths.
type ServerMetrics struct {
	SubmissionsAccepted *prometheus.CounterVec
	SubmissionsRejected *prometheus.CounterVec
	AggregationTime     prometheus.Histogram
	LiveSubscribers     prometheus.Gauge
}

// NewServerMetrics registers all metrics with the default registry via
// promauto; call it once at startup.
func NewServerMetrics(namespace string) *ServerMetrics {
	return &ServerMetrics{
		SubmissionsAccepted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_accepted_total",
				Help:      "Accepted submissions by vote type",
			},
			[]string{"vote_type"},
		),
		SubmissionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_rejected_total",
				Help:      "Rejected submissions by reason (validation code, closed, duplicate)",
			},
			[]string{"reason"},
		),
		AggregationTime: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "aggregation_duration_seconds",
				Help:      "Time spent aggregating a vote's responses",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
			},
		),
		LiveSubscribers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_subscribers",
				Help:      "Currently connected live-feed subscribers",
			},
		),
	}
}
