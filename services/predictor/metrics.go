// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package predictor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "alloypredictor"
	apiSubsystem     = "api"
)

// Metrics holds the Prometheus instruments for the prediction API.
// All operations are safe for concurrent use.
type Metrics struct {
	// RequestsTotal counts API requests.
	// Labels: endpoint, status (success, error)
	RequestsTotal *prometheus.CounterVec

	// RequestDurationSeconds measures handler latency.
	// Labels: endpoint
	RequestDurationSeconds *prometheus.HistogramVec

	// PredictionsTotal counts property-group predictions by source.
	// Labels: group, source (model, formula)
	PredictionsTotal *prometheus.CounterVec

	// OptimizeGenerations measures generations spent per search.
	OptimizeGenerations prometheus.Histogram

	// RateLimitedTotal counts optimize requests rejected by the
	// rate limiter.
	RateLimitedTotal prometheus.Counter
}

var (
	defaultMetrics *Metrics
	metricsOnce    sync.Once
)

// InitMetrics registers the API metrics with the default registry.
// Repeated calls return the same instance.
func InitMetrics() *Metrics {
	metricsOnce.Do(func() {
		defaultMetrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Subsystem: apiSubsystem,
					Name:      "requests_total",
					Help:      "Total API requests by endpoint and status",
				},
				[]string{"endpoint", "status"},
			),

			RequestDurationSeconds: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: metricsNamespace,
					Subsystem: apiSubsystem,
					Name:      "request_duration_seconds",
					Help:      "Handler latency in seconds",
					Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 5, 30},
				},
				[]string{"endpoint"},
			),

			PredictionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Subsystem: apiSubsystem,
					Name:      "predictions_total",
					Help:      "Property-group predictions by source",
				},
				[]string{"group", "source"},
			),

			OptimizeGenerations: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: metricsNamespace,
					Subsystem: apiSubsystem,
					Name:      "optimize_generations",
					Help:      "Generations spent per optimization run",
					Buckets:   []float64{10, 25, 50, 100, 200, 400},
				},
			),

			RateLimitedTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Subsystem: apiSubsystem,
					Name:      "rate_limited_total",
					Help:      "Optimize requests rejected by the rate limiter",
				},
			),
		}
	})
	return defaultMetrics
}

// RecordRequest records one finished request.
func (m *Metrics) RecordRequest(endpoint string, success bool, seconds float64) {
	status := "success"
	if !success {
		status = "error"
	}
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.RequestDurationSeconds.WithLabelValues(endpoint).Observe(seconds)
}

// RecordPrediction records which source served a property group.
func (m *Metrics) RecordPrediction(group string, modelBacked bool) {
	source := "formula"
	if modelBacked {
		source = "model"
	}
	m.PredictionsTotal.WithLabelValues(group, source).Inc()
}
