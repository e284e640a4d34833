// Copyright 2021 The age Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics exposes Prometheus counters and histograms for the demo
// CLI's session exchanges. The session façade itself (internal/session)
// stays free of this dependency — only cmd/hpkesession-demo records
// against it, around calls into the façade.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hpkesession"

// Registry is a private registry so embedding this module in a larger
// process doesn't collide with its own default registry.
var Registry = prometheus.NewRegistry()

var (
	// SessionsCreated counts sessions started, by role ("sender" or
	// "recipient") and outcome ("ok" or "error").
	SessionsCreated = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "created_total",
			Help:      "Total number of sessions started, by role and outcome.",
		},
		[]string{"role", "outcome"},
	)

	// MessagesProcessed counts seal/open calls, by direction ("request" or
	// "response"), operation ("seal" or "open"), and outcome.
	MessagesProcessed = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "processed_total",
			Help:      "Total number of request/response messages sealed or opened.",
		},
		[]string{"direction", "operation", "outcome"},
	)

	// OperationDuration tracks how long a seal/open call took.
	OperationDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "duration_seconds",
			Help:      "Duration of a single seal or open call.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"operation"},
	)
)

// Handler returns the HTTP handler serving this module's metrics in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
