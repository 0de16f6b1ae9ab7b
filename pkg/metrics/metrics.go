package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records login attempts by result (success|failure|locked).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquaalert_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// AccountLockouts counts accounts locked after repeated failures.
	AccountLockouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aquaalert_account_lockouts_total",
			Help: "Total number of account lockouts",
		},
	)

	// AuthorizationDecisions counts access checks by required capability and outcome.
	AuthorizationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquaalert_authorization_decisions_total",
			Help: "Total number of access control decisions",
		},
		[]string{"capability", "decision"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aquaalert_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// DocumentWrites counts document store mutations by collection and operation.
	DocumentWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aquaalert_document_writes_total",
			Help: "Total number of document store writes",
		},
		[]string{"collection", "op"},
	)
)
