package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StreamEvents counts event-stream messages by event type
	StreamEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_stream_events_total",
			Help: "Total number of event-stream messages received",
		},
		[]string{"event_type"},
	)

	// StreamReconnects counts event-stream reconnection attempts
	StreamReconnects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dao_indexer_stream_reconnects_total",
			Help: "Total number of event-stream reconnection attempts",
		},
	)

	// StreamConnected is 1 while the event stream is connected
	StreamConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dao_indexer_stream_connected",
			Help: "Whether the event stream is currently connected",
		},
	)

	// PollJobs counts finished poll jobs by terminal state
	PollJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_poll_jobs_total",
			Help: "Total number of deploy poll jobs by terminal state",
		},
		[]string{"state"},
	)

	// ActivePollJobs tracks poll jobs that have not reached a terminal state
	ActivePollJobs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dao_indexer_active_poll_jobs",
			Help: "Number of deploy poll jobs currently polling",
		},
	)

	// FactsExtracted counts domain facts produced by the extractor
	FactsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_facts_extracted_total",
			Help: "Total number of facts extracted by kind and source",
		},
		[]string{"kind", "source"},
	)

	// FactsPersisted counts store writes by kind and result (inserted, duplicate, error)
	FactsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_facts_persisted_total",
			Help: "Total number of fact insert attempts by kind and result",
		},
		[]string{"kind", "result"},
	)

	// RPCRequests counts node JSON-RPC requests by method and outcome
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_rpc_requests_total",
			Help: "Total number of node RPC requests",
		},
		[]string{"method", "outcome"},
	)

	// RPCDuration tracks node JSON-RPC latency
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dao_indexer_rpc_duration_seconds",
			Help:    "Node RPC request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Submissions counts submitted deploys by operation, mode and status
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_submissions_total",
			Help: "Total number of deploy submissions",
		},
		[]string{"operation", "mode", "status"},
	)

	// CooldownRejections counts requests rejected by the submission cooldown
	CooldownRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_cooldown_rejections_total",
			Help: "Total number of submissions rejected by the cooldown",
		},
		[]string{"operation"},
	)

	// ReconcileRuns counts named-key reconciliation sweeps by outcome
	ReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_reconcile_runs_total",
			Help: "Total number of named-key reconciliation runs",
		},
		[]string{"outcome"},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dao_indexer_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
