package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Probe results
const (
	ProbeOK     = "ok"
	ProbeFailed = "failed"
)

// Metrics
var (
	EndpointProbes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_rpc_endpoint_probes_total",
			Help: "Total number of RPC endpoint liveness probes",
		},
		[]string{"endpoint", "result"},
	)

	EndpointSelectionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_rpc_endpoint_selection_failures_total",
			Help: "Total number of selections where no RPC endpoint was reachable",
		},
	)

	Sends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_sends_total",
			Help: "Total number of send requests by outcome",
		},
		[]string{"outcome"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_rpc_call_duration_seconds",
			Help:    "Duration of JSON-RPC calls issued by wallet operations",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10, 15},
		},
		[]string{"method"},
	)
)
