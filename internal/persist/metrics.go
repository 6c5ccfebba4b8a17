package persist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "accounts",
			Subsystem: "persist",
			Name:      "ops_total",
			Help:      "Sink operations by kind and result",
		},
		[]string{"op", "result"},
	)
	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "accounts",
			Subsystem: "persist",
			Name:      "retries_total",
			Help:      "Sink operation retries after a failed attempt",
		},
		[]string{"op"},
	)
	failuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "accounts",
			Subsystem: "persist",
			Name:      "failures_total",
			Help:      "Sink operations that exhausted their retries",
		},
		[]string{"op"},
	)
	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "accounts",
			Subsystem: "persist",
			Name:      "queue_depth",
			Help:      "Operations waiting in the asynchronous sink queue",
		},
	)
)
