package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	submittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "requests_submitted_total",
		Help:      "Total requests accepted by submit",
	})

	completedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "requests_completed_total",
		Help:      "Total requests that ran to completion",
	})

	failedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "requests_failed_total",
		Help:      "Total requests that failed",
	}, []string{"stage"})

	loadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "resource_loads_total",
		Help:      "Total resource load operations",
	})

	unloadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "resource_unloads_total",
		Help:      "Total resource unload operations",
	})

	evictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "resource_evictions_total",
		Help:      "Unloads triggered by idle eviction",
	})

	queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "queue_depth",
		Help:      "Requests currently waiting in the queue",
	})

	waitSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "agentd",
		Subsystem: "scheduler",
		Name:      "wait_seconds",
		Help:      "Queue wait time of completed requests in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		submittedTotal, completedTotal, failedTotal,
		loadsTotal, unloadsTotal, evictionsTotal,
		queueDepth, waitSeconds,
	)
}
