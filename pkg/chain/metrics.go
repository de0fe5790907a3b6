package chain

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "chain",
		Name:      "calls_total",
		Help:      "Total contract calls and transactions by method and status",
	}, []string{"method", "status"})

	CallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bountyboard",
		Subsystem: "chain",
		Name:      "call_duration_seconds",
		Help:      "Contract call duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

func trackChainCall(method string) func(error) {
	startTime := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		CallsTotal.WithLabelValues(method, status).Inc()
		CallDuration.WithLabelValues(method).Observe(time.Since(startTime).Seconds())
	}
}
