package datastore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatabaseOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "datastore",
		Name:      "operations_total",
		Help:      "Total number of database operations by type, table and status",
	}, []string{"operation", "table", "status"})

	DatabaseOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bountyboard",
		Subsystem: "datastore",
		Name:      "operation_duration_seconds",
		Help:      "Database operation duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "table"})
)

// TrackDBOperation returns a func to be called with the operation's error once it finishes
func TrackDBOperation(operation, table string) func(error) {
	startTime := time.Now()
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		DatabaseOperationsTotal.WithLabelValues(operation, table, status).Inc()
		DatabaseOperationDuration.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())
	}
}
