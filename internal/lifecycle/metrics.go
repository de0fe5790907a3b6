package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "lifecycle",
		Name:      "request_transitions_total",
		Help:      "Request status transitions by target status and result",
	}, []string{"to", "result"})

	ReputationNotifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "lifecycle",
		Name:      "reputation_notify_total",
		Help:      "Reputation updates attempted after a request outcome, by notifier and outcome",
	}, []string{"notifier", "outcome"})
)
