package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OutboxDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bountyboard",
		Subsystem: "relay",
		Name:      "outbox_pending",
		Help:      "Reputation events waiting for delivery",
	})

	EventsRelayedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bountyboard",
		Subsystem: "relay",
		Name:      "events_total",
		Help:      "Outbox events processed by outcome",
	}, []string{"outcome"})
)
