package monitor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics covers the engine's hot paths: connection churn, room count, mark
// throughput and broadcast fan-out.
type Metrics struct {
	Connections       prometheus.Gauge
	ActiveRooms       prometheus.Gauge
	MarksReceived     prometheus.Counter
	Broadcasts        prometheus.Counter
	BroadcastFailures prometheus.Counter
}

var registerOnce sync.Once

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Number of live websocket connections",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms with at least one connection",
		}),
		MarksReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marks_total",
			Help:      "Total number of mark events received",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Total number of leaderboard broadcasts",
		}),
		BroadcastFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcast_failures_total",
			Help:      "Total number of per-connection delivery failures",
		}),
	}

	// the default registry is process-global; register only the first set so
	// repeated server construction in tests does not panic
	registerOnce.Do(func() {
		prometheus.MustRegister(
			m.Connections,
			m.ActiveRooms,
			m.MarksReceived,
			m.Broadcasts,
			m.BroadcastFailures,
		)
	})

	return m
}
