// Package metrics registers the Prometheus instruments the ingress handler and
// worker emit into, following the teacher's own habit of tagging a counter per
// significant event (p.metrics.CustomCounter("matchmaker_tickets", ...) and
// friends in evr_matchmaker.go).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every instrument this service emits into.
type Metrics struct {
	JoinRequestsTotal  *prometheus.CounterVec
	TickDuration       prometheus.Histogram
	MatchesOpenedTotal prometheus.Counter
	MatchesClosedTotal prometheus.Counter
	MatchesStartedTotal prometheus.Counter
}

// New registers every instrument against reg and returns the bundle.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JoinRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchmaker",
			Name:      "join_requests_total",
			Help:      "JoinQueue outcomes by result kind.",
		}, []string{"result"}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "matchmaker",
			Name:      "worker_tick_duration_seconds",
			Help:      "Duration of a single worker tick.",
			Buckets:   prometheus.DefBuckets,
		}),
		MatchesOpenedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchmaker",
			Name:      "matches_opened_total",
			Help:      "Matches built by the worker and persisted as Open.",
		}),
		MatchesClosedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchmaker",
			Name:      "matches_closed_total",
			Help:      "Matches promoted from Open to Closed.",
		}),
		MatchesStartedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchmaker",
			Name:      "matches_started_total",
			Help:      "Closed matches successfully handed to the session launcher.",
		}),
	}

	reg.MustRegister(
		m.JoinRequestsTotal,
		m.TickDuration,
		m.MatchesOpenedTotal,
		m.MatchesClosedTotal,
		m.MatchesStartedTotal,
	)

	return m
}
