/*
Package observability wires engine lifecycle hooks into Prometheus
collectors.

It exposes counters for journey steps and queries, so a serving deployment
can watch how agents move through the comb without the engine knowing
anything about metrics.
*/
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	steps   *prometheus.CounterVec
	queries prometheus.Counter
	matches prometheus.Histogram
}

// NewMetrics builds the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer to publish on the global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hive_journey_steps_total",
			Help: "Journey steps recorded, by action.",
		}, []string{"action"}),
		queries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hive_queries_total",
			Help: "Intent queries served.",
		}),
		matches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hive_query_matches",
			Help:    "Matches returned per query.",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
	}
	reg.MustRegister(m.steps, m.queries, m.matches)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors. Combine with other
// hook sets via MergeHooks before handing them to the engine.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			m.steps.WithLabelValues(string(ev.Action)).Inc()
		},
		OnQuery: func(_ context.Context, ev *domain.QueryEvent) {
			m.queries.Inc()
			m.matches.Observe(float64(ev.Matches))
		},
	}
}

// MergeHooks fans every event out to each provided hook set, in order.
func MergeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, ev *domain.StepEvent) {
			for _, s := range sets {
				if s.OnStep != nil {
					s.OnStep(ctx, ev)
				}
			}
		},
		OnQuery: func(ctx context.Context, ev *domain.QueryEvent) {
			for _, s := range sets {
				if s.OnQuery != nil {
					s.OnQuery(ctx, ev)
				}
			}
		},
	}
}
