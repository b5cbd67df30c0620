// Package restart plans and executes leadership-aware rolling restarts
// of a kafka broker cluster.
package restart

import (
	"sort"

	"github.com/mea-boop/kroll/meta"
)

// BuildOrder computes the restart order for a run.
//
// Brokers leading no partitions go first, in discovery order: restarting
// them never triggers a leader failover on themselves, so the bulk of the
// churn happens while leadership is stable. Brokers holding leaderships
// go last, sorted by descending leadership count with ties in discovery
// order; their controlled shutdowns fire the cluster's re-elections only
// after everything else has settled.
//
// Pure function: no I/O, deterministic, emits exactly the input set.
func BuildOrder(brokers []meta.Broker, leadershipOf func(meta.Broker) int) []meta.Broker {
	type ranked struct {
		broker meta.Broker
		count  int
	}

	order := make([]meta.Broker, 0, len(brokers))
	leaders := make([]ranked, 0, len(brokers))
	for _, b := range brokers {
		if n := leadershipOf(b); n > 0 {
			leaders = append(leaders, ranked{b, n})
		} else {
			order = append(order, b)
		}
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].count > leaders[j].count
	})
	for _, l := range leaders {
		order = append(order, l.broker)
	}
	return order
}
