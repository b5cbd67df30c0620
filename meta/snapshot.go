package meta

import (
	"sync"

	log "github.com/funkygao/log4go"
)

// LeadershipSnapshot captures the cluster id and per-broker leader
// partition counts observed at a single point in time.
//
// It is computed once before a restart run begins and goes stale the
// moment any broker restarts, so it only ever feeds the initial plan.
type LeadershipSnapshot struct {
	ClusterID string
	counts    map[int]int
}

func (s *LeadershipSnapshot) LeadershipOf(b Broker) int {
	return s.counts[b.ID]
}

// Snapshot discovers the cluster id and queries every broker's leadership
// concurrently. Brokers whose queries fail are recorded as leading 0
// partitions.
func (this *Client) Snapshot(brokers []Broker) *LeadershipSnapshot {
	snapshot := &LeadershipSnapshot{
		counts: make(map[int]int, len(brokers)),
	}

	for _, b := range brokers {
		if id := this.DiscoverClusterID(b); id != "" {
			snapshot.ClusterID = id
			break
		}
	}
	if snapshot.ClusterID == "" {
		log.Warn("cluster id unknown, all brokers treated as non-leaders")
		return snapshot
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, b := range brokers {
		wg.Add(1)
		go func(b Broker) {
			defer wg.Done()

			n := this.CountLeaderPartitions(b, snapshot.ClusterID)
			mu.Lock()
			snapshot.counts[b.ID] = n
			mu.Unlock()
		}(b)
	}
	wg.Wait()

	return snapshot
}
