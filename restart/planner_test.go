package restart

import (
	"testing"

	"github.com/funkygao/assert"
	"github.com/mea-boop/kroll/meta"
)

func brokerIDs(brokers []meta.Broker) []int {
	ids := make([]int, 0, len(brokers))
	for _, b := range brokers {
		ids = append(ids, b.ID)
	}
	return ids
}

func countsOf(counts map[int]int) func(meta.Broker) int {
	return func(b meta.Broker) int { return counts[b.ID] }
}

func inventory(ids ...int) []meta.Broker {
	brokers := make([]meta.Broker, 0, len(ids))
	for _, id := range ids {
		brokers = append(brokers, meta.Broker{ID: id, Host: "dummy"})
	}
	return brokers
}

func TestBuildOrderLeadersLast(t *testing.T) {
	// the end-to-end scenario: {A:0, B:3, C:0} -> [A, C, B]
	order := BuildOrder(inventory(1, 2, 3), countsOf(map[int]int{1: 0, 2: 3, 3: 0}))
	assert.Equal(t, []int{1, 3, 2}, brokerIDs(order))
}

func TestBuildOrderAllZero(t *testing.T) {
	order := BuildOrder(inventory(5, 3, 9), countsOf(map[int]int{}))
	assert.Equal(t, []int{5, 3, 9}, brokerIDs(order))
}

func TestBuildOrderDescendingCounts(t *testing.T) {
	counts := map[int]int{1: 2, 2: 9, 3: 0, 4: 5}
	order := BuildOrder(inventory(1, 2, 3, 4), countsOf(counts))
	assert.Equal(t, []int{3, 2, 4, 1}, brokerIDs(order))
}

func TestBuildOrderTiesKeepDiscoveryOrder(t *testing.T) {
	counts := map[int]int{1: 4, 2: 4, 3: 4}
	order := BuildOrder(inventory(1, 2, 3), countsOf(counts))
	assert.Equal(t, []int{1, 2, 3}, brokerIDs(order))
}

func TestBuildOrderIsBijective(t *testing.T) {
	brokers := inventory(7, 1, 4, 2, 9)
	counts := map[int]int{7: 1, 1: 0, 4: 3, 2: 0, 9: 3}

	order := BuildOrder(brokers, countsOf(counts))
	assert.Equal(t, len(brokers), len(order))
	seen := make(map[int]bool)
	for _, b := range order {
		assert.Equal(t, false, seen[b.ID])
		seen[b.ID] = true
	}
	for _, b := range brokers {
		assert.Equal(t, true, seen[b.ID])
	}

	// idempotent given identical inputs
	again := BuildOrder(brokers, countsOf(counts))
	assert.Equal(t, brokerIDs(order), brokerIDs(again))
}

func TestBuildOrderZeroBeforePositive(t *testing.T) {
	brokers := inventory(1, 2, 3, 4, 5, 6)
	counts := map[int]int{1: 9, 2: 0, 3: 1, 4: 0, 5: 2, 6: 0}

	order := BuildOrder(brokers, countsOf(counts))
	firstPositive := -1
	for i, b := range order {
		if counts[b.ID] > 0 && firstPositive == -1 {
			firstPositive = i
		}
		if counts[b.ID] == 0 && firstPositive != -1 {
			t.Fatalf("zero-count broker %d after positive-count at %d", b.ID, firstPositive)
		}
	}
	assert.Equal(t, []int{2, 4, 6, 1, 5, 3}, brokerIDs(order))
}
