package command

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mea-boop/kroll/ctx"
	"github.com/mea-boop/kroll/meta"
	"github.com/mea-boop/kroll/zk"
)

// loadInventory resolves the broker set a run operates on. "static" is
// the configured inventory; "zk" asks the cluster's ZooKeeper ensemble
// who is actually registered, keeping rack labels from the static
// inventory when ids match.
func loadInventory(c *ctx.Cluster, from string) ([]meta.Broker, error) {
	switch from {
	case "", "static":
		return c.Brokers, nil

	case "zk":
		zkcluster := zk.NewZkCluster(zk.DefaultConfig(c.ZkAddrs))
		defer zkcluster.Close()

		znodes, err := zkcluster.Brokers()
		if err != nil {
			return nil, err
		}

		ids := make([]int, 0, len(znodes))
		for brokerId := range znodes {
			if id, e := strconv.Atoi(brokerId); e == nil {
				ids = append(ids, id)
			}
		}
		sort.Ints(ids)

		brokers := make([]meta.Broker, 0, len(ids))
		for _, id := range ids {
			b := meta.Broker{ID: id, Host: znodes[strconv.Itoa(id)].Host}
			if static, present := c.Broker(id); present {
				b.Rack = static.Rack
			}
			brokers = append(brokers, b)
		}
		return brokers, nil

	default:
		return nil, fmt.Errorf("unknown inventory source %q", from)
	}
}
