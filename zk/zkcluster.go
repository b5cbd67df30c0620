// Package zk reads a kafka cluster's live registrations out of its
// ZooKeeper ensemble.
package zk

import (
	"path"
	"strings"
	"sync"

	log "github.com/funkygao/log4go"
	"github.com/samuel/go-zookeeper/zk"
)

// ZkCluster is one kafka cluster rooted at a chroot path inside a
// ZooKeeper ensemble.
type ZkCluster struct {
	conf   *Config
	chroot string

	mu   sync.Mutex
	conn *zk.Conn
	evt  <-chan zk.Event
}

func NewZkCluster(config *Config) *ZkCluster {
	c := &ZkCluster{conf: config}
	if slash := strings.IndexByte(config.ZkAddrs, '/'); slash != -1 {
		c.chroot = config.ZkAddrs[slash:]
		c.conf = &Config{
			ZkAddrs: config.ZkAddrs[:slash],
			Timeout: config.Timeout,
		}
	}
	return c
}

func (this *ZkCluster) ZkAddrList() []string {
	return strings.Split(this.conf.ZkAddrs, ",")
}

func (this *ZkCluster) Close() {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.conn != nil {
		this.conn.Close()
		this.conn = nil
	}
}

func (this *ZkCluster) connectIfNeccessary() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if this.conn != nil {
		return nil
	}

	log.Debug("zk connecting %s", this.conf.ZkAddrs)
	conn, evt, err := zk.Connect(this.ZkAddrList(), this.conf.Timeout)
	if err != nil {
		return err
	}
	this.conn, this.evt = conn, evt
	return nil
}

func (this *ZkCluster) brokerIdsRoot() string {
	return path.Join(this.chroot, "/brokers/ids")
}

// Brokers returns the currently registered brokers keyed by broker id.
func (this *ZkCluster) Brokers() (map[string]*BrokerZnode, error) {
	if err := this.connectIfNeccessary(); err != nil {
		return nil, err
	}

	children, _, err := this.conn.Children(this.brokerIdsRoot())
	if err != nil {
		return nil, err
	}

	r := make(map[string]*BrokerZnode, len(children))
	for _, brokerId := range children {
		data, _, err := this.conn.Get(path.Join(this.brokerIdsRoot(), brokerId))
		if err != nil {
			log.Warn("zk broker %s: %v", brokerId, err)
			continue
		}

		broker := newBrokerZnode(brokerId)
		if err := broker.from(data); err != nil {
			log.Warn("zk broker %s: %v", brokerId, err)
			continue
		}
		r[brokerId] = broker
	}

	return r, nil
}
