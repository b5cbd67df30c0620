package zk

import (
	"testing"
	"time"

	"github.com/funkygao/assert"
)

func TestNewZkClusterChroot(t *testing.T) {
	c := NewZkCluster(DefaultConfig("h1:2181,h2:2181/kafka-trade"))
	assert.Equal(t, "/kafka-trade", c.chroot)
	assert.Equal(t, []string{"h1:2181", "h2:2181"}, c.ZkAddrList())
	assert.Equal(t, "/kafka-trade/brokers/ids", c.brokerIdsRoot())

	c = NewZkCluster(DefaultConfig("h1:2181"))
	assert.Equal(t, "", c.chroot)
	assert.Equal(t, "/brokers/ids", c.brokerIdsRoot())
}

func TestBrokerZnodeFrom(t *testing.T) {
	b := newBrokerZnode("3")
	err := b.from([]byte(`{
		"jmx_port": 9999,
		"timestamp": "1389652800000",
		"endpoints": ["PLAINTEXT://k10101a:9092"],
		"host": "k10101a",
		"port": 9092,
		"version": 4
	}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, "3", b.Id)
	assert.Equal(t, "k10101a:9092", b.Addr())
	assert.Equal(t, 9999, b.JmxPort)
	assert.Equal(t, time.Unix(1389652800, 0), b.Uptime())

	err = b.from([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error on malformed znode")
	}
}
