package zk

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// BrokerZnode is the registration a live broker keeps under
// /brokers/ids.
type BrokerZnode struct {
	Id        string `json:"-"`
	JmxPort   int    `json:"jmx_port"`
	Timestamp string `json:"timestamp"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Version   int    `json:"version"`

	Endpoints []string `json:"endpoints"`
}

func newBrokerZnode(id string) *BrokerZnode {
	return &BrokerZnode{Id: id}
}

func (b *BrokerZnode) from(zkData []byte) error {
	return json.Unmarshal(zkData, b)
}

func (b BrokerZnode) Addr() string {
	return fmt.Sprintf("%s:%d", b.Host, b.Port)
}

func (b BrokerZnode) Uptime() time.Time {
	return timestampToTime(b.Timestamp)
}

func (b BrokerZnode) String() string {
	return fmt.Sprintf("%s ver:%d uptime:%s",
		b.Addr(), b.Version, time.Since(b.Uptime()))
}

func timestampToTime(ts string) time.Time {
	sec, _ := strconv.ParseInt(ts, 10, 64)
	if sec > 143761237100 {
		sec /= 1000
	}

	return time.Unix(sec, 0)
}
