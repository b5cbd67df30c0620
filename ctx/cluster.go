package ctx

import (
	"fmt"
	"strconv"

	jsconf "github.com/funkygao/jsconf"
	"github.com/mea-boop/kroll/meta"
)

// Cluster is one managed kafka cluster: its static broker inventory,
// listener ports and collaborator endpoints.
type Cluster struct {
	Name    string
	ZkAddrs string // ensemble addrs, chroot suffix allowed
	Service string // systemd unit of the broker process
	SSHUser string

	MetadataScheme string
	CACert         string // trust anchor for the metadata endpoint

	BrokerPort     int // primary listener
	TokenPort      int // token/AD secondary listener
	MetadataPort   int
	MetricsPort    int
	MetricsEnabled bool

	Brokers []meta.Broker
}

func (this *Cluster) loadConfig(section *jsconf.Conf) {
	this.Name = section.String("name", "")
	if this.Name == "" {
		panic("empty cluster name not allowed")
	}
	this.ZkAddrs = section.String("zk", "")
	this.Service = section.String("service", "confluent-server")
	this.SSHUser = section.String("ssh_user", "")
	this.MetadataScheme = section.String("metadata_scheme", "https")
	this.CACert = section.String("ca_cert", "")
	this.BrokerPort = mustInt(section.String("broker_port", "9092"))
	this.TokenPort = mustInt(section.String("token_port", "9093"))
	this.MetadataPort = mustInt(section.String("metadata_port", "8090"))
	this.MetricsPort = mustInt(section.String("metrics_port", "7771"))
	this.MetricsEnabled = section.String("metrics_enabled", "false") == "true"

	for i := 0; i < len(section.List("brokers", nil)); i++ {
		bs, err := section.Section(fmt.Sprintf("brokers[%d]", i))
		if err != nil {
			panic(err)
		}

		b := meta.Broker{
			ID:   mustInt(bs.String("id", "-1")),
			Host: bs.String("host", ""),
			Rack: bs.String("rack", ""),
		}
		if b.ID < 0 || b.Host == "" {
			panic(fmt.Sprintf("cluster %s broker[%d] needs id and host", this.Name, i))
		}
		this.Brokers = append(this.Brokers, b)
	}
}

func mustInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (this *Cluster) Broker(id int) (meta.Broker, bool) {
	for _, b := range this.Brokers {
		if b.ID == id {
			return b, true
		}
	}
	return meta.Broker{}, false
}
