package command

import (
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/funkygao/golib/gofmt"
	"github.com/mea-boop/kroll/zk"
	"github.com/ryanuber/columnize"
)

type Discover struct {
	Ui  cli.Ui
	Cmd string

	cluster string
}

func (this *Discover) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("discover", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.cluster, "c", "", "")
	if err := cmdFlags.Parse(args); err != nil {
		return 1
	}

	if validateArgs(this, this.Ui).
		require("-c").
		invalid(args) {
		return 2
	}

	c := ensureClusterValid(this.Ui, this.cluster)
	if c == nil {
		return 1
	}

	zkcluster := zk.NewZkCluster(zk.DefaultConfig(c.ZkAddrs))
	defer zkcluster.Close()

	znodes, err := zkcluster.Brokers()
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	lines := []string{"Broker|Host|Uptime|Inventory"}
	for _, id := range sortedZnodeIds(znodes) {
		znode := znodes[id]
		member := color.Green("yes")
		if brokerId, e := strconv.Atoi(id); e != nil {
			member = color.Yellow("?")
		} else if _, present := c.Broker(brokerId); !present {
			member = color.Red("missing")
		}
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%s",
			id, znode.Addr(), gofmt.PrettySince(znode.Uptime()), member))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))

	// inventory entries zookeeper has never heard of
	for _, b := range c.Brokers {
		if _, present := znodes[strconv.Itoa(b.ID)]; !present {
			this.Ui.Warn(fmt.Sprintf("broker %d %s configured but not registered", b.ID, b.Host))
			exitCode = 1
		}
	}

	return
}

func sortedZnodeIds(znodes map[string]*zk.BrokerZnode) []string {
	ids := make([]string, 0, len(znodes))
	for id := range znodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}

func (*Discover) Synopsis() string {
	return "Compare live zookeeper broker registrations against the inventory"
}

func (this *Discover) Help() string {
	help := fmt.Sprintf(`
Usage: %s discover -c cluster

    %s

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
