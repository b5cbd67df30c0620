package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/gofmt"
	"github.com/mea-boop/kroll/restart"
	"github.com/ryanuber/columnize"
)

type Plan struct {
	Ui  cli.Ui
	Cmd string

	cluster string
	from    string
}

func (this *Plan) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("plan", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.cluster, "c", "", "")
	cmdFlags.StringVar(&this.from, "from", "static", "")
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

	brokers, err := loadInventory(c, this.from)
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	client := newMetaClient(c)
	snapshot := client.Snapshot(brokers)
	order := restart.BuildOrder(brokers, snapshot.LeadershipOf)

	if snapshot.ClusterID == "" {
		this.Ui.Warn("cluster id unknown, every broker planned as non-leader")
	} else {
		this.Ui.Output(fmt.Sprintf("cluster id: %s", snapshot.ClusterID))
	}

	totalLeaders := int64(0)
	lines := []string{"Seq|Broker|Host|Rack|Leaders"}
	for i, b := range order {
		n := snapshot.LeadershipOf(b)
		totalLeaders += int64(n)
		lines = append(lines, fmt.Sprintf("%d|%d|%s|%s|%d", i+1, b.ID, b.Host, b.Rack, n))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))
	this.Ui.Output(fmt.Sprintf("%s leader partitions across %d brokers",
		gofmt.Comma(totalLeaders), len(order)))

	return
}

func (*Plan) Synopsis() string {
	return "Show the restart order a rolling restart would use"
}

func (this *Plan) Help() string {
	help := fmt.Sprintf(`
Usage: %s plan -c cluster [options]

    %s

Options:

    -from static|zk
      Broker inventory source.

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
