package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/funkygao/golib/gofmt"
	"github.com/ryanuber/columnize"
)

type Leaders struct {
	Ui  cli.Ui
	Cmd string

	cluster string
}

func (this *Leaders) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("leaders", flag.ContinueOnError)
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

	client := newMetaClient(c)
	snapshot := client.Snapshot(c.Brokers)
	if snapshot.ClusterID == "" {
		this.Ui.Error("cluster id unknown, metadata service unreachable?")
		return 1
	}
	this.Ui.Output(fmt.Sprintf("cluster id: %s", snapshot.ClusterID))

	total := int64(0)
	lines := []string{"Broker|Host|Leaders"}
	for _, b := range c.Brokers {
		n := snapshot.LeadershipOf(b)
		total += int64(n)
		count := fmt.Sprintf("%d", n)
		if n > 0 {
			count = color.Yellow("%d", n)
		}
		lines = append(lines, fmt.Sprintf("%d|%s|%s", b.ID, b.Host, count))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))
	this.Ui.Output(fmt.Sprintf("%s leader partitions in total", gofmt.Comma(total)))

	return
}

func (*Leaders) Synopsis() string {
	return "Show how many partitions each broker currently leads"
}

func (this *Leaders) Help() string {
	help := fmt.Sprintf(`
Usage: %s leaders -c cluster

    %s

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
