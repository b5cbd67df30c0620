package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/mea-boop/kroll/ctx"
	"github.com/mea-boop/kroll/probe"
	"github.com/ryanuber/columnize"
)

type Brokers struct {
	Ui  cli.Ui
	Cmd string

	cluster string
}

func (this *Brokers) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("brokers", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.cluster, "c", "", "")
	if err := cmdFlags.Parse(args); err != nil {
		return 1
	}

	if this.cluster != "" {
		c := ensureClusterValid(this.Ui, this.cluster)
		if c == nil {
			return 1
		}
		this.displayClusterBrokers(c)
		return
	}

	for _, name := range ctx.SortedClusters() {
		this.Ui.Output(name)
		this.displayClusterBrokers(ctx.ClusterNamed(name))
	}

	return
}

func (this *Brokers) displayClusterBrokers(c *ctx.Cluster) {
	if len(c.Brokers) == 0 {
		this.Ui.Output(fmt.Sprintf("    %s %s", c.Name, color.Red("empty brokers")))
		return
	}

	lines := []string{"Broker|Host|Rack|Primary|State"}
	for _, b := range c.Brokers {
		state := color.Red("closed")
		if probe.IsOpen(b.Host, c.BrokerPort, ctx.ProbeInterval()) {
			state = color.Green("open")
		}
		lines = append(lines, fmt.Sprintf("%d|%s|%s|%d|%s",
			b.ID, b.Host, b.Rack, c.BrokerPort, state))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))
}

func (*Brokers) Synopsis() string {
	return "Print broker inventory with live primary port state"
}

func (this *Brokers) Help() string {
	help := fmt.Sprintf(`
Usage: %s brokers [-c cluster]

    %s

    Without -c, all configured clusters are listed.

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
