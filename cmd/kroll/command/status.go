package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/mea-boop/kroll/service"
	"github.com/ryanuber/columnize"
)

type Status struct {
	Ui  cli.Ui
	Cmd string

	cluster string
}

func (this *Status) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("status", flag.ContinueOnError)
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

	controller := service.NewSystemdController(c.Service, c.SSHUser)
	lines := []string{"Broker|Host|Unit|State"}
	healthy := true
	for _, b := range c.Brokers {
		st, err := controller.Status(b.Host)
		state := colorState(st)
		if err != nil {
			state = color.Red("%v", err)
		}
		if err != nil || !st.Healthy() {
			healthy = false
		}
		lines = append(lines, fmt.Sprintf("%d|%s|%s|%s", b.ID, b.Host, c.Service, state))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))

	if !healthy {
		return 1
	}
	return
}

func (*Status) Synopsis() string {
	return "Print each broker's systemd unit state"
}

func (this *Status) Help() string {
	help := fmt.Sprintf(`
Usage: %s status -c cluster

    %s

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
