package command

import (
	"fmt"
	"strings"

	"github.com/funkygao/gocli"
	"github.com/mea-boop/kroll/ctx"
	"github.com/ryanuber/columnize"
)

type Clusters struct {
	Ui  cli.Ui
	Cmd string
}

func (this *Clusters) Run(args []string) (exitCode int) {
	lines := []string{"Cluster|Brokers|Service|Zk"}
	for _, name := range ctx.SortedClusters() {
		c := ctx.ClusterNamed(name)
		lines = append(lines, fmt.Sprintf("%s|%d|%s|%s",
			c.Name, len(c.Brokers), c.Service, c.ZkAddrs))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))

	return
}

func (*Clusters) Synopsis() string {
	return "List configured kafka clusters"
}

func (this *Clusters) Help() string {
	help := fmt.Sprintf(`
Usage: %s clusters

    %s

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
