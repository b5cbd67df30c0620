package command

import (
	"fmt"

	"github.com/funkygao/gocli"
	"github.com/mea-boop/kroll"
)

type Version struct {
	Ui  cli.Ui
	Cmd string
}

func (this *Version) Run(args []string) (exitCode int) {
	this.Ui.Output(fmt.Sprintf("%s-%s built at %s",
		kroll.Version, kroll.BuildId, kroll.BuiltAt))
	return
}

func (*Version) Synopsis() string {
	return "Print version information"
}

func (this *Version) Help() string {
	return "Usage: " + this.Cmd + " version"
}
