package command

import (
	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/mea-boop/kroll/ctx"
	"github.com/mea-boop/kroll/meta"
	"github.com/mea-boop/kroll/restart"
	"github.com/mea-boop/kroll/service"
)

type argsRule struct {
	cmd        cli.Command
	ui         cli.Ui
	requires   []string
	conditions map[string][]string
}

func validateArgs(cmd cli.Command, ui cli.Ui) *argsRule {
	return &argsRule{
		cmd:        cmd,
		ui:         ui,
		requires:   make([]string, 0),
		conditions: make(map[string][]string),
	}
}

func (this *argsRule) require(option ...string) *argsRule {
	this.requires = append(this.requires, option...)
	return this
}

func (this *argsRule) on(whenOption string, requiredOption ...string) *argsRule {
	if _, present := this.conditions[whenOption]; !present {
		this.conditions[whenOption] = make([]string, 0)
	}
	this.conditions[whenOption] = append(this.conditions[whenOption],
		requiredOption...)
	return this
}

func (this *argsRule) invalid(args []string) bool {
	argSet := make(map[string]struct{}, len(args))
	for _, arg := range args {
		argSet[arg] = struct{}{}
	}

	// required
	for _, req := range this.requires {
		if _, present := argSet[req]; !present {
			this.ui.Error(color.Red("%s required", req))
			this.ui.Output(this.cmd.Help())
			return true
		}
	}

	// conditions
	for when, requires := range this.conditions {
		if _, present := argSet[when]; present {
			for _, req := range requires {
				if _, found := argSet[req]; !found {
					this.ui.Error(color.Red("%s required when %s present",
						req, when))
					this.ui.Output(this.cmd.Help())
					return true
				}
			}
		}
	}

	return false
}

func swallow(err error) {
	if err != nil {
		panic(err)
	}
}

func ensureClusterValid(ui cli.Ui, cluster string) *ctx.Cluster {
	c, present := ctx.LookupCluster(cluster)
	if !present {
		ui.Error(color.Red("unknown cluster %s, run 'kroll clusters' first", cluster))
		return nil
	}
	return c
}

func newMetaClient(c *ctx.Cluster) *meta.Client {
	client, err := meta.NewClient(c.MetadataScheme, c.MetadataPort,
		ctx.MetadataTimeout(), c.CACert)
	swallow(err)
	return client
}

func restartConfig(c *ctx.Cluster) restart.Config {
	return restart.Config{
		BrokerPort:     c.BrokerPort,
		TokenPort:      c.TokenPort,
		MetadataPort:   c.MetadataPort,
		MetricsPort:    c.MetricsPort,
		MetricsEnabled: c.MetricsEnabled,
		RestartTimeout: ctx.RestartTimeout(),
		CoolDown:       ctx.CoolDown(),
		ProbeInterval:  ctx.ProbeInterval(),
	}
}

func colorState(st service.Status) string {
	if st.Healthy() {
		return color.Green("%s", st)
	}
	return color.Red("%s", st)
}

func colorOutcome(res restart.BrokerResult) string {
	switch res.Outcome {
	case restart.Succeeded:
		return color.Green("%s", res.Outcome)
	case restart.Failed:
		return color.Red("%s(%s)", res.Outcome, res.Failure)
	default:
		return color.Yellow("%s", res.Outcome)
	}
}
