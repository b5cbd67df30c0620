package command

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/funkygao/golib/signal"
	log "github.com/funkygao/log4go"
	"github.com/mea-boop/kroll/ctx"
	"github.com/mea-boop/kroll/meta"
	"github.com/mea-boop/kroll/restart"
	"github.com/mea-boop/kroll/service"
	"github.com/ryanuber/columnize"
)

type Restart struct {
	Ui  cli.Ui
	Cmd string

	cluster  string
	from     string
	logfile  string
	recheck  bool
	kafka    bool
	yes      bool
	dryRun   bool
	timeout  time.Duration
	cooldown time.Duration
}

func (this *Restart) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("restart", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.cluster, "c", "", "")
	cmdFlags.StringVar(&this.from, "from", "static", "")
	cmdFlags.StringVar(&this.logfile, "logfile", "stdout", "")
	cmdFlags.BoolVar(&this.recheck, "recheck", false, "")
	cmdFlags.BoolVar(&this.kafka, "kafka", false, "")
	cmdFlags.BoolVar(&this.yes, "y", false, "")
	cmdFlags.BoolVar(&this.dryRun, "dryrun", false, "")
	cmdFlags.DurationVar(&this.timeout, "timeout", 0, "")
	cmdFlags.DurationVar(&this.cooldown, "cooldown", 0, "")
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

	this.setupLog()

	brokers, err := loadInventory(c, this.from)
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}
	if len(brokers) == 0 {
		this.Ui.Error(fmt.Sprintf("cluster %s has no brokers", this.cluster))
		return 1
	}

	client := newMetaClient(c)
	snapshot := client.Snapshot(brokers)
	order := restart.BuildOrder(brokers, snapshot.LeadershipOf)
	this.printPlan(snapshot, order)

	if this.dryRun {
		return
	}
	if !this.yes {
		yes, _ := this.Ui.Ask(fmt.Sprintf("Rolling restart %d brokers of %s? [Y/N]",
			len(order), this.cluster))
		if yes != "Y" {
			this.Ui.Output("bye")
			return
		}
	}

	cfg := restartConfig(c)
	if this.timeout > 0 {
		cfg.RestartTimeout = this.timeout
	}
	if this.cooldown > 0 {
		cfg.CoolDown = this.cooldown
	}

	executor := restart.NewExecutor(cfg, service.NewSystemdController(c.Service, c.SSHUser))
	if this.recheck {
		executor.ReplanAt = leaderGroupStart(order, snapshot)
		executor.Replan = func(remaining []meta.Broker) []meta.Broker {
			fresh := client.Snapshot(remaining)
			return restart.BuildOrder(remaining, fresh.LeadershipOf)
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	signal.RegisterSignalsHandler(func(sig os.Signal) {
		log.Warn("got signal %s, aborting at next transition", sig)
		cancel()
	}, syscall.SIGINT, syscall.SIGTERM)

	report := executor.Run(runCtx, order)
	this.printReport(c, report)

	if !report.AllSucceeded() {
		return 1
	}
	return
}

func (this *Restart) setupLog() {
	if this.logfile != "stdout" {
		log.DeleteFilter("stdout")

		filer := log.NewFileLogWriter(this.logfile, true, false, 0)
		filer.SetFormat("[%d %T] [%L] (%S) %M")
		filer.SetRotateSize(0)
		filer.SetRotateLines(0)
		filer.SetRotateDaily(true)
		log.AddFilter("file", log.DEBUG, filer)
	}
}

func (this *Restart) printPlan(snapshot *meta.LeadershipSnapshot, order []meta.Broker) {
	if snapshot.ClusterID == "" {
		this.Ui.Warn("cluster id unknown, every broker planned as non-leader")
	} else {
		this.Ui.Output(fmt.Sprintf("cluster id: %s", snapshot.ClusterID))
	}

	lines := []string{"Seq|Broker|Host|Rack|Leaders"}
	for i, b := range order {
		lines = append(lines, fmt.Sprintf("%d|%d|%s|%s|%d",
			i+1, b.ID, b.Host, b.Rack, snapshot.LeadershipOf(b)))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))
}

func (this *Restart) printReport(c *ctx.Cluster, report *restart.RunReport) {
	lines := []string{"Broker|Host|Outcome|Elapsed"}
	for _, res := range report.Results {
		lines = append(lines, fmt.Sprintf("%d|%s|%s|%s",
			res.Broker.ID, res.Broker.Host, colorOutcome(res), res.Elapsed))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))

	if report.Aborted {
		this.Ui.Error(fmt.Sprintf("run aborted: %s", report.AbortReason))
		return
	}

	this.Ui.Output("")
	lines = []string{"Broker|Host|Unit|Ports"}
	for _, v := range report.Verification {
		ports := make([]string, 0, len(v.Ports))
		for _, p := range v.Ports {
			if p.Open {
				ports = append(ports, color.Green("%d", p.Port))
			} else {
				ports = append(ports, color.Red("%d!", p.Port))
			}
		}
		unit := colorState(v.Status)
		if v.StatusErr != nil {
			unit = color.Red("%v", v.StatusErr)
		}
		lines = append(lines, fmt.Sprintf("%d|%s|%s|%s",
			v.Broker.ID, v.Broker.Host, unit, strings.Join(ports, " ")))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))

	if this.kafka {
		this.Ui.Output("")
		this.kafkaPing(c, report)
	}

	this.Ui.Info("all brokers restarted")
}

// kafkaPing is the optional deep check: after the ports are back, make
// sure each broker actually speaks kafka.
func (this *Restart) kafkaPing(c *ctx.Cluster, report *restart.RunReport) {
	for _, v := range report.Verification {
		if err := kafkaAlive(v.Broker.Addr(c.BrokerPort)); err != nil {
			this.Ui.Warn(fmt.Sprintf("%21s kafka %s", v.Broker.Addr(c.BrokerPort), err))
		} else {
			this.Ui.Output(fmt.Sprintf("%21s kafka %s", v.Broker.Addr(c.BrokerPort),
				color.Green("ok")))
		}
	}
}

// leaderGroupStart finds the plan index where the leader-holding group
// begins, i.e. where a pre-leader re-check is worth doing.
func leaderGroupStart(order []meta.Broker, snapshot *meta.LeadershipSnapshot) int {
	for i, b := range order {
		if snapshot.LeadershipOf(b) > 0 {
			return i
		}
	}
	return -1
}

func (*Restart) Synopsis() string {
	return "Rolling restart a kafka cluster, leaders last"
}

func (this *Restart) Help() string {
	help := fmt.Sprintf(`
Usage: %s restart -c cluster [options]

    %s

    Brokers holding no partition leaderships restart first, then the
    leader holders in descending leadership order, one broker at a time.
    The first failed health check aborts the whole run.

Options:

    -from static|zk
      Broker inventory source. Defaults to the static config inventory.

    -recheck
      Re-query leadership right before the leader group restarts and
      reorder the remaining brokers by the fresh counts.

    -kafka
      After the run, verify each broker answers kafka protocol requests.

    -timeout duration
      Override the configured per-port restart timeout.

    -cooldown duration
      Override the configured inter-broker cool-down.

    -logfile path
      Log to a rotating file instead of stdout.

    -dryrun
      Print the plan and exit.

    -y
      Skip the confirmation prompt.

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
