package command

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/Shopify/sarama"
	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
)

type Ping struct {
	Ui  cli.Ui
	Cmd string

	cluster string
}

func (this *Ping) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("ping", flag.ContinueOnError)
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

	for _, b := range c.Brokers {
		addr := b.Addr(c.BrokerPort)
		if err := kafkaAlive(addr); err != nil {
			this.Ui.Error(fmt.Sprintf("%8d %21s %s", b.ID, addr, color.Red(err.Error())))
			exitCode = 1
		} else {
			this.Ui.Output(fmt.Sprintf("%8d %21s %s", b.ID, addr, color.Green("ok")))
		}
	}

	return
}

// kafkaAlive dials a broker and lists topics: kafka has no ping, so a
// metadata round-trip stands in for one.
func kafkaAlive(addr string) error {
	kfk, err := sarama.NewClient([]string{addr}, saramaConfig())
	if err != nil {
		return err
	}
	defer kfk.Close()

	_, err = kfk.Topics()
	return err
}

func saramaConfig() *sarama.Config {
	cf := sarama.NewConfig()
	cf.Net.DialTimeout = time.Second * 4
	cf.Net.ReadTimeout = time.Second * 4
	cf.Net.WriteTimeout = time.Second * 4
	cf.Metadata.Retry.Max = 2
	return cf
}

func (*Ping) Synopsis() string {
	return "Ping kafka protocol liveness of every broker in a cluster"
}

func (this *Ping) Help() string {
	help := fmt.Sprintf(`
Usage: %s ping -c cluster

    %s

`, this.Cmd, this.Synopsis())
	return strings.TrimSpace(help)
}
