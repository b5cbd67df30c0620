package main

import (
	"os"

	"github.com/funkygao/gocli"
	"github.com/mea-boop/kroll/cmd/kroll/command"
)

var commands map[string]cli.CommandFactory

func init() {
	ui := &cli.ColoredUi{
		Ui: &cli.BasicUi{
			Writer:      os.Stdout,
			Reader:      os.Stdin,
			ErrorWriter: os.Stderr,
		},
		OutputColor: cli.UiColorNone,
		InfoColor:   cli.UiColorGreen,
		ErrorColor:  cli.UiColorRed,
		WarnColor:   cli.UiColorYellow,
	}
	cmd := os.Args[0]

	commands = map[string]cli.CommandFactory{
		"clusters": func() (cli.Command, error) {
			return &command.Clusters{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"brokers": func() (cli.Command, error) {
			return &command.Brokers{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"leaders": func() (cli.Command, error) {
			return &command.Leaders{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"plan": func() (cli.Command, error) {
			return &command.Plan{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"restart": func() (cli.Command, error) {
			return &command.Restart{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"status": func() (cli.Command, error) {
			return &command.Status{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"ping": func() (cli.Command, error) {
			return &command.Ping{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"discover": func() (cli.Command, error) {
			return &command.Discover{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"version": func() (cli.Command, error) {
			return &command.Version{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},
	}
}
