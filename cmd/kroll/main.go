package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/funkygao/gocli"
	"github.com/funkygao/log4go"
	"github.com/mea-boop/kroll"
	"github.com/mea-boop/kroll/ctx"
)

func main() {
	ctx.LoadFromHome()
	setupLogging()

	app := os.Args[0]
	args := os.Args[1:]
	for _, arg := range args {
		if arg == "-v" || arg == "--version" {
			newArgs := make([]string, len(args)+1)
			newArgs[0] = "version"
			copy(newArgs[1:], args)
			args = newArgs
			break
		}
	}

	c := cli.NewCLI(app, kroll.Version+"-"+kroll.BuildId)
	c.Args = args
	c.Commands = commands
	c.HelpFunc = cli.BasicHelpFunc(app)

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}

	os.Exit(exitCode)
}

func setupLogging() {
	log.SetOutput(ioutil.Discard)

	level := log4go.ToLogLevel(ctx.LogLevel(), log4go.INFO)
	log4go.SetLevel(level)
	log4go.AddFilter("stdout", level, log4go.NewConsoleLogWriter())
}
