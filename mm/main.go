// Command mm values and ranks money market instruments.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/moneymarket/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander, flag.CommandLine)

	// exits when invoked by the shell to complete a command line.
	cmd.Completion(flag.CommandLine).Complete(commander.Name())

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}
