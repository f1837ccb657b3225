package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/retroprice/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when the shell asks for completions (COMP_LINE is set).
	cmd.Completion(flag.CommandLine, cmd.Commands()).Complete(name)

	flag.Parse()
	cmd.SetupLogging()
	os.Exit(int(commander.Execute(context.Background())))
}
