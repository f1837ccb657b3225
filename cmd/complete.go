package cmd

import (
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// subcommander is implemented by commands that group other commands.
type subcommander interface {
	Subcommands() []subcommands.Command
}

// Completion returns the shell completion tree of the application: global flags from
// fs, and the commands with their own flags.
func Completion(fs *flag.FlagSet, cmds []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(fs),
	}
	for _, cmd := range cmds {
		root.Sub[cmd.Name()] = commandCompletion(cmd)
	}
	return root
}

// commandCompletion returns the completion tree of a single command.
func commandCompletion(cmd subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	c := &complete.Command{Flags: flagPredictors(fs)}
	if g, ok := cmd.(subcommander); ok {
		c.Sub = make(map[string]*complete.Command)
		for _, sub := range g.Subcommands() {
			c.Sub[sub.Name()] = commandCompletion(sub)
		}
	}
	return c
}

// flagPredictors predicts files for file flags, nothing for boolean flags, and
// something for the others.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case isBoolFlag(f):
			flags[f.Name] = predict.Nothing
		case isFileFlag(f):
			flags[f.Name] = predict.Files("*")
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// isFileFlag reports flags documented as reading or writing a file.
func isFileFlag(f *flag.Flag) bool {
	return strings.Contains(f.Usage, "file")
}
