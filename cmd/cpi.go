package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

// cpiCmd is the top-level command for CPI-related operations.
type cpiCmd struct{}

func (*cpiCmd) Name() string     { return "cpi" }
func (*cpiCmd) Synopsis() string { return "consumer price index commands" }
func (*cpiCmd) Usage() string {
	return `cpi <subcommand> <options>

Consumer price index (CPI) commands: inspect the series and adjust prices for inflation.
`
}
func (c *cpiCmd) SetFlags(f *flag.FlagSet) {}

// Subcommands returns the commands nested under cpi.
func (c *cpiCmd) Subcommands() []subcommands.Command {
	return []subcommands.Command{&cpiFetchCmd{}, &cpiAdjustCmd{}}
}

func (c *cpiCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "cpi")
	for _, sub := range c.Subcommands() {
		commander.Register(sub, "")
	}
	return commander.Execute(ctx, args...)
}
