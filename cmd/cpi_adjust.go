package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/retroprice"
	"github.com/google/subcommands"
)

// cpiAdjustCmd implements the "cpi adjust" command.
type cpiAdjustCmd struct {
	to       int
	from     string
	currency string
}

func (*cpiAdjustCmd) Name() string     { return "adjust" }
func (*cpiAdjustCmd) Synopsis() string { return "adjusts an amount for inflation" }
func (*cpiAdjustCmd) Usage() string {
	return `cpi adjust [-to <year>] <amount> <year>

Prints what <amount> spent in <year> is worth in the reference year.

The reference year defaults to the latest reliable year of the series (see
-reliable-year). Years outside of the series are clamped to its first or last year.
`
}

func (c *cpiAdjustCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.to, "to", 0, "Reference year. Defaults to the latest reliable year.")
	f.StringVar(&c.from, "from", "", "Read the series from this file instead of downloading it.")
	f.StringVar(&c.currency, "currency", "USD", "Currency used to format amounts.")
}

func (c *cpiAdjustCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: an amount and a year are required.")
		return subcommands.ExitUsageError
	}
	amount, err := strconv.ParseFloat(f.Arg(0), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	year, err := strconv.Atoi(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid year %q: %v\n", f.Arg(1), err)
		return subcommands.ExitUsageError
	}

	s, err := loadSeries(c.from, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load CPI series: %v\n", err)
		return subcommands.ExitFailure
	}
	adjusted, err := s.AdjustedPrice(amount, year, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not adjust price: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s in %d is worth %s in %d\n",
		retroprice.M(amount, c.currency), year,
		retroprice.M(adjusted, c.currency), s.Reference(c.to))
	return subcommands.ExitSuccess
}
