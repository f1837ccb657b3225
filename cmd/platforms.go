package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/retroprice/giantbomb"
	"github.com/google/subcommands"
)

// platformsCmd implements the "platforms" command.
type platformsCmd struct {
	sort   string
	filter string
	fields string
	limit  int
	json   bool
}

func (*platformsCmd) Name() string     { return "platforms" }
func (*platformsCmd) Synopsis() string { return "lists platforms from the Giant Bomb catalog" }
func (*platformsCmd) Usage() string {
	return `platforms [-sort <field:asc|desc>] [-filter <field:value,...>] [-fields <a,b,...>] [-limit <n>] [-json]

Lists the platforms of the Giant Bomb catalog, requesting pages as needed.

Requires the GIANTBOMB_API_KEY environment variable to be set or passed as a flag.
`
}

func (c *platformsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "", "Sort order, e.g. 'release_date:asc'.")
	f.StringVar(&c.filter, "filter", "", "Comma separated field:value criteria, e.g. 'name:Atari'.")
	f.StringVar(&c.fields, "fields", "", "Comma separated list of fields to retrieve. All by default.")
	f.IntVar(&c.limit, "limit", 0, "Stop after that many platforms. 0 lists them all.")
	f.BoolVar(&c.json, "json", false, "Print one JSON object per platform.")
}

// query builds the catalog query from the flags.
func (c *platformsCmd) query() (giantbomb.Query, error) {
	filter, err := giantbomb.ParseFilter(c.filter)
	if err != nil {
		return giantbomb.Query{}, err
	}
	q := giantbomb.Query{Sort: c.sort, Filter: filter}
	if c.fields != "" {
		for _, field := range strings.Split(c.fields, ",") {
			q.Fields = append(q.Fields, strings.TrimSpace(field))
		}
	}
	return q, nil
}

func (c *platformsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	client, err := giantBombClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	count := 0
	for item, err := range client.Platforms(q).All() {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not list platforms: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.json {
			if err := enc.Encode(item); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		} else {
			fmt.Println(describe(item))
		}
		count++
		if c.limit > 0 && count >= c.limit {
			break
		}
	}
	fmt.Fprintf(os.Stderr, "%d platforms listed.\n", count)
	return subcommands.ExitSuccess
}

// describe returns a one line description of a platform.
func describe(item giantbomb.Item) string {
	var b strings.Builder
	b.WriteString(item.String(giantbomb.FieldName))
	if abbr := item.String(giantbomb.FieldAbbreviation); abbr != "" {
		fmt.Fprintf(&b, " (%s)", abbr)
	}
	if year, ok := item.ReleaseYear(); ok {
		fmt.Fprintf(&b, ", released %d", year)
	}
	if price, ok := item.Float(giantbomb.FieldOriginalPrice); ok {
		fmt.Fprintf(&b, ", $%.2f", price)
	}
	return b.String()
}
