package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/retroprice"
	"github.com/etnz/retroprice/cpi"
	"github.com/etnz/retroprice/giantbomb"
	"github.com/google/subcommands"
)

// reportCmd implements the "report" command.
type reportCmd struct {
	csvFile      string
	markdownFile string
	saveCPI      string
	fromCPI      string
	to           int
	limit        int
	currency     string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "adjusts platform launch prices for inflation" }
func (*reportCmd) Usage() string {
	return `report [-csv <file>] [-markdown <file>] [-to <year>] [-limit <n>]

Fetches the CPI series and the Giant Bomb platforms, and computes the launch price of
every platform in the money of the reference year.

Platforms without a launch price or a release date are skipped.

The result is printed as a chart, and written as CSV with the columns:
name, abbreviation, year, release_date, price, adjusted_price.

Requires the GIANTBOMB_API_KEY environment variable to be set or passed as a flag.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "adjusted_prices.csv", "Write the report as CSV to this file. Empty to skip.")
	f.StringVar(&c.markdownFile, "markdown", "", "Also write the report as markdown to this file.")
	f.StringVar(&c.saveCPI, "save-cpi", "", "Save the raw CPI series to this file.")
	f.StringVar(&c.fromCPI, "from-cpi", "", "Read the CPI series from this file instead of downloading it.")
	f.IntVar(&c.to, "to", 0, "Reference year. Defaults to the latest reliable year.")
	f.IntVar(&c.limit, "limit", 0, "Stop after that many platforms. 0 reads them all.")
	f.StringVar(&c.currency, "currency", "USD", "Currency of the catalog prices.")
}

// reportQuery selects the fields needed by the report.
var reportQuery = giantbomb.Query{
	Sort: "release_date:asc",
	Fields: []string{
		giantbomb.FieldName,
		giantbomb.FieldAbbreviation,
		giantbomb.FieldOriginalPrice,
		giantbomb.FieldReleaseDate,
	},
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := giantBombClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	series, err := loadSeries(c.fromCPI, c.saveCPI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load CPI series: %v\n", err)
		return subcommands.ExitFailure
	}

	report, skipped, err := buildReport(series, client.Platforms(reportQuery), c.to, c.limit, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not build report: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, s := range skipped {
		log.Printf("skipped %q: %s", s.Name, s.Reason)
	}

	md := report.Markdown()
	if err := printMarkdown(os.Stdout, md); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not render the report: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.markdownFile != "" {
		if err := os.WriteFile(c.markdownFile, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing markdown file %q: %v\n", c.markdownFile, err)
			return subcommands.ExitFailure
		}
	}
	if c.csvFile != "" {
		if err := writeCSV(c.csvFile, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV file %q: %v\n", c.csvFile, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Fprintf(os.Stderr, "%d platforms priced in %d money, %d skipped.\n", len(report.Rows), report.Reference, len(skipped))
	return subcommands.ExitSuccess
}

// buildReport prices the platforms of pager with series. It stops pulling platforms
// after limit of them when limit is positive.
func buildReport(series *cpi.Series, pager *giantbomb.Pager, reference, limit int, currency string) (*retroprice.Report, []retroprice.Skipped, error) {
	report := &retroprice.Report{Reference: series.Reference(reference)}
	var skipped []retroprice.Skipped

	n := 0
	for item, err := range pager.All() {
		if err != nil {
			return nil, nil, err
		}
		row, reason, err := priceRow(series, item, reference, currency)
		if err != nil {
			return nil, nil, err
		}
		if reason != "" {
			skipped = append(skipped, retroprice.Skipped{Name: item.String(giantbomb.FieldName), Reason: reason})
		} else {
			report.Rows = append(report.Rows, row)
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	return report, skipped, nil
}

// priceRow computes the report row of a platform, or the reason why it cannot be priced.
func priceRow(series *cpi.Series, item giantbomb.Item, reference int, currency string) (row retroprice.Row, reason string, err error) {
	price, ok := item.Float(giantbomb.FieldOriginalPrice)
	if !ok || price <= 0 {
		return row, "no launch price", nil
	}
	released, ok := item.ReleaseDate()
	if !ok {
		return row, "no release date", nil
	}
	adjusted, err := series.AdjustedPrice(price, released.Year(), reference)
	if err != nil {
		return row, "", err
	}
	return retroprice.Row{
		Name:         item.String(giantbomb.FieldName),
		Abbreviation: item.String(giantbomb.FieldAbbreviation),
		Released:     released,
		Price:        retroprice.M(price, currency),
		Adjusted:     retroprice.M(adjusted, currency),
	}, "", nil
}

// writeCSV writes the report as CSV to the file name.
func writeCSV(name string, report *retroprice.Report) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := report.EncodeCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
