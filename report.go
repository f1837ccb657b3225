package retroprice

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/retroprice/date"
)

// Row is one catalog item priced at launch and in the reference year.
type Row struct {
	Name         string
	Abbreviation string
	Released     date.Date
	Price        Money // launch price
	Adjusted     Money // launch price in reference year money
}

// Report is the adjusted price table for a set of catalog items.
type Report struct {
	Reference int // reference year the prices are adjusted to
	Rows      []Row
}

// Skipped records an item left out of a report and why.
type Skipped struct {
	Name   string
	Reason string
}

var csvHeader = []string{"name", "abbreviation", "year", "release_date", "price", "adjusted_price"}

// EncodeCSV writes the report rows as CSV with a header line.
func (r *Report) EncodeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range r.Rows {
		rec := []string{
			row.Name,
			row.Abbreviation,
			strconv.Itoa(row.Released.Year()),
			row.Released.String(),
			row.Price.Amount(),
			row.Adjusted.Amount(),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("cannot write row %q: %w", row.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// barWidth is the number of characters of the longest bar in the markdown chart.
const barWidth = 30

// Markdown renders the report as a markdown document: a table with a text bar chart
// of the adjusted prices.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Platform prices in %d money\n\n", r.Reference)
	if len(r.Rows) == 0 {
		b.WriteString("No platform with a known launch price.\n")
		return b.String()
	}

	var highest Money
	for _, row := range r.Rows {
		if highest.LessThan(row.Adjusted) {
			highest = row.Adjusted
		}
	}

	b.WriteString("| Platform | Released | Launch price | Adjusted price | |\n")
	b.WriteString("|:---|---:|---:|---:|:---|\n")
	for _, row := range r.Rows {
		bar := 0
		if highest.IsPositive() {
			bar = int(row.Adjusted.Ratio(highest).InexactFloat64()*barWidth + 0.5)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			escapeCell(row.Name), row.Released, row.Price, row.Adjusted, strings.Repeat("█", bar))
	}
	return b.String()
}

// escapeCell makes s safe to use inside a markdown table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
