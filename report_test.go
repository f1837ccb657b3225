package retroprice

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/etnz/retroprice/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func sampleReport() *Report {
	return &Report{
		Reference: 2013,
		Rows: []Row{
			{Name: "Atari 2600", Abbreviation: "2600", Released: date.New(1977, time.September, 11), Price: M(199.0, "USD"), Adjusted: M(766.5, "USD")},
			{Name: "Neo Geo | AES", Abbreviation: "NG", Released: date.New(1990, time.April, 26), Price: M(649.99, "USD"), Adjusted: M(1160.555, "USD")},
			{Name: "Wii", Abbreviation: "WII", Released: date.New(2006, time.November, 19), Price: M(249, "USD"), Adjusted: M(287.0, "USD")},
		},
	}
}

func TestReport_EncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().EncodeCSV(&buf); err != nil {
		t.Fatalf("EncodeCSV() failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("EncodeCSV() produced invalid csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want header + 3", len(records))
	}
	if strings.Join(records[0], ",") != "name,abbreviation,year,release_date,price,adjusted_price" {
		t.Errorf("header = %v", records[0])
	}
	want := []string{"Neo Geo | AES", "NG", "1990", "1990-04-26", "649.99", "1160.56"}
	if strings.Join(records[2], ";") != strings.Join(want, ";") {
		t.Errorf("row = %v, want %v", records[2], want)
	}
}

// tableRows parses md and returns the number of body rows of its tables.
func tableRows(t *testing.T, md string) (rows int) {
	t.Helper()
	src := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == east.KindTableRow {
			rows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestReport_Markdown(t *testing.T) {
	md := sampleReport().Markdown()

	if !strings.HasPrefix(md, "# Platform prices in 2013 money\n") {
		t.Errorf("Markdown() title:\n%s", md)
	}
	if got := tableRows(t, md); got != 3 {
		t.Errorf("Markdown() table has %d rows, want 3:\n%s", got, md)
	}
	for _, want := range []string{"$766.50", "$1,160.56", `Neo Geo \| AES`, "| 1977-09-11 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() does not contain %q:\n%s", want, md)
		}
	}
	// the largest adjusted price has the full bar.
	if !strings.Contains(md, strings.Repeat("█", barWidth)+" |") {
		t.Errorf("Markdown() has no full bar:\n%s", md)
	}
}

func TestReport_MarkdownEmpty(t *testing.T) {
	md := (&Report{Reference: 2013}).Markdown()
	if tableRows(t, md) != 0 || !strings.Contains(md, "No platform") {
		t.Errorf("Markdown() of an empty report:\n%s", md)
	}
}
