// Package cmd implements the CLI application to compare platform prices across years.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/retroprice/cpi"
	"github.com/etnz/retroprice/giantbomb"
	"github.com/google/subcommands"
)

// Environment variables read when the matching flag is not set.
const (
	EnvCPIURL       = "RETROPRICE_CPI_URL"
	EnvGiantBombURL = "RETROPRICE_GIANTBOMB_URL"
	EnvGiantBombKey = "GIANTBOMB_API_KEY"
)

// Commands returns the top level commands of the application.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&cpiCmd{},
		&platformsCmd{},
		&reportCmd{},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		group := "catalog"
		if cmd.Name() == "cpi" {
			group = "inflation"
		}
		c.Register(cmd, group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	cpiURL       = flag.String("cpi-url", "", "Address of the CPI series in FRED text format. Defaults to the "+EnvCPIURL+" environment variable, or "+cpi.FRED)
	giantBombURL = flag.String("giantbomb-url", "", "Giant Bomb API root. Defaults to the "+EnvGiantBombURL+" environment variable, or "+giantbomb.DefaultBaseURL)
	giantBombKey = flag.String("giantbomb-api-key", "", "Giant Bomb API key. This flag takes precedence over the "+EnvGiantBombKey+" environment variable. You can get one at https://www.giantbomb.com/api/")
	reliableYear = flag.Int("reliable-year", 0, "Latest year with complete CPI data, used as the default and maximum reference year. 0 means the last year in the series.")
	raw          = flag.Bool("raw", false, "Print markdown as is, instead of rendering it for the terminal.")
	Verbose      = flag.Bool("v", false, "Log progress and http requests to stderr.")
)

// SetupLogging sends the log output to stderr in verbose mode, and discards it otherwise.
func SetupLogging() {
	log.SetFlags(0)
	if *Verbose {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.Discard)
}

// firstOf returns the first non empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func cpiSource() string {
	return firstOf(*cpiURL, os.Getenv(EnvCPIURL), cpi.FRED)
}

// giantBombClient returns a client for the Giant Bomb API, or an error if no API key is available.
func giantBombClient() (*giantbomb.Client, error) {
	key := firstOf(*giantBombKey, os.Getenv(EnvGiantBombKey))
	if key == "" {
		return nil, fmt.Errorf("api key is not set: use -giantbomb-api-key flag or %s environment variable", EnvGiantBombKey)
	}
	c := giantbomb.NewClient(firstOf(*giantBombURL, os.Getenv(EnvGiantBombURL), giantbomb.DefaultBaseURL), key)
	c.HTTPClient = newHTTPClient()
	return c, nil
}

// loadSeries loads the CPI series from a local file if from is set, or from the remote
// source, optionally saving it as saveAs.
func loadSeries(from, saveAs string) (*cpi.Series, error) {
	var (
		s   *cpi.Series
		err error
	)
	if from != "" {
		log.Println("Loading CPI series from", from)
		s, err = cpi.LoadFile(from)
	} else {
		log.Println("Downloading CPI series from", cpiSource())
		s, err = cpi.Fetch(newHTTPClient(), cpiSource(), saveAs)
	}
	if err != nil {
		return nil, err
	}
	if first, ok := s.FirstYear(); ok {
		last, _ := s.LastYear()
		log.Printf("CPI series covers %d to %d", first, last)
	}
	if *reliableYear != 0 {
		s = s.WithReliableYear(*reliableYear)
	}
	return s, nil
}

// loggingTransport logs every round trip.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, err)
		return nil, err
	}
	// the query is not logged: it contains the api key.
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	return resp, nil
}

// newHTTPClient returns an http.Client that logs its requests.
func newHTTPClient() *http.Client {
	return &http.Client{Transport: &loggingTransport{base: http.DefaultTransport}}
}

// printMarkdown writes md to w, rendered for the terminal unless -raw is set.
func printMarkdown(w io.Writer, md string) error {
	if *raw {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
