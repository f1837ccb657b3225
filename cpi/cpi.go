// Package cpi loads a consumer price index series and adjusts prices for inflation.
//
// The series is read from the flat text format published by FRED:
//
//	Title:               Consumer Price Index for All Urban Consumers: All Items
//	...
//	DATE         VALUE
//	1947-01-01  21.480
//	1947-02-01  21.620
//
// Observations are averaged per year, so that the adjusted price of an amount only
// depends on the year it was spent in.
package cpi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/retroprice"
)

// FRED is the address of the CPIAUCSL series (all items, all urban consumers, monthly).
const FRED = "http://research.stlouisfed.org/fred2/data/CPIAUCSL.txt"

// headerMarker starts the line that precedes the observations.
const headerMarker = "DATE"

// Series holds one average index value per year.
//
// A Series is populated once and is read-only afterwards.
type Series struct {
	values   map[int]float64
	counts   map[int]int
	first    int
	last     int
	reliable int  // latest year with complete data, 0 means last.
	loaded   bool // at least one observation ingested.
	ingested bool // the single ingest pass happened.
}

// Load reads a series from r. See Series.Ingest for the format.
func Load(r io.Reader) (*Series, error) {
	s := new(Series)
	if err := s.Ingest(r); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads a series from a file previously saved with Fetch.
func LoadFile(name string) (*Series, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Ingest populates an empty series from r.
//
// Lines are skipped up to the header line (starting with "DATE"). Every following
// non blank line is a "<YYYY-MM-DD> <value>" observation, where only the leading year
// of the date is used. Observations must be in chronological order. A source without
// header is an empty series, not an error.
//
// Malformed observations are reported as *retroprice.ParseError. On error s is left
// untouched and can be ingested again.
func (s *Series) Ingest(r io.Reader) error {
	if s.ingested {
		return errors.New("series already loaded")
	}
	b := builder{values: make(map[int]float64), counts: make(map[int]int)}

	scanner := bufio.NewScanner(r)
	lineno := 0
	inData := false
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		content := strings.TrimSpace(line)
		if !inData {
			inData = strings.HasPrefix(content, headerMarker)
			continue
		}
		if content == "" {
			continue
		}

		y, v, err := parseObservation(content)
		if err == nil {
			err = b.add(y, v)
		}
		if err != nil {
			return &retroprice.ParseError{Line: lineno, Text: line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return &retroprice.ParseError{Line: lineno + 1, Err: fmt.Errorf("line longer than %d bytes: %w", bufio.MaxScanTokenSize, err)}
		}
		return fmt.Errorf("cannot read series: %w", err)
	}
	b.flush()

	s.values, s.counts = b.values, b.counts
	s.first, s.last, s.loaded = b.first, b.last, b.loaded
	s.ingested = true
	return nil
}

// builder accumulates observations into yearly averages.
type builder struct {
	values      map[int]float64
	counts      map[int]int
	first, last int
	loaded      bool

	// running buffer for the current year.
	sum float64
	n   int
}

// add appends an observation of year, which must not be before the previous one.
func (b *builder) add(year int, value float64) error {
	if !b.loaded {
		b.first, b.last, b.loaded = year, year, true
	}
	if year < b.last {
		return fmt.Errorf("year %d after year %d", year, b.last)
	}
	if year != b.last {
		b.flush()
		b.last = year
	}
	b.sum += value
	b.n++
	return nil
}

// flush stores the average of the buffered observations of the current year.
func (b *builder) flush() {
	if b.n == 0 {
		return
	}
	b.values[b.last] = b.sum / float64(b.n)
	b.counts[b.last] = b.n
	b.sum, b.n = 0, 0
}

// parseObservation parses a "<date> <value>" record. Only the leading year of the
// date is checked.
func parseObservation(content string) (year int, value float64, err error) {
	fields := strings.Fields(content)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 fields <date> <value>, got %d", len(fields))
	}
	year, err = parseYear(fields[0])
	if err != nil {
		return 0, 0, err
	}
	value, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value %q: %w", fields[1], err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, 0, fmt.Errorf("invalid value %q: index must be a positive number", fields[1])
	}
	return year, value, nil
}

// parseYear reads the 4 digit year that starts a "YYYY-..." date.
func parseYear(day string) (int, error) {
	y, rest, _ := strings.Cut(day, "-")
	if len(y) != 4 || rest == "" || strings.Trim(y, "0123456789") != "" {
		return 0, fmt.Errorf("invalid date %q: want YYYY-MM-DD", day)
	}
	return strconv.Atoi(y)
}

// WithReliableYear returns a view of s where year is the latest year whose data is
// known to be complete. It is the default, and the maximum, reference year of
// AdjustedPrice. The view shares the data of s.
func (s *Series) WithReliableYear(year int) *Series {
	v := *s
	v.reliable = year
	return &v
}

// FirstYear returns the earliest year with data. ok is false for an empty series.
func (s *Series) FirstYear() (year int, ok bool) { return s.first, s.loaded }

// LastYear returns the latest year with data. ok is false for an empty series.
func (s *Series) LastYear() (year int, ok bool) { return s.last, s.loaded }

// ReliableYear returns the default reference year: the one set with WithReliableYear,
// or the last year.
func (s *Series) ReliableYear() int {
	if s.reliable != 0 {
		return s.reliable
	}
	return s.last
}

// Len returns the number of years in the series.
func (s *Series) Len() int { return len(s.values) }

// Value returns the average index of year, without any clamping.
func (s *Series) Value(year int) (value float64, ok bool) {
	value, ok = s.values[year]
	return
}

// Observations returns the number of raw observations averaged for year.
func (s *Series) Observations(year int) int { return s.counts[year] }

// Years returns the years with data in ascending order.
func (s *Series) Years() []int { return slices.Sorted(maps.Keys(s.values)) }

// All iterates over years and their average index in ascending year order.
func (s *Series) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for _, y := range s.Years() {
			if !yield(y, s.values[y]) {
				return
			}
		}
	}
}

// AdjustedPrice converts amount spent in year into the money of the reference year.
//
// reference 0 means the reliable year (see WithReliableYear), and a later reference is
// replaced by it too. Years outside of the series are clamped to the first or last
// year: this is an approximation, not an error. Years missing inside the series use
// the closest earlier year.
//
// It fails with retroprice.ErrUninitialized on an empty series.
func (s *Series) AdjustedPrice(amount float64, year, reference int) (float64, error) {
	if !s.loaded {
		return 0, retroprice.ErrUninitialized
	}
	from, to := s.lookup(year), s.lookup(s.Reference(reference))
	return amount * (to / from), nil
}

// Reference returns the year AdjustedPrice actually uses for a requested reference.
func (s *Series) Reference(reference int) int {
	bound := s.ReliableYear()
	if reference == 0 || reference > bound {
		reference = bound
	}
	return min(max(reference, s.first), s.last)
}

// lookup returns the index for year clamped to [first, last].
func (s *Series) lookup(year int) float64 {
	year = min(max(year, s.first), s.last)
	for ; year > s.first; year-- {
		if v, ok := s.values[year]; ok {
			return v
		}
	}
	return s.values[s.first]
}
