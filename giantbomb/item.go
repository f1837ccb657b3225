package giantbomb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/retroprice"
	"github.com/etnz/retroprice/date"
)

// Item is a catalog entry as returned by the API. Fields are not validated, except for
// the price fields that are converted to float64.
type Item map[string]any

// Known fields of a platform.
const (
	FieldName          = "name"
	FieldAbbreviation  = "abbreviation"
	FieldOriginalPrice = "original_price"
	FieldReleaseDate   = "release_date"
)

// priceFields are sent as text by the API, e.g. "299.0000".
var priceFields = []string{FieldOriginalPrice}

// normalize converts the price fields of it to float64 in place. Absent, null and
// empty values are left untouched.
func normalize(it Item) error {
	for _, field := range priceFields {
		s, ok := it[field].(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &retroprice.SchemaError{Field: field, Err: fmt.Errorf("not a number: %q", s)}
		}
		it[field] = v
	}
	return nil
}

// String returns the field as a string, "" if absent or not a string.
func (it Item) String(field string) string {
	s, _ := it[field].(string)
	return s
}

// Float returns the field as a float64. ok is false if absent or not a number.
func (it Item) Float(field string) (v float64, ok bool) {
	v, ok = it[field].(float64)
	return
}

// ReleaseDate returns the day of the item's release date ("1977-09-11 00:00:00").
func (it Item) ReleaseDate() (day date.Date, ok bool) {
	s, _, _ := strings.Cut(it.String(FieldReleaseDate), " ")
	day, err := date.Parse(s)
	if err != nil {
		return date.Date{}, false
	}
	return day, true
}

// ReleaseYear returns the year of the item's release date.
func (it Item) ReleaseYear() (year int, ok bool) {
	day, ok := it.ReleaseDate()
	return day.Year(), ok
}
