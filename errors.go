package retroprice

import (
	"errors"
	"fmt"
)

// ErrUninitialized is returned when a series is queried before any data was loaded.
var ErrUninitialized = errors.New("no data loaded")

// TransportError reports a failure to reach a remote resource: the request could not
// be sent, the response was not a success, or the remote API reported an error.
type TransportError struct {
	URL        string // host/path only, query parameters may contain credentials.
	StatusCode int    // 0 when no response was received.
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("cannot http GET %s: %s: %v", e.URL, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("cannot http GET %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("cannot http GET %s: %s", e.URL, e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a malformed record in a line oriented source.
type ParseError struct {
	Line int    // 1-based line number.
	Text string // raw line content.
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a response lacking an expected field, or carrying it with an
// unexpected type.
type SchemaError struct {
	URL   string
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("invalid field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid field %q in response from %s: %v", e.Field, e.URL, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
