package retroprice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// contains http utils to deal with remote services

// Redact returns the host/path of an address, dropping the query that may hold an api key.
func Redact(addr string) string {
	u, err := url.Parse(addr)
	if err != nil {
		return "<invalid url>"
	}
	return u.Host + u.Path
}

// Get performs an HTTP GET request and returns the response body as a stream.
//
// Any failure to obtain a 2xx response is reported as a *TransportError. The caller
// must close the returned body.
func Get(client *http.Client, addr string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(addr)
	if err != nil {
		// net/http wraps the error with the full url, including the query.
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return nil, &TransportError{URL: Redact(addr), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &TransportError{URL: Redact(addr), StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, nil
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into data.
func GetJSON(client *http.Client, addr string, data any) error {
	body, err := Get(client, addr)
	if err != nil {
		return err
	}
	defer body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return &TransportError{URL: Redact(addr), Err: fmt.Errorf("cannot read http body: %w", err)}
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return &SchemaError{URL: Redact(addr), Field: "$", Err: err}
	}
	return nil
}
