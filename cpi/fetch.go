package cpi

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/etnz/retroprice"
)

// Fetch downloads and loads the series at url.
//
// If saveAs is not empty, the raw series is first written to that file, and loaded
// back from it, so that it can be reused with LoadFile. Otherwise it is parsed while
// streaming the response.
//
// Network and HTTP failures are reported as *retroprice.TransportError.
func Fetch(client *http.Client, url, saveAs string) (*Series, error) {
	body, err := retroprice.Get(client, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r := &transportReader{r: body, url: retroprice.Redact(url)}
	if saveAs == "" {
		return Load(r)
	}

	if err := save(saveAs, r); err != nil {
		return nil, err
	}
	return LoadFile(saveAs)
}

// save copies r into the file name.
func save(name string, r io.Reader) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("cannot save series: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot save series: %w", err)
	}
	return nil
}

// transportReader reports read errors from a response body as transport errors.
type transportReader struct {
	r   io.Reader
	url string
}

func (t *transportReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		err = &retroprice.TransportError{URL: t.url, Err: err}
	}
	return n, err
}
