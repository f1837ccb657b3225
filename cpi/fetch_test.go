package cpi

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/etnz/retroprice"
)

func fredServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fred2/data/CPIAUCSL.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := fredServer(t, fredSample)

	s, err := Fetch(srv.Client(), srv.URL+"/fred2/data/CPIAUCSL.txt", "")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if v, ok := s.Value(2010); !ok || v != 101.0 {
		t.Errorf("Value(2010) = %f, want 101.0", v)
	}
}

func TestFetch_SaveAs(t *testing.T) {
	srv := fredServer(t, fredSample)
	saveAs := filepath.Join(t.TempDir(), "CPIAUCSL.txt")

	s, err := Fetch(srv.Client(), srv.URL+"/fred2/data/CPIAUCSL.txt", saveAs)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if last, _ := s.LastYear(); last != 2011 {
		t.Errorf("LastYear() = %d, want 2011", last)
	}

	content, err := os.ReadFile(saveAs)
	if err != nil {
		t.Fatalf("saved file not found: %v", err)
	}
	if string(content) != fredSample {
		t.Errorf("saved file content differs from the served series")
	}

	// The saved copy can be reused offline.
	again, err := LoadFile(saveAs)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if again.Len() != s.Len() {
		t.Errorf("LoadFile().Len() = %d, want %d", again.Len(), s.Len())
	}
}

func TestFetch_TransportError(t *testing.T) {
	srv := fredServer(t, fredSample)

	_, err := Fetch(srv.Client(), srv.URL+"/missing.txt?api_key=secret", "")
	var terr *retroprice.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Fetch() error = %v, want a *TransportError", err)
	}
	if terr.StatusCode != http.StatusNotFound {
		t.Errorf("TransportError.StatusCode = %d, want 404", terr.StatusCode)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error %q leaks the query string", err)
	}

	// Nothing listens on a closed server.
	srv.Close()
	_, err = Fetch(srv.Client(), srv.URL+"/fred2/data/CPIAUCSL.txt", "")
	if !errors.As(err, &terr) {
		t.Fatalf("Fetch() error = %v, want a *TransportError", err)
	}
}

func TestFetch_ParseError(t *testing.T) {
	srv := fredServer(t, "DATE VALUE\n2010-01-01 .\n")

	_, err := Fetch(srv.Client(), srv.URL+"/fred2/data/CPIAUCSL.txt", "")
	var perr *retroprice.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Fetch() error = %v, want a *ParseError", err)
	}
	var terr *retroprice.TransportError
	if errors.As(err, &terr) {
		t.Errorf("a parse error must not be a TransportError")
	}
}

// stalledServer sends head, then keeps the response open until the test ends.
func stalledServer(t *testing.T, head string) *httptest.Server {
	t.Helper()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(head))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	return srv
}

func TestFetch_Streaming(t *testing.T) {
	// the body never ends: only a streaming parser can report the error.
	srv := stalledServer(t, "DATE VALUE\n2010-01-01 100\n2010-02-01 n/a\n")

	done := make(chan error, 1)
	go func() {
		_, err := Fetch(srv.Client(), srv.URL, "")
		done <- err
	}()
	select {
	case err := <-done:
		var perr *retroprice.ParseError
		if !errors.As(err, &perr) || perr.Line != 3 {
			t.Fatalf("Fetch() error = %v, want a ParseError on line 3", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Fetch() waited for the end of the body before parsing")
	}
}

func TestFetch_TruncatedBody(t *testing.T) {
	head := "DATE VALUE\n2010-01-01 100\n2010-02-01 101\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// announce more than is sent, the connection is cut after head.
		w.Header().Set("Content-Length", strconv.Itoa(len(head)+1000))
		w.Write([]byte(head))
		w.(http.Flusher).Flush()
	}))
	defer srv.Close()

	_, err := Fetch(srv.Client(), srv.URL+"/CPIAUCSL.txt?api_key=secret", "")
	var terr *retroprice.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Fetch() error = %v, want a *TransportError", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Fetch() error = %v, want to wrap io.ErrUnexpectedEOF", err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error %q leaks the query string", err)
	}
}

func TestFetch_FRED(t *testing.T) {
	// This is an integration test that hits the live FRED server.
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}
	s, err := Fetch(nil, FRED, "")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if first, _ := s.FirstYear(); first != 1947 {
		t.Errorf("FirstYear() = %d, want 1947", first)
	}
}
