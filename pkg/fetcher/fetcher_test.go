package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestHTTPFetcherReturnsBody(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><h1>Flat</h1></body></html>")
	}))
	defer srv.Close()

	body, err := NewHTTPFetcher("dominium-test", time.Second).Fetch(context.Background(), srv.URL+"/listing")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(string(body), "<h1>Flat</h1>") {
		t.Errorf("body = %q; want the page markup", body)
	}
	if agent != "dominium-test" {
		t.Errorf("User-Agent = %q; want dominium-test", agent)
	}
}

func TestHTTPFetcherReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewHTTPFetcher("dominium-test", time.Second)
	for i := 0; i < 2; i++ {
		_, err := f.Fetch(context.Background(), srv.URL+"/missing")
		var httpErr *HTTPError
		if !errors.As(err, &httpErr) {
			t.Fatalf("Fetch error = %v; want *HTTPError", err)
		}
		if httpErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d; want 404", httpErr.StatusCode)
		}
	}
}

func TestImageDownloader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/photo.png":
			w.Write(pngHeader)
		case "/page.html":
			fmt.Fprint(w, "<html></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d := NewImageDownloader("dominium-test", time.Second)

	data, err := d.Download(context.Background(), srv.URL+"/photo.png")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if len(data) != len(pngHeader) {
		t.Errorf("Download returned %d bytes; want %d", len(data), len(pngHeader))
	}

	for _, path := range []string{"/missing.jpg", "/page.html"} {
		if _, err := d.Download(context.Background(), srv.URL+path); err == nil {
			t.Errorf("Download(%s) returned nil error", path)
		}
	}
}
