package geocoder

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNominatimLookup(t *testing.T) {
	var gotQuery, gotAgent, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, `[{"lat":"50.4501","lon":"30.5234","display_name":"Київ"}]`)
	}))
	defer srv.Close()

	coords, err := NewNominatimBackend(srv.URL, time.Second).Lookup(context.Background(), "Київ, Україна", "dominium-test")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if coords == nil || coords.Latitude != 50.4501 || coords.Longitude != 30.5234 {
		t.Fatalf("Lookup = %+v; want (50.4501, 30.5234)", coords)
	}
	if gotQuery != "Київ, Україна" {
		t.Errorf("q = %q; want %q", gotQuery, "Київ, Україна")
	}
	if gotFormat != "jsonv2" {
		t.Errorf("format = %q; want jsonv2", gotFormat)
	}
	if gotAgent != "dominium-test" {
		t.Errorf("User-Agent = %q; want dominium-test", gotAgent)
	}
}

func TestNominatimLookupEmptyAndFailure(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"no match", http.StatusOK, `[]`, false},
		{"server error", http.StatusServiceUnavailable, `busy`, true},
		{"bad json", http.StatusOK, `{`, true},
		{"out of range", http.StatusOK, `[{"lat":"95","lon":"30"}]`, true},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			fmt.Fprint(w, tt.body)
		}))
		coords, err := NewNominatimBackend(srv.URL, time.Second).Lookup(context.Background(), "nowhere", "agent")
		srv.Close()

		if coords != nil {
			t.Errorf("%s: coords = %+v; want nil", tt.name, coords)
		}
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v; wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
