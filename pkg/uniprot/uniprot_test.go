package uniprot_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andrew-torda/seqident/pkg/uniprot"
)

// fakeServer answers like the real search interface, but only knows
// two proteins.
func fakeServer() *httptest.Server {
	known := map[string]string{
		"TP53": "MEEPQSDPSV",
		"MYC":  "MPLNVSFTNR",
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		for name, seq := range known {
			if len(q) >= len(name) && q[:len(name)] == name {
				fmt.Fprintf(w, `{"results":[{"sequence":{"value":"%s"}}]}`, seq)
				return
			}
		}
		fmt.Fprint(w, `{"results":[]}`)
	}))
}

func newTestClient(srv *httptest.Server) *uniprot.Client {
	c := uniprot.New()
	c.BaseURL = srv.URL
	c.Delay = 0
	return c
}

func TestFetch(t *testing.T) {
	srv := fakeServer()
	defer srv.Close()
	c := newTestClient(srv)

	seq, err := c.Fetch(context.Background(), "TP53")
	if err != nil {
		t.Fatal(err)
	}
	if seq != "MEEPQSDPSV" {
		t.Fatal("wrong sequence for TP53:", seq)
	}
	if _, err = c.Fetch(context.Background(), "NOSUCHPROT"); !errors.Is(err, uniprot.ErrNotFound) {
		t.Fatal("expected ErrNotFound, got", err)
	}
}

func TestFetchMap(t *testing.T) {
	srv := fakeServer()
	defer srv.Close()
	c := newTestClient(srv)

	ncalls := 0
	m, err := c.FetchMap(context.Background(),
		[]string{"TP53", "NOSUCHPROT", "MYC"}, func() { ncalls++ })
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 2 { // the miss leaves a hole, not an error
		t.Fatal("expected 2 entries, got", len(m))
	}
	if s, ok := m.Seq("MYC"); !ok || s != "MPLNVSFTNR" {
		t.Fatal("MYC lookup broken:", s, ok)
	}
	if _, ok := m.Seq("NOSUCHPROT"); ok {
		t.Fatal("a miss should not be in the map")
	}
	if ncalls != 3 {
		t.Fatal("progress should run once per name, ran", ncalls)
	}
}

func TestFetchMapCancelled(t *testing.T) {
	srv := fakeServer()
	defer srv.Close()
	c := newTestClient(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchMap(ctx, []string{"TP53"}, nil); err == nil {
		t.Fatal("expected the context error back")
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone fishing", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := newTestClient(srv)
	if _, err := c.Fetch(context.Background(), "TP53"); err == nil {
		t.Fatal("expected an error from a 500 answer")
	}
}
