// 21 Mar 2025

// Package uniprot asks the uniprotkb rest interface for the
// sequence belonging to a protein name. We only want reviewed human
// entries and we only want the sequence field. The server is shared
// by the rest of the world, so there is a delay between requests.
package uniprot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	DfltBaseURL = "https://rest.uniprot.org/uniprotkb/search"
	DfltDelay   = 200 * time.Millisecond
)

// ErrNotFound says the server answered, but had no reviewed human
// entry for the name.
var ErrNotFound = errors.New("no reviewed human entry")

// Client fetches sequences. The zero value is not useful. Use New
// and change fields before the first request if you must.
type Client struct {
	BaseURL string
	Delay   time.Duration // pause between requests in FetchMap
	hc      *http.Client
}

// New gives a client with the public server and the polite delay.
func New() *Client {
	return &Client{
		BaseURL: DfltBaseURL,
		Delay:   DfltDelay,
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
}

// The slice of the server's json answer we care about.
type searchReply struct {
	Results []struct {
		Sequence struct {
			Value string `json:"value"`
		} `json:"sequence"`
	} `json:"results"`
}

// Fetch returns the sequence for one protein name, or ErrNotFound.
// The first result is taken, which is normally the canonical entry.
func (c *Client) Fetch(ctx context.Context, name string) (string, error) {
	v := url.Values{}
	v.Set("query", fmt.Sprintf("%s AND (taxonomy_id:9606) AND (reviewed:true)", name))
	v.Set("fields", "sequence")
	v.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+v.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("asking for %s: got %s", name, resp.Status)
	}

	var reply searchReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("parsing answer for %s: %w", name, err)
	}
	if len(reply.Results) == 0 || reply.Results[0].Sequence.Value == "" {
		return "", ErrNotFound
	}
	return reply.Results[0].Sequence.Value, nil
}

// Map is the name to sequence table built before the main pass over
// the pairs. Names that could not be resolved are simply absent.
type Map map[string]string

// Seq lets a Map act as a sequence provider.
func (m Map) Seq(name string) (string, bool) {
	s, ok := m[name]
	return s, ok
}

// FetchMap fetches each distinct name once and builds the lookup
// table. Misses and per-name server trouble leave a hole in the map
// and the fetching goes on. Only a dead context stops it. progress
// may be nil, otherwise it is called once per name.
func (c *Client) FetchMap(ctx context.Context, names []string, progress func()) (Map, error) {
	m := make(Map, len(names))
	var tick *time.Ticker
	if c.Delay > 0 {
		tick = time.NewTicker(c.Delay)
		defer tick.Stop()
	}
	for i, name := range names {
		if i > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return m, ctx.Err()
			case <-tick.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return m, err
		}
		seq, err := c.Fetch(ctx, name)
		switch {
		case err == nil:
			m[name] = seq
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return m, err
		}
		if progress != nil {
			progress()
		}
	}
	return m, nil
}
