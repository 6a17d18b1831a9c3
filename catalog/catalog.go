package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/parnurzeal/gorequest"
	"github.com/samber/lo"
	"golang.org/x/xerrors"
)

const (
	defaultBaseURL = "https://endoflife.date/api"
	defaultTimeout = 30 * time.Second
	userAgent      = "eolscan/1.0"
)

type option func(*Client)

func WithBaseURL(v string) option {
	return func(c *Client) {
		c.baseURL = v
	}
}

func WithTimeout(d time.Duration) option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Client talks to the endoflife.date API. There is no retry: callers
// degrade transport failures to empty data for the affected lookup.
type Client struct {
	baseURL string
	timeout time.Duration
}

func NewClient(opts ...option) *Client {
	client := &Client{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Products fetches the full product list. The endpoint has served both a
// JSON array of product ids and an object keyed by id; both shapes are
// normalized into a Snapshot here so nothing downstream branches on the
// response shape again.
func (c *Client) Products() (*Snapshot, error) {
	productsURL := c.baseURL + "/all.json"
	log.Printf("Fetching product list from %s", productsURL)

	body, err := c.fetch(productsURL)
	if err != nil {
		return nil, xerrors.Errorf("unable to get product list: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err == nil {
		return NewSnapshot(ids), nil
	}

	var byID map[string]json.RawMessage
	if err := json.Unmarshal(body, &byID); err != nil {
		return nil, xerrors.Errorf("unable to parse product list: %w", err)
	}
	return NewSnapshot(lo.Keys(byID)), nil
}

// Cycles fetches the lifecycle records for a single product, in the
// database-provided order (typically newest first).
func (c *Client) Cycles(product string) ([]Cycle, error) {
	body, err := c.fetch(fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(product)))
	if err != nil {
		return nil, xerrors.Errorf("unable to get cycles for %s: %w", product, err)
	}

	var cycles []Cycle
	if err := json.Unmarshal(body, &cycles); err != nil {
		return nil, xerrors.Errorf("unable to parse cycles for %s: %w", product, err)
	}
	return cycles, nil
}

func (c *Client) fetch(fetchURL string) ([]byte, error) {
	resp, body, errs := gorequest.New().Get(fetchURL).
		Timeout(c.timeout).
		Set("User-Agent", userAgent).
		Type("text").
		EndBytes()
	if len(errs) > 0 {
		return nil, xerrors.Errorf("HTTP error. url: %s, err: %w", fetchURL, errs[0])
	}
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("HTTP error. status code: %d, url: %s", resp.StatusCode, fetchURL)
	}
	return body, nil
}
