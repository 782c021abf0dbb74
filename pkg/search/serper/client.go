// Package serper provides a search.Client implementation backed by the
// Serper Google Search API.
package serper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"pricelens/pkg/search"
	"pricelens/pkg/serrors"
)

// DefaultBaseURL is the Serper search endpoint.
const DefaultBaseURL = "https://google.serper.dev/search"

// priceTokenRE lifts a dollar price token out of a result snippet.
var priceTokenRE = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// Options tunes a Serper query.
type Options struct {
	BaseURL    string   // BaseURL overrides DefaultBaseURL, mainly for tests.
	MaxResults int      // MaxResults caps the number of organic results requested.
	Country    string   // Country is the two-letter "gl" localization parameter.
	Stores     []string // Stores is the e-commerce domain allowlist for hits.
}

// Client talks to the Serper REST API and fulfills the search.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to Serper.
	apiKey     string       // apiKey is the Serper API key.
	opts       Options
}

// Listings queries Serper for shopping results on the named product and
// returns the organic hits on recognized e-commerce domains, in provider
// order. An empty result set is not an error.
func (c *Client) Listings(ctx context.Context, product string) ([]search.Hit, error) {
	// https://serper.dev/playground
	type searchReq struct {
		Q   string `json:"q"`
		Num int    `json:"num"`
		GL  string `json:"gl,omitempty"`
	}
	bodyBytes, err := json.Marshal(searchReq{
		Q:   product + " price buy shop",
		Num: c.opts.MaxResults,
		GL:  c.opts.Country,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.opts.BaseURL,
		strings.NewReader(string(bodyBytes)))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, serrors.With(serrors.ErrUnauthorized, "rejected API key: %s", strings.TrimSpace(string(b)))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search failed: %s", strings.TrimSpace(string(b)))
	}

	var searchResp struct {
		Organic []struct {
			Title    string `json:"title"`
			Link     string `json:"link"`
			Snippet  string `json:"snippet"`
			Position int    `json:"position"`
		} `json:"organic"`
	}
	if err := json.Unmarshal(b, &searchResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	hits := make([]search.Hit, 0, len(searchResp.Organic))
	for _, r := range searchResp.Organic {
		host, store := search.StoreDomain(r.Link, c.opts.Stores)
		if host == "" {
			continue
		}
		// Unlisted domains still count when the snippet talks shopping.
		if !store && !search.MentionsShopping(r.Snippet) {
			continue
		}
		hits = append(hits, search.Hit{
			Title:          r.Title,
			URL:            r.Link,
			Snippet:        r.Snippet,
			Domain:         host,
			Position:       r.Position,
			PriceMentioned: priceTokenRE.FindString(r.Snippet),
		})
	}

	return hits, nil
}

// Ensure Client conforms to the search.Client interface at compile time.
var _ search.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client and API key to
// interact with the Serper API. Zero-valued options fall back to sensible
// defaults.
func New(httpClient *http.Client, apiKey string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	if len(opts.Stores) == 0 {
		opts.Stores = search.DefaultStoreDomains()
	}

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		opts:       opts,
	}
}
