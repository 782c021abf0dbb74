// Package fetch retrieves product listing pages and extracts the raw price
// text and title from their HTML. Fetch failures are soft: the result always
// comes back as a raw listing, with the failure recorded on it, so one dead
// page never aborts a batch.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricelens/pkg/domain"
)

// DefaultUserAgent is sent when no user agent is configured. Storefronts
// routinely reject requests with an empty or default Go user agent.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// priceSelectors is evaluated in order; the first selector with a non-empty
// text match wins. The early entries target the major storefronts, the late
// ones are generic fallbacks.
var priceSelectors = []string{
	".a-price .a-offscreen",
	"#priceblock_ourprice",
	"[itemprop=price]",
	"meta[property='product:price:amount']",
	"[data-testid=price]",
	".price",
	"[class*=price]",
}

// Fetcher turns one listing page into a raw listing record.
type Fetcher interface {
	// Listing fetches the page and extracts its raw price text and title.
	Listing(ctx context.Context, product, pageURL string) domain.RawListing
}

// PageFetcher is a Fetcher backed by plain HTTP GET and CSS selector
// extraction. It is safe for concurrent use.
type PageFetcher struct {
	httpClient *http.Client
	userAgent  string
}

// New constructs a PageFetcher using the provided http.Client. An empty
// userAgent falls back to DefaultUserAgent.
func New(httpClient *http.Client, userAgent string) *PageFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &PageFetcher{httpClient: httpClient, userAgent: userAgent}
}

// Listing fetches pageURL and extracts the first price-looking text node and
// the page title. Any failure is recorded on the returned listing instead of
// being returned as an error.
func (f *PageFetcher) Listing(ctx context.Context, product, pageURL string) domain.RawListing {
	listing := domain.RawListing{Product: product, Website: pageURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		listing.Error = fmt.Sprintf("could not create request: %v", err)

		return listing
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		listing.Error = fmt.Sprintf("could not fetch page: %v", err)

		return listing
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		listing.Error = fmt.Sprintf("unexpected status: %s", resp.Status)

		return listing
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		listing.Error = fmt.Sprintf("could not parse page: %v", err)

		return listing
	}

	listing.Title = pageTitle(doc)

	price, ok := priceText(doc)
	if !ok {
		listing.Error = "no price element found"

		return listing
	}

	listing.RawPrice = price
	listing.Success = true

	return listing
}

func priceText(doc *goquery.Document) (string, bool) {
	for _, sel := range priceSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}

		text := strings.TrimSpace(node.Text())
		if text == "" {
			// Meta tags carry the price in the content attribute.
			text = strings.TrimSpace(node.AttrOr("content", ""))
		}
		if text != "" {
			return text, true
		}
	}

	return "", false
}

func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t
		}
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Ensure PageFetcher conforms to the Fetcher interface at compile time.
var _ Fetcher = (*PageFetcher)(nil)
