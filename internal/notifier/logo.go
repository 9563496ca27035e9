package notifier

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// CompanyDomains maps tickers to the company's home page domain.
var CompanyDomains = map[string]string{
	"AAPL":  "apple.com",
	"TSLA":  "tesla.com",
	"MSFT":  "microsoft.com",
	"NVDA":  "nvidia.com",
	"GOOGL": "abc.xyz",
	"GOOG":  "abc.xyz",
	"AMZN":  "amazon.com",
	"META":  "meta.com",
	"NFLX":  "netflix.com",
	"AMD":   "amd.com",
	"INTC":  "intel.com",
}

// iconSelectors are tried in order; the first match wins.
var iconSelectors = []struct {
	query string
	attr  string
}{
	{`link[rel~="apple-touch-icon"]`, "href"},
	{`link[rel~="icon"]`, "href"},
	{`meta[property="og:image"]`, "content"},
}

// LogoResolver finds a company icon by scraping the company's home page.
type LogoResolver struct {
	Client  *resty.Client
	Domains map[string]string
	HomeURL func(domain string) string
}

// NewLogoResolver creates a resolver over CompanyDomains.
func NewLogoResolver(proxyURL string) *LogoResolver {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &LogoResolver{
		Client:  client,
		Domains: CompanyDomains,
		HomeURL: func(domain string) string { return "https://" + domain + "/" },
	}
}

// Lookup returns an absolute icon URL for symbol. Any failure yields ("", false).
func (l *LogoResolver) Lookup(ctx context.Context, symbol string) (string, bool) {
	domain, ok := l.Domains[strings.ToUpper(symbol)]
	if !ok {
		return "", false
	}
	page := l.HomeURL(domain)
	resp, err := l.Client.R().SetContext(ctx).Get(page)
	if err != nil || resp.StatusCode() != http.StatusOK {
		return "", false
	}
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		page = resp.RawResponse.Request.URL.String() // after redirects
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", false
	}
	base, err := url.Parse(page)
	if err != nil {
		return "", false
	}
	for _, sel := range iconSelectors {
		href, ok := doc.Find(sel.query).First().Attr(sel.attr)
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			continue
		}
		return abs.String(), true
	}
	log.Printf("[INFO] no icon found for %s on %s", symbol, domain)
	return "", false
}
