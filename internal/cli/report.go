package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/storeqa/storefront-suite/internal/config"
	"github.com/storeqa/storefront-suite/internal/fixture"
	"github.com/storeqa/storefront-suite/internal/pages"
	"github.com/storeqa/storefront-suite/internal/productinfo"
)

// ProductQuery names the product a report is about and the search that finds it
type ProductQuery struct {
	SearchTerm  string
	ProductName string
}

// BrowseProduct logs in through a real browser, searches, opens the product
// and returns its information map
func BrowseProduct(cfg config.SuiteConfig, q ProductQuery) (productinfo.Info, error) {
	browser, err := fixture.Launch(cfg)
	if err != nil {
		return productinfo.Info{}, err
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
	}()

	page, closePage, err := browser.OpenPage()
	if err != nil {
		return productinfo.Info{}, err
	}
	defer closePage()

	return browseProduct(page, cfg, q)
}

func browseProduct(page pages.Page, cfg config.SuiteConfig, q ProductQuery) (productinfo.Info, error) {
	home, err := pages.LoginAs(page, cfg.BaseURL, cfg.Username, cfg.Password, cfg.Timeout)
	if err != nil {
		return productinfo.Info{}, fmt.Errorf("login as %s failed: %w", cfg.Username, err)
	}
	results, err := home.Search(q.SearchTerm)
	if err != nil {
		return productinfo.Info{}, fmt.Errorf("search %q failed: %w", q.SearchTerm, err)
	}
	count, err := results.ResultCount()
	if err != nil {
		return productinfo.Info{}, err
	}
	log.Printf("Search %q returned %d products", q.SearchTerm, count)

	details, err := results.SelectProduct(q.ProductName)
	if err != nil {
		return productinfo.Info{}, fmt.Errorf("failed to open %q: %w", q.ProductName, err)
	}
	return details.ProductInformation()
}

// ScrapeProduct finds the product through the storefront search page and
// parses its page without a browser
func ScrapeProduct(ctx context.Context, client *http.Client, baseURL string, q ProductQuery) (productinfo.Info, error) {
	if client == nil {
		client = http.DefaultClient
	}

	searchURL := baseURL + "?" + url.Values{"route": {"product/search"}, "search": {q.SearchTerm}}.Encode()
	doc, err := fetchDocument(ctx, client, searchURL)
	if err != nil {
		return productinfo.Info{}, err
	}

	href, ok := "", false
	doc.Find(".product-thumb .caption a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) == q.ProductName {
			href, ok = s.Attr("href")
			return !ok
		}
		return true
	})
	if !ok {
		return productinfo.Info{}, fmt.Errorf("no search result named %q for %q", q.ProductName, q.SearchTerm)
	}

	productURL, err := resolve(searchURL, href)
	if err != nil {
		return productinfo.Info{}, err
	}
	body, err := fetch(ctx, client, productURL)
	if err != nil {
		return productinfo.Info{}, err
	}
	defer body.Close()
	return productinfo.FromHTML(body)
}

func fetch(ctx context.Context, client *http.Client, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

func fetchDocument(ctx context.Context, client *http.Client, rawURL string) (*goquery.Document, error) {
	body, err := fetch(ctx, client, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", rawURL, err)
	}
	return doc, nil
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}

// WriteProductReport prints info one "key: value" line at a time
func WriteProductReport(w io.Writer, info productinfo.Info) error {
	values := info.Map()
	for _, k := range info.Keys() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
